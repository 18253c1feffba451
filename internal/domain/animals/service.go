package animals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"animal-adoption/internal/platform/logger"
	"animal-adoption/internal/platform/validation"
	"animal-adoption/internal/ports/auth"
	"animal-adoption/internal/ports/images"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
	ErrForbidden    = errors.New("forbidden")
	ErrHasRelated   = errors.New("animal has related records")
)

// ValidationError lleva los mensajes por campo; errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if msg := e.First(); msg != "" {
		return msg
	}
	return ErrInvalidInput.Error()
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// First devuelve el mensaje del primer campo en orden alfabético (estable para respuestas).
func (e *ValidationError) First() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return e.Fields[keys[0]]
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

type Service struct {
	repo     Repository
	images   images.Store
	cache    Cache
	validate *validation.Validator
	log      logger.Logger
	now      func() time.Time

	perPage    int
	maxPerPage int

	onCache func(result string)
}

type Option func(*Service)

func WithCache(c Cache) Option { return func(s *Service) { s.cache = c } }

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithPaging fija per_page por defecto y máximo.
func WithPaging(perPage, maxPerPage int) Option {
	return func(s *Service) {
		if perPage > 0 {
			s.perPage = perPage
		}
		if maxPerPage >= s.perPage {
			s.maxPerPage = maxPerPage
		}
	}
}

// WithCacheObserver recibe "hit", "miss" o "error" por cada lookup (métricas).
func WithCacheObserver(fn func(result string)) Option {
	return func(s *Service) { s.onCache = fn }
}

func NewService(repo Repository, store images.Store, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		images:     store,
		validate:   validation.New(),
		log:        logger.Nop(),
		now:        time.Now,
		perPage:    12,
		maxPerPage: 48,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Name                  string `form:"name" validate:"required,max=100"`
	Type                  string `form:"type" validate:"required,oneof=dog cat"`
	BirthDate             string `form:"birth_date" validate:"required"`
	Size                  string `form:"size" validate:"omitempty,oneof=small medium large"`
	Gender                string `form:"gender" validate:"omitempty,oneof=male female"`
	Vaccinated            bool   `form:"vaccinated"`
	Castrated             bool   `form:"castrated"`
	Dewormed              bool   `form:"dewormed"`
	Microchip             bool   `form:"microchip"`
	PublicationDate       string `form:"publication_date"`
	AdditionalInformation string `form:"additional_information" validate:"max=2000"`
	Status                string `form:"status" validate:"omitempty,oneof=adopted not_adopted in_process"`
}

// Register crea el animal, le asigna código de identificación y sube sus imágenes.
func (s *Service) Register(ctx context.Context, in RegisterInput, files []images.Upload) (Animal, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))

	if errs := s.validate.Struct(in); errs != nil {
		return Animal{}, &ValidationError{Fields: errs}
	}

	bd, err := ParseDate(in.BirthDate)
	if err != nil {
		return Animal{}, invalid("birth_date", "birth_date must be YYYY-MM-DD")
	}

	var pub *time.Time
	if strings.TrimSpace(in.PublicationDate) != "" {
		t, err := ParseDate(in.PublicationDate)
		if err != nil {
			return Animal{}, invalid("publication_date", "publication_date must be YYYY-MM-DD")
		}
		pub = &t
	}

	status := Status(in.Status)
	if status == "" {
		status = StatusNotAdopted
	}

	now := s.now()
	a := Animal{
		Name:                  in.Name,
		Type:                  Type(in.Type),
		Size:                  Size(in.Size),
		Gender:                Gender(in.Gender),
		BirthDate:             bd,
		Vaccinated:            in.Vaccinated,
		Castrated:             in.Castrated,
		Dewormed:              in.Dewormed,
		Microchip:             in.Microchip,
		PublicationDate:       pub,
		AdditionalInformation: strings.TrimSpace(in.AdditionalInformation),
		Status:                status,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return Animal{}, fmt.Errorf("create animal: %w", err)
	}

	// El código depende del id, que solo existe después del insert.
	created.IdentificationCode = IdentificationCode(created.Type, created.ID)
	if err := s.repo.Update(ctx, created); err != nil {
		return Animal{}, fmt.Errorf("assign identification code: %w", err)
	}

	imgs, err := s.upload(ctx, files)
	if err != nil {
		return Animal{}, err
	}
	if len(imgs) > 0 {
		if err := s.repo.AddImages(ctx, created.ID, imgs); err != nil {
			s.discard(ctx, imgs)
			return Animal{}, fmt.Errorf("save images: %w", err)
		}
	}
	created.Images = imgs

	s.log.Info("animal registered", map[string]any{
		"animal_id":           created.ID,
		"identification_code": created.IdentificationCode,
		"images":              len(imgs),
	})
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Search normaliza la query (página, tamaño, orden) y devuelve una página.
func (s *Service) Search(ctx context.Context, q Query) (PageResult, error) {
	q, err := s.normalize(q)
	if err != nil {
		return PageResult{}, err
	}

	items, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return PageResult{}, err
	}

	pages := (total + q.PerPage - 1) / q.PerPage
	if pages < 1 {
		pages = 1
	}

	return PageResult{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
		Pages:   pages,
		Query:   q,
	}, nil
}

func (s *Service) normalize(q Query) (Query, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = s.perPage
	}
	if q.PerPage > s.maxPerPage {
		q.PerPage = s.maxPerPage
	}
	// Tope para que (Page-1)*PerPage no desborde.
	if maxPage := math.MaxInt / q.PerPage; q.Page > maxPage {
		q.Page = maxPage
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	if !q.Sort.Valid() {
		return Query{}, invalid("sort", fmt.Sprintf("unknown sort %q", q.Sort))
	}
	return q, nil
}

// Get usa la cache como read-through; si la cache falla, se sigue con el repo.
func (s *Service) Get(ctx context.Context, id int64) (Animal, error) {
	if s.cache != nil {
		a, ok, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			s.observe("error")
			s.log.Warn("animal cache get failed", map[string]any{"animal_id": id, "error": err.Error()})
		case ok:
			s.observe("hit")
			return a, nil
		default:
			s.observe("miss")
		}
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, a); err != nil {
			s.log.Warn("animal cache set failed", map[string]any{"animal_id": id, "error": err.Error()})
		}
	}
	return a, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name                  *string `form:"name" validate:"omitempty,max=100"`
	Type                  *string `form:"type" validate:"omitempty,oneof=dog cat"`
	BirthDate             *string `form:"birth_date"`
	Size                  *string `form:"size" validate:"omitempty,oneof=small medium large"`
	Gender                *string `form:"gender" validate:"omitempty,oneof=male female"`
	Vaccinated            *bool   `form:"vaccinated"`
	Castrated             *bool   `form:"castrated"`
	Dewormed              *bool   `form:"dewormed"`
	Microchip             *bool   `form:"microchip"`
	PublicationDate       *string `form:"publication_date"`
	AdditionalInformation *string `form:"additional_information" validate:"omitempty,max=2000"`
	Status                *string `form:"status" validate:"omitempty,oneof=adopted not_adopted in_process"`
}

// Update aplica un cambio parcial (solo admin). Si files != nil, las imágenes
// actuales se reemplazan por las subidas (también con una lista vacía).
func (s *Service) Update(ctx context.Context, id int64, actor auth.Claims, in UpdateInput, files []images.Upload) (Animal, error) {
	if !actor.IsAdmin() {
		return Animal{}, ErrForbidden
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if errs := s.validate.Struct(in); errs != nil {
		return Animal{}, &ValidationError{Fields: errs}
	}

	updated, err := applyUpdate(current, in)
	if err != nil {
		return Animal{}, err
	}
	updated.UpdatedAt = s.now()

	// Primero se suben las imágenes: si el hosting falla, no se toca nada.
	var imgs []Image
	if files != nil {
		imgs, err = s.upload(ctx, files)
		if err != nil {
			return Animal{}, err
		}
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		s.discard(ctx, imgs)
		return Animal{}, fmt.Errorf("update animal: %w", err)
	}
	defer s.invalidate(ctx, id)

	if files != nil {
		if err := s.repo.ReplaceImages(ctx, id, imgs); err != nil {
			s.discard(ctx, imgs)
			return Animal{}, fmt.Errorf("replace images: %w", err)
		}
		s.discard(ctx, current.Images)
		updated.Images = imgs
	}

	s.log.Info("animal updated", map[string]any{"animal_id": id, "actor": actor.UserID})
	return updated, nil
}

func applyUpdate(a Animal, in UpdateInput) (Animal, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Animal{}, invalid("name", "El campo name es requerido")
		}
		a.Name = name
	}
	if in.Type != nil {
		t := Type(strings.ToLower(strings.TrimSpace(*in.Type)))
		if t == "" {
			return Animal{}, invalid("type", "El campo type es requerido")
		}
		if t != a.Type {
			a.Type = t
			a.IdentificationCode = IdentificationCode(t, a.ID)
		}
	}
	if in.BirthDate != nil {
		bd, err := ParseDate(*in.BirthDate)
		if err != nil {
			return Animal{}, invalid("birth_date", "birth_date must be YYYY-MM-DD")
		}
		a.BirthDate = bd
	}
	if in.Size != nil {
		a.Size = Size(*in.Size)
	}
	if in.Gender != nil {
		a.Gender = Gender(*in.Gender)
	}
	if in.Vaccinated != nil {
		a.Vaccinated = *in.Vaccinated
	}
	if in.Castrated != nil {
		a.Castrated = *in.Castrated
	}
	if in.Dewormed != nil {
		a.Dewormed = *in.Dewormed
	}
	if in.Microchip != nil {
		a.Microchip = *in.Microchip
	}
	if in.PublicationDate != nil {
		if strings.TrimSpace(*in.PublicationDate) == "" {
			a.PublicationDate = nil
		} else {
			t, err := ParseDate(*in.PublicationDate)
			if err != nil {
				return Animal{}, invalid("publication_date", "publication_date must be YYYY-MM-DD")
			}
			a.PublicationDate = &t
		}
	}
	if in.AdditionalInformation != nil {
		a.AdditionalInformation = strings.TrimSpace(*in.AdditionalInformation)
	}
	if in.Status != nil && *in.Status != "" {
		a.Status = Status(*in.Status)
	}
	return a, nil
}

// Delete borra un animal sin registros relacionados (solo admin).
func (s *Service) Delete(ctx context.Context, id int64, actor auth.Claims) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	rel, err := s.repo.CountRelated(ctx, id)
	if err != nil {
		return fmt.Errorf("count related: %w", err)
	}
	if rel.Any() {
		return ErrHasRelated
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.log.Info("animal deleted", map[string]any{"animal_id": id, "actor": actor.UserID})
	return nil
}

func (s *Service) upload(ctx context.Context, files []images.Upload) ([]Image, error) {
	out := make([]Image, 0, len(files))
	for _, f := range files {
		stored, err := s.images.Upload(ctx, f)
		if err != nil {
			s.discard(ctx, out)
			return nil, fmt.Errorf("upload %q: %w", f.Filename, err)
		}
		out = append(out, Image{
			ID:       uuid.NewString(),
			URL:      stored.URL,
			PublicID: stored.PublicID,
		})
	}
	return out, nil
}

// discard borra del hosting imágenes que ya no se referencian; los fallos solo se loguean.
func (s *Service) discard(ctx context.Context, imgs []Image) {
	for _, img := range imgs {
		if img.PublicID == "" {
			continue
		}
		if err := s.images.Delete(ctx, img.PublicID); err != nil {
			s.log.Warn("image delete failed", map[string]any{"public_id": img.PublicID, "error": err.Error()})
		}
	}
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn("animal cache delete failed", map[string]any{"animal_id": id, "error": err.Error()})
	}
}

func (s *Service) observe(result string) {
	if s.onCache != nil {
		s.onCache(result)
	}
}

// dateLayouts: el front manda YYYY-MM-DD; las respuestas usan RFC1123.
var dateLayouts = []string{"2006-01-02", time.RFC1123, time.RFC3339}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrInvalidInput, s)
}

// FormatDate usa el mismo formato que consumía el front ("Tue, 12 Dec 2023 00:00:00 GMT").
func FormatDate(t time.Time) string {
	return t.UTC().Format(http1123)
}

const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"

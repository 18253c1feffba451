package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-adoption/internal/domain/animals"
)

type AnimalRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]animals.Animal

	// testimonios y adopciones viven en otros módulos; acá solo se cuentan
	testimonies map[int64]int
	adoptions   map[int64]int
}

func NewAnimalRepo() *AnimalRepo {
	return &AnimalRepo{
		byID:        make(map[int64]animals.Animal),
		testimonies: make(map[int64]int),
		adoptions:   make(map[int64]int),
	}
}

var _ animals.Repository = (*AnimalRepo)(nil)

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.Name) == "" {
		return animals.Animal{}, errors.New("animal name required")
	}
	r.nextID++
	a.ID = r.nextID
	a.Images = cloneImages(a.Images)
	r.byID[a.ID] = a
	return a, nil
}

// Update no toca las imágenes: se manejan con AddImages / ReplaceImages.
func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[a.ID]
	if !ok {
		return animals.ErrNotFound
	}
	a.Images = cur.Images
	r.byID[a.ID] = a
	return nil
}

func (r *AnimalRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return animals.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.testimonies, id)
	delete(r.adoptions, id)
	return nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	a.Images = cloneImages(a.Images)
	return a, nil
}

func (r *AnimalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		a.Images = cloneImages(a.Images)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AnimalRepo) Search(ctx context.Context, q animals.Query) ([]animals.Animal, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if q.Matches(a) {
			a.Images = cloneImages(a.Images)
			matched = append(matched, a)
		}
	}
	sortAnimals(matched, q.Sort)

	total := len(matched)
	start := q.Offset()
	if start < 0 || start >= total {
		return []animals.Animal{}, total, nil
	}
	end := start + q.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *AnimalRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *AnimalRepo) AddImages(ctx context.Context, animalID int64, imgs []animals.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[animalID]
	if !ok {
		return animals.ErrNotFound
	}
	a.Images = append(cloneImages(a.Images), imgs...)
	r.byID[animalID] = a
	return nil
}

func (r *AnimalRepo) ReplaceImages(ctx context.Context, animalID int64, imgs []animals.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[animalID]
	if !ok {
		return animals.ErrNotFound
	}
	a.Images = cloneImages(imgs)
	r.byID[animalID] = a
	return nil
}

func (r *AnimalRepo) CountRelated(ctx context.Context, animalID int64) (animals.Related, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[animalID]
	if !ok {
		return animals.Related{}, animals.ErrNotFound
	}
	return animals.Related{
		Images:      len(a.Images),
		Testimonies: r.testimonies[animalID],
		Adoptions:   r.adoptions[animalID],
	}, nil
}

// AddTestimony / AddAdoption registran referencias externas al animal.
func (r *AnimalRepo) AddTestimony(animalID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.testimonies[animalID]++
}

func (r *AnimalRepo) AddAdoption(animalID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adoptions[animalID]++
}

func sortAnimals(items []animals.Animal, s animals.Sort) {
	published := func(a animals.Animal) int64 {
		if a.PublicationDate != nil {
			return a.PublicationDate.UnixNano()
		}
		return a.CreatedAt.UnixNano()
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch s {
		case animals.SortOldest:
			if published(a) != published(b) {
				return published(a) < published(b)
			}
			return a.ID < b.ID
		case animals.SortNameAsc:
			if !strings.EqualFold(a.Name, b.Name) {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}
			return a.ID < b.ID
		case animals.SortNameDesc:
			if !strings.EqualFold(a.Name, b.Name) {
				return strings.ToLower(a.Name) > strings.ToLower(b.Name)
			}
			return a.ID < b.ID
		default:
			if published(a) != published(b) {
				return published(a) > published(b)
			}
			return a.ID > b.ID
		}
	})
}

func cloneImages(in []animals.Image) []animals.Image {
	if in == nil {
		return nil
	}
	out := make([]animals.Image, len(in))
	copy(out, in)
	return out
}

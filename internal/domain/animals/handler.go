package animals

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"animal-adoption/internal/middleware"
	"animal-adoption/internal/ports/images"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /animales. Todas las rutas exigen usuario autenticado;
// PUT y DELETE además exigen rol admin (lo decide el servicio).
func RegisterRoutes(r chi.Router, svc *Service, maxUploadBytes int64) {
	r.Route("/animales", func(ar chi.Router) {
		ar.Use(middleware.RequireUser)

		ar.Get("/", listAnimalsHandler(svc))
		ar.Head("/", countAnimalsHandler(svc))
		ar.Post("/animal", registerAnimalHandler(svc, maxUploadBytes))

		ar.Get("/animal/{animalID}", getAnimalHandler(svc))
		ar.Put("/animal/{animalID}", updateAnimalHandler(svc, maxUploadBytes))
		ar.Delete("/animal/{animalID}", deleteAnimalHandler(svc))
	})
}

type animalResponse struct {
	ID                    int64    `json:"id"`
	IdentificationCode    string   `json:"identification_code"`
	Name                  string   `json:"name"`
	Type                  Type     `json:"type"`
	Size                  Size     `json:"size,omitempty"`
	Gender                Gender   `json:"gender,omitempty"`
	BirthDate             string   `json:"birth_date"`
	Vaccinated            bool     `json:"vaccinated"`
	Castrated             bool     `json:"castrated"`
	Dewormed              bool     `json:"dewormed"`
	Microchip             bool     `json:"microchip"`
	PublicationDate       *string  `json:"publication_date"`
	AdditionalInformation string   `json:"additional_information"`
	Status                Status   `json:"status"`
	ImageURLs             []string `json:"image_urls"`
}

type resultResponse struct {
	Msg    string `json:"msg"`
	Result any    `json:"result"`
}

type listResponse struct {
	Msg          string           `json:"msg"`
	TotalAnimals int              `json:"total_animals"`
	Result       []animalResponse `json:"result"`
}

// @Summary  Registra un animal
// @Tags     animales
// @Accept   multipart/form-data
// @Produce  json
// @Success  201 {object} resultResponse
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /animales/animal [post]
func registerAnimalHandler(svc *Service, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, files, err := readForm(w, r, maxUpload)
		defer closeAll(files)
		if err != nil || len(form) == 0 {
			writeMsg(w, http.StatusBadRequest, "msg", "Error: the request does not include the required data")
			return
		}

		in := RegisterInput{
			Name:                  form.Get("name"),
			Type:                  form.Get("type"),
			BirthDate:             form.Get("birth_date"),
			Size:                  form.Get("size"),
			Gender:                form.Get("gender"),
			Vaccinated:            parseBool(form.Get("vaccinated")),
			Castrated:             parseBool(form.Get("castrated")),
			Dewormed:              parseBool(form.Get("dewormed")),
			Microchip:             parseBool(form.Get("microchip")),
			PublicationDate:       form.Get("publication_date"),
			AdditionalInformation: form.Get("additional_information"),
			Status:                form.Get("status"),
		}

		a, err := svc.Register(r.Context(), in, files.uploads)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"msg": verr.First(), "errors": verr.Fields})
				return
			}
			writeMsg(w, http.StatusInternalServerError, "msg", "Error while saving to the database")
			return
		}

		writeJSON(w, http.StatusCreated, resultResponse{Msg: "ok", Result: toAnimalResponse(a)})
	}
}

// @Summary  Lista todos los animales
// @Tags     animales
// @Produce  json
// @Success  200 {object} listResponse
// @Security BearerAuth
// @Router   /animales [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, listResponse{Msg: "ok", TotalAnimals: len(out), Result: out})
	}
}

func countAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Item-Length", strconv.Itoa(n))
		w.WriteHeader(http.StatusOK)
	}
}

// @Summary  Obtiene un animal
// @Tags     animales
// @Produce  json
// @Param    animalID path int true "animal id"
// @Success  200 {object} animalResponse
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /animales/animal/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalID(w, r)
		if !ok {
			return
		}

		a, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id, ok := animalID(w, r)
		if !ok {
			return
		}

		form, files, err := readForm(w, r, maxUpload)
		defer closeAll(files)
		if err != nil {
			writeMsg(w, http.StatusBadRequest, "message", "invalid form")
			return
		}

		in := UpdateInput{
			Name:                  optString(form, "name"),
			Type:                  optString(form, "type"),
			BirthDate:             optString(form, "birth_date"),
			Size:                  optString(form, "size"),
			Gender:                optString(form, "gender"),
			Vaccinated:            optBool(form, "vaccinated"),
			Castrated:             optBool(form, "castrated"),
			Dewormed:              optBool(form, "dewormed"),
			Microchip:             optBool(form, "microchip"),
			PublicationDate:       optString(form, "publication_date"),
			AdditionalInformation: optString(form, "additional_information"),
			Status:                optString(form, "status"),
		}

		// Solo reemplazamos imágenes si el form trae el campo "images".
		var uploads []images.Upload
		if files.present {
			uploads = files.uploads
			if uploads == nil {
				uploads = []images.Upload{}
			}
		}

		a, err := svc.Update(r.Context(), id, claims, in, uploads)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resultResponse{Msg: "ok", Result: toAnimalResponse(a)})
	}
}

// @Summary  Elimina un animal sin registros relacionados (admin)
// @Tags     animales
// @Param    animalID path int true "animal id"
// @Success  200 {object} map[string]string
// @Failure  400,403,404 {object} map[string]string
// @Security BearerAuth
// @Router   /animales/animal/{animalID} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id, ok := animalID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id, claims); err != nil {
			writeServiceError(w, err)
			return
		}
		writeMsg(w, http.StatusOK, "message", "Animal eliminado exitosamente")
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": verr.First(), "errors": verr.Fields})
	case errors.Is(err, ErrForbidden):
		writeMsg(w, http.StatusForbidden, "message", "Acceso denegado. Se requiere rol de administrador")
	case errors.Is(err, ErrNotFound):
		writeMsg(w, http.StatusNotFound, "message", "Animal no encontrado")
	case errors.Is(err, ErrHasRelated):
		writeMsg(w, http.StatusBadRequest, "message", "No se puede eliminar el animal debido a registros relacionados")
	case errors.Is(err, ErrInvalidInput):
		writeMsg(w, http.StatusBadRequest, "message", err.Error())
	default:
		writeMsg(w, http.StatusInternalServerError, "message", "internal error")
	}
}

func animalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
	if err != nil || id <= 0 {
		writeMsg(w, http.StatusBadRequest, "message", "animal id must be a positive number")
		return 0, false
	}
	return id, true
}

type formFiles struct {
	present bool
	uploads []images.Upload
	closers []multipart.File
}

func closeAll(f formFiles) {
	for _, c := range f.closers {
		_ = c.Close()
	}
}

// readForm acepta multipart (con imágenes) o urlencoded.
func readForm(w http.ResponseWriter, r *http.Request, maxUpload int64) (formValues, formFiles, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			return nil, formFiles{}, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, formFiles{}, err
	}

	values := formValues(r.PostForm)

	var files formFiles
	if r.MultipartForm == nil {
		return values, files, nil
	}

	headers, ok := r.MultipartForm.File["images"]
	files.present = ok
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll(files)
			return nil, formFiles{}, err
		}
		files.closers = append(files.closers, f)
		files.uploads = append(files.uploads, images.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return values, files, nil
}

type formValues map[string][]string

func (f formValues) Get(key string) string {
	if v := f[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func optString(f formValues, key string) *string {
	if _, ok := f[key]; !ok {
		return nil
	}
	v := f.Get(key)
	return &v
}

func optBool(f formValues, key string) *bool {
	if _, ok := f[key]; !ok {
		return nil
	}
	b := parseBool(f.Get(key))
	return &b
}

// parseBool acepta lo que manda el front ("true", "True", "1", "on").
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes", "si", "sí":
		return true
	default:
		return false
	}
}

func toAnimalResponse(a Animal) animalResponse {
	var pub *string
	if a.PublicationDate != nil {
		s := FormatDate(*a.PublicationDate)
		pub = &s
	}
	return animalResponse{
		ID:                    a.ID,
		IdentificationCode:    a.IdentificationCode,
		Name:                  a.Name,
		Type:                  a.Type,
		Size:                  a.Size,
		Gender:                a.Gender,
		BirthDate:             FormatDate(a.BirthDate),
		Vaccinated:            a.Vaccinated,
		Castrated:             a.Castrated,
		Dewormed:              a.Dewormed,
		Microchip:             a.Microchip,
		PublicationDate:       pub,
		AdditionalInformation: a.AdditionalInformation,
		Status:                a.Status,
		ImageURLs:             a.ImageURLs(),
	}
}

func writeMsg(w http.ResponseWriter, status int, key, msg string) {
	writeJSON(w, status, map[string]string{key: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package animals

import (
	"fmt"
	"strings"
	"time"
)

// Type define las especies que se publican para adopción.
// @Enum dog, cat
type Type string

const (
	TypeDog Type = "dog"
	TypeCat Type = "cat"
)

// Gender
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Status del proceso de adopción.
type Status string

const (
	StatusNotAdopted Status = "not_adopted"
	StatusInProcess  Status = "in_process"
	StatusAdopted    Status = "adopted"
)

type Image struct {
	ID       string
	URL      string
	PublicID string
}

// Animal es un perfil publicado para adopción.
type Animal struct {
	ID                 int64
	IdentificationCode string

	Name      string
	Type      Type
	Size      Size
	Gender    Gender
	BirthDate time.Time

	Vaccinated bool
	Castrated  bool
	Dewormed   bool
	Microchip  bool

	PublicationDate       *time.Time
	AdditionalInformation string
	Status                Status

	Images []Image

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ImageURLs devuelve las URLs en el orden en que se subieron.
func (a Animal) ImageURLs() []string {
	out := make([]string, 0, len(a.Images))
	for _, img := range a.Images {
		out = append(out, img.URL)
	}
	return out
}

// Related cuenta registros que referencian a un animal y bloquean su borrado.
type Related struct {
	Images      int
	Testimonies int
	Adoptions   int
}

func (r Related) Any() bool {
	return r.Images > 0 || r.Testimonies > 0 || r.Adoptions > 0
}

// IdentificationCode arma el código visible: "R" + inicial del tipo + id con 4 dígitos.
// Ej: perro #12 -> RD0012.
func IdentificationCode(t Type, id int64) string {
	initial := "X"
	if s := strings.TrimSpace(string(t)); s != "" {
		initial = strings.ToUpper(s[:1])
	}
	return fmt.Sprintf("R%s%04d", initial, id)
}

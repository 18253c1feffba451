package animals

import "context"

type Repository interface {
	// Create asigna ID y lo devuelve en el Animal retornado.
	Create(ctx context.Context, a Animal) (Animal, error)
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	Search(ctx context.Context, q Query) ([]Animal, int, error)
	Count(ctx context.Context) (int, error)

	AddImages(ctx context.Context, animalID int64, imgs []Image) error
	ReplaceImages(ctx context.Context, animalID int64, imgs []Image) error
	CountRelated(ctx context.Context, animalID int64) (Related, error)
}

// Cache es opcional (Redis). Un error de cache nunca corta el request.
type Cache interface {
	Get(ctx context.Context, id int64) (Animal, bool, error)
	Set(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id int64) error
}

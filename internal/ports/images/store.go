package images

import (
	"context"
	"io"
)

// Upload es un archivo recibido en el form "images".
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Stored es lo que devuelve el hosting: URL pública + id para borrar.
type Stored struct {
	URL      string
	PublicID string
}

// Store sube y borra imágenes de animales (Cloudinary en prod, memoria en dev).
type Store interface {
	Upload(ctx context.Context, u Upload) (Stored, error)
	Delete(ctx context.Context, publicID string) error
}

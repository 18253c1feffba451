package listing

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render escribe la página completa. Ejecuta sobre un buffer para no dejar
// HTML a medias si el template falla.
func Render(w io.Writer, p Page) error {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", p); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

package views

import (
	"bytes"
	"embed"
	"fmt"
	"goalboard/internal/models"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

type PageData struct {
	Title    string
	Snapshot *models.Snapshot
}

type Renderer struct {
	page *template.Template
}

func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("unable to parse page template: %w", err)
	}
	return &Renderer{page: page}, nil
}

// RenderPage writes the full page. It renders into a buffer first so a
// template failure never leaves a half-written response.
func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

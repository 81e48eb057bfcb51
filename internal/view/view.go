package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	iofs "io/fs"
	"os"
)

// NotFoundFragment is rendered in place of a view that does not exist.
const NotFoundFragment = "<h1>Error 404. :(</h1> <p>Sorry the page you were looking for couldn't be found</p>"

//go:embed templates/*.html
var embedded embed.FS

// Blog is the slice of the post repository that views may query.
type Blog interface {
	TotalCount() int
}

// IndexData is handed to the "index" view.
type IndexData struct {
	Posts    []template.HTML
	Page     int
	PageSize int
	BasePath string
	Blog     Blog
}

func (d IndexData) HasNewer() bool {
	return d.Page > 1
}

func (d IndexData) HasOlder() bool {
	return d.Blog != nil && d.Page*d.PageSize < d.Blog.TotalCount()
}

func (d IndexData) NewerPage() int {
	return d.Page - 1
}

func (d IndexData) OlderPage() int {
	return d.Page + 1
}

// Renderer turns structured data into a page.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// TemplateRenderer renders <name>.html templates from a filesystem. Templates are parsed on
// every call so edits to a views directory show up without a restart.
type TemplateRenderer struct {
	fsys iofs.FS
}

// NewTemplateRenderer reads views from dir, or from the embedded defaults when dir is empty.
func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	if dir == "" {
		sub, err := iofs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded views: %w", err)
		}
		return &TemplateRenderer{fsys: sub}, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open views directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("views path %s is not a directory", dir)
	}

	return &TemplateRenderer{fsys: os.DirFS(dir)}, nil
}

// Render executes the named view. A missing view yields NotFoundFragment rather than an error.
func (r *TemplateRenderer) Render(name string, data any) ([]byte, error) {
	file := name + ".html"

	if _, err := iofs.Stat(r.fsys, file); errors.Is(err, iofs.ErrNotExist) {
		return []byte(NotFoundFragment), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat view %s: %w", name, err)
	}

	tmpl, err := template.ParseFS(r.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render view %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

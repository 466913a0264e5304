package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-console/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var pageTemplates = []string{
	"login",
	"register",
	"main",
	"error",
}

type dialogData struct {
	Dialog *view.ProductDialog
	Page   int
}

var templateFuncs = template.FuncMap{
	"dialog": func(d *view.ProductDialog, page int) dialogData {
		return dialogData{Dialog: d, Page: page}
	},
	"price": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"quantity": func(v *int) string {
		if v == nil {
			return "-"
		}
		return strconv.Itoa(*v)
	},
}

// Renderer executes one layout-wrapped html/template per page.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, layoutFile, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

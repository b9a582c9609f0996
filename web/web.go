// шаблоны страниц и статика дашборда, вшиваются в бинарник
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// страницы, каждая рендерится внутри layout.html
const (
	PageLogin            = "login"
	PageCandidates       = "candidates"
	PageCandidateDetails = "candidate_details"
	PageVacancies        = "vacancies"
	PageCreateVacancy    = "create_vacancy"
	PageError            = "error"
)

var pages = []string{
	PageLogin,
	PageCandidates,
	PageCandidateDetails,
	PageVacancies,
	PageCreateVacancy,
	PageError,
}

var funcs = template.FuncMap{
	"navClass":   navClass,
	"scoreClass": scoreClass,
}

// цвет балла -> css класс, inline стили запрещены CSP
var scoreClasses = map[string]string{
	"#4caf50": "score-excellent",
	"#8bc34a": "score-good",
	"#ffc107": "score-fair",
	"#ff9800": "score-poor",
	"#f44336": "score-bad",
}

func scoreClass(color string) string {
	if class, ok := scoreClasses[color]; ok {
		return class
	}
	return "score-none"
}

func navClass(active, path string) string {
	if active == path {
		return "nav-item active"
	}
	return "nav-item"
}

// Renderer - набор шаблонов для gin, у каждой страницы свой экземпляр
// с общим layout
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Instance вызывается gin из c.HTML
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		t = r.templates[PageError]
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

// Static - css и картинки для router.StaticFS
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

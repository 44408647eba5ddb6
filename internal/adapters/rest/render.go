package rest

import (
	"embed"
	"html/template"
	"net/http"

	"kos-portal/internal/core/port"
)

//go:embed templates
var templatesFS embed.FS

// Views рендерит html-шаблоны экранов.
type Views struct {
	tmpl   *template.Template
	logger port.LoggerPort
}

func NewViews(logger port.LoggerPort) (*Views, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Views{tmpl: tmpl, logger: logger}, nil
}

func (v *Views) Render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.tmpl.ExecuteTemplate(w, name+".html", data); err != nil {
		v.logger.Error("Failed to render template", err, port.Fields{"template": name})
	}
}

// Вью-модели экранов. Шаблоны получают уже готовые строки и ссылки,
// никакой логики в самих шаблонах.

type authView struct {
	Prompt       string
	Message      string
	ErrorMessage string
}

type kosCardView struct {
	ID       int
	Name     string
	Address  string
	Price    string
	Gender   string
	ImageURL string
}

type dashboardView struct {
	Prompt       string
	Loading      bool
	ErrorMessage string

	Query string
	Cards []kosCardView
	Empty bool

	Page       int
	TotalPages int
	CanPrev    bool
	CanNext    bool
	PrevURL    string
	NextURL    string
}

type kosDetailView struct {
	ID         int
	Name       string
	Address    string
	Price      string
	Gender     string
	Facilities []string
}

type reviewView struct {
	Body      string
	CreatedAt string
	Pending   bool
}

type detailView struct {
	Prompt       string
	Loading      bool
	ErrorMessage string

	Kos    *kosDetailView
	Images []string

	Submitting bool
	Message    string

	// Экран отзывов.
	Reviews []reviewView
	Draft   string
}

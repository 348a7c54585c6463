package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"pmsconsole/config"
	authModel "pmsconsole/internal/domains/auth/model"
	"pmsconsole/shared/constant"
	"pmsconsole/shared/failure"
	"pmsconsole/shared/flash"
	"pmsconsole/shared/validator"
	"pmsconsole/transport/http/response"
	"pmsconsole/web"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"
)

const (
	layoutTemplate = "layout"
	errorPage      = "error"
)

// Page is what every template receives. Handlers fill the top half, Render the rest.
type Page struct {
	Title   string
	Section string
	Data    any
	Form    any
	Errors  validator.FieldErrors
	Error   string

	Session authModel.Session
	Flash   []flash.Message
	CSRF    template.HTML
	Path    string
}

// Renderer writes server-rendered pages.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page)
	// Error renders err as a page, or ends the session when the backend answered 401.
	Error(w http.ResponseWriter, r *http.Request, err error)
}

type renderer struct {
	config *config.Config
	pages  map[string]*template.Template
}

func New(cfg *config.Config) Renderer {
	r, err := Parse(cfg, web.Templates())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse page templates")
	}

	return r
}

// Parse compiles every page under pages/ together with the layout and partials.
// Page names are their path below pages/ without extension, e.g. "bookings/list".
func Parse(cfg *config.Config, fsys fs.FS) (Renderer, error) {
	base, err := template.New(layoutTemplate).Funcs(funcs()).ParseFS(fsys, "layout.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	pages := map[string]*template.Template{}

	err = fs.WalkDir(fsys, "pages", func(name string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() || path.Ext(name) != ".html" {
			return err
		}

		page, err := base.Clone()
		if err != nil {
			return fmt.Errorf("cloning layout for %s: %w", name, err)
		}

		if page, err = page.ParseFS(fsys, name); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}

		pages[strings.TrimSuffix(strings.TrimPrefix(name, "pages/"), ".html")] = page

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing pages: %w", err)
	}

	log.Debug().Int("pages", len(pages)).Msg("Page templates parsed")

	return &renderer{config: cfg, pages: pages}, nil
}

func (v *renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	tmpl, ok := v.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	page.Session = authModel.SessionFrom(r.Context())
	page.Flash = flash.FromContext(r.Context()).Drain()
	page.CSRF = csrf.TemplateField(r)
	page.Path = r.URL.Path

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, page); err != nil {
		log.Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Str("page", name).Msg("failed to write page")
	}
}

func (v *renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	if failure.IsUnauthorized(err) {
		flash.Info(r.Context(), failure.SessionExpiredError.Message)
		response.Unauthorized(w, r, v.config)

		return
	}

	code := failure.GetCode(err)

	v.Render(w, r, code, errorPage, Page{
		Title: http.StatusText(code),
		Error: failure.GetMessage(err),
	})
}

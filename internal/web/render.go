package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/errors"
	"github.com/contributorsambhav/portfolio/internal/ops"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "home", "projects", "activity", "web3", "work"
	Owner   string
}

// HomePageData is the template data for the landing page.
type HomePageData struct {
	PageData
	Profile      catalog.Profile
	Featured     []catalog.Project
	Achievements []catalog.Achievement
	TechStack    *ops.TechStackOutput
	Web3Stats    catalog.Web3Stats
}

// ProjectsPageData is the template data for the project list page.
type ProjectsPageData struct {
	PageData
	Tabs         []string
	Items        []catalog.Project
	Total        int
	Category     string
	Search       string
	Tech         string
	Technologies []string
	Filtered     bool
}

// ProjectPageData is the template data for the project detail page.
type ProjectPageData struct {
	PageData
	Project      *catalog.Project
	RenderedHTML template.HTML
}

// ActivityPageData is the template data for the activity heatmap page.
type ActivityPageData struct {
	PageData
	Providers []activity.Provider
	Provider  activity.Provider
	Weeks     [][]activity.Record
	Total     int
	Totals    map[activity.Provider]int
	FetchedAt int64
	From, To  string
}

// Web3PageData is the template data for the Web3 page.
type Web3PageData struct {
	PageData
	Filters []string
	Filter  string
	Items   []catalog.Web3Project
	Stats   catalog.Web3Stats
}

// WorkPageData is the template data for the experience page.
type WorkPageData struct {
	PageData
	Experience []catalog.Experience
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
	logger    *zap.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}

	funcMap := template.FuncMap{
		"formatTime": formatTime,
		"levelClass": levelClass,
		"join":       strings.Join,
		"title":      tabTitle,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"home":     "home.html",
		"projects": "projects.html",
		"project":  "project.html",
		"activity": "activity.html",
		"web3":     "web3.html",
		"work":     "work.html",
		"error":    "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
		logger:    logger,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
// For partial requests, only the "content" block is rendered to avoid duplicating the layout.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	block := "layout"
	if isPartial(req) {
		block = "content"
	}
	r.renderBlock(w, status, name, block, data)
}

// renderBlock renders a specific named block from a page template.
// Used for partial swaps that target a sub-section of the page.
func (r *Renderer) renderBlock(w http.ResponseWriter, status int, page, block string, data any) {
	t, ok := r.templates[page]
	if !ok {
		r.logger.Error("template not found", zap.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		r.logger.Error("template execution error",
			zap.String("page", page),
			zap.String("block", block),
			zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var pErr *errors.PortfolioError
	if !stderrors.As(err, &pErr) {
		r.logger.Error("unhandled error", zap.Error(err))
		pErr = errors.NewInternal(err)
		pErr.Message = "an internal error occurred"
	}

	status := pErr.Status
	message := pErr.Message

	// Partial request: return HTML fragment
	if isPartial(req) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `<div class="error-message">%s</div>`, template.HTMLEscapeString(message))
		return
	}

	// JSON request
	if wantsJSON(req) {
		renderJSON(w, status, map[string]any{
			"error": map[string]any{
				"code":    string(pErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	// Full error page
	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", status),
			Version: r.version,
		},
		StatusCode: status,
		Message:    message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func isPartial(req *http.Request) bool {
	return req != nil && req.Header.Get("HX-Request") == "true"
}

func wantsJSON(req *http.Request) bool {
	return strings.HasPrefix(req.URL.Path, "/api/") ||
		strings.Contains(req.Header.Get("Accept"), "application/json")
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts markdown text to HTML using goldmark.
// Raw HTML in the source is not passed through.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatTime formats a Unix timestamp as "2006-01-02 15:04" UTC.
func formatTime(unix int64) string {
	if unix == 0 {
		return "never"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

// levelClass maps a heatmap level to its CSS class. Padding cells get "pad".
func levelClass(r activity.Record) string {
	if r.Date == "" {
		return "pad"
	}
	return fmt.Sprintf("l%d", min(max(r.Level, 0), activity.MaxLevel))
}

// tabTitle renders a tab or filter value as a label: "in-progress" → "In Progress".
func tabTitle(s string) string {
	switch s {
	case "ai":
		return "AI"
	case "web3":
		return "Web3"
	}
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

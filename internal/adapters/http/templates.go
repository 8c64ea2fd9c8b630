package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are rendered inside layout.html.
var pages = []string{"landing.html", "admin.html", "access_denied.html", "login.html"}

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// truncate shortens s to n runes, appending "..." when cut.
func truncate(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

var funcMap = template.FuncMap{
	"renderMarkdown": renderMarkdown,
	"truncate":       truncate,
	"sub":            func(a, b int) int { return a - b },
}

type templateSet struct {
	pages map[string]*template.Template
}

func parseTemplates() (*templateSet, error) {
	set := &templateSet{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		set.pages[page] = tpl
	}
	return set, nil
}

// render writes a page with the given status. Rendering goes to a buffer
// first so a template error never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	tpl, ok := s.templates.pages[page]
	if !ok {
		slog.Error("template_missing", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

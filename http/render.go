package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/glbter/capstone/entities"
)

//go:embed templates static
var assets embed.FS

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
	trillion = decimal.NewFromInt(1_000_000_000_000)
)

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"large": formatLarge,
	"pct":   func(f float64) string { return fmt.Sprintf("%.2f%%", f) },
	"ratio": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"percentOf": func(f float64) string {
		return fmt.Sprintf("%.2f%%", f*100)
	},
	"up":     func(f float64) bool { return f >= 0 },
	"upDec":  func(d decimal.Decimal) bool { return !d.IsNegative() },
	"stars":  stars,
	"isSort": func(current, key string) bool { return current == key },
}

// stars draws a 0-5 rating; values out of range are clamped.
func stars(n int64) string {
	filled := int(min(max(n, 0), entities.MaxRating))
	return strings.Repeat("★", filled) + strings.Repeat("☆", entities.MaxRating-filled)
}

// formatLarge renders market caps and volumes as 1.23T / 4.56B / 7.89M.
func formatLarge(d decimal.Decimal) string {
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(trillion):
		return d.Div(trillion).StringFixed(2) + "T"
	case abs.GreaterThanOrEqual(billion):
		return d.Div(billion).StringFixed(2) + "B"
	case abs.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(2) + "K"
	default:
		return d.StringFixed(2)
	}
}

// Renderer holds one parsed template set per page, each combining the shared
// layout and partials with the page's own "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(assets, "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(assets,
			"templates/layout.html",
			"templates/partials.html",
			file,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		pages[strings.TrimPrefix(file, "templates/")] = t
	}

	return &Renderer{pages: pages}, nil
}

// HTML renders page into a buffer first so a template error never leaves a
// half-written response.
func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// StaticHandler serves the embedded stylesheet and images under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Package templates holds the backoffice HTML pages.
package templates

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed *.html
var files embed.FS

// Funcs are the helpers available to every page
var Funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"datetime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04:05")
	},
}

// Load parses all embedded pages. Each page is addressed by its file name.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "*.html")
}

// Package renderer turns ledger states and reports into markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/subwise"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// Mask replaces amounts when privacy mode is on.
const Mask = "•••••"

// Options holds configuration shared by every view.
type Options struct {
	Privacy bool // hide amounts
}

// money formats an amount in a currency, or the mask in privacy mode.
func (o Options) money(v decimal.Decimal, cur string) string {
	if o.Privacy {
		return Mask
	}
	return subwise.M(v, cur).String()
}

// signed formats an amount with an explicit sign, or the mask in privacy mode.
func (o Options) signed(v decimal.Decimal, cur string) string {
	if o.Privacy {
		return Mask
	}
	return subwise.M(v, cur).SignedString()
}

func percent(v decimal.Decimal) string { return v.Round(0).String() + "%" }

// escape protects text written in table cells.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

var funcs = template.FuncMap{"escape": escape}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

func itoa(i int) string { return fmt.Sprint(i) }

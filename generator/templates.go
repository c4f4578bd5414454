package generator

import (
	"embed"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// clientTemplateName is the entry point of the client template set.
const clientTemplateName = "client.go.tmpl"

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
	"join":  strings.Join,
}

var defaultTemplates = template.Must(
	template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"),
)

// parseTemplate parses an override for the client template.
func parseTemplate(text string) (*template.Template, error) {
	return template.New(clientTemplateName).Funcs(templateFuncs).Parse(text)
}

// Package web embeds the server-rendered page templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// fieldErrors lets templates read one field's messages.
func fieldErrors(errs map[string][]string, field string) []string {
	return errs[field]
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"fieldErrors": fieldErrors,
	}).ParseFS(files, "templates/*.html")
}

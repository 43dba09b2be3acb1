// README: Embedded HTML templates for the planner page.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page template. The funcs are registered before parsing.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"isTab": func(active, name string) bool { return active == name },
	}).ParseFS(files, "templates/*.html")
}

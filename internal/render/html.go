package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/widget.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/widget.html"))

// WriteHTML renders the widget page. Message content is escaped by html/template and
// otherwise left as typed.
func WriteHTML(w io.Writer, view View) error {
	return pageTemplate.Execute(w, view)
}

// Package web embeds the static widget assets: the loader script that
// third-party sites include and the iframe page it injects. Assets are
// compiled into the binary so the server ships as a single artifact.
package web

import (
	"embed"
	"html/template"
	"io"
)

//go:embed assets/widget.js assets/widget.html
var assets embed.FS

// widgetPage is parsed once at startup; a broken template is a build defect.
var widgetPage = template.Must(template.ParseFS(assets, "assets/widget.html"))

// WidgetPageData is the template input for the widget iframe page.
type WidgetPageData struct {
	TenantID   string
	TenantName string
	ThemeColor string
}

// RenderWidgetPage writes the widget page for the given tenant data.
func RenderWidgetPage(w io.Writer, data WidgetPageData) error {
	return widgetPage.Execute(w, data)
}

// LoaderScript returns the embeddable loader script bytes.
func LoaderScript() []byte {
	b, err := assets.ReadFile("assets/widget.js")
	if err != nil {
		// Embedded read of a compiled-in file cannot fail at runtime.
		panic(err)
	}
	return b
}

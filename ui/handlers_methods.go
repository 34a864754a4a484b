package ui

import (
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// methodsView backs the methods help page
type methodsView struct {
	pageView
	Content template.HTML
}

// handleMethods renders the embedded markdown explainer of the
// statistical methods the dashboard exposes.
func (a *App) handleMethods(w http.ResponseWriter, r *http.Request) {
	a.sessions.Get(w, r)

	source, err := embeddedFiles.ReadFile("docs/methods.md")
	if err != nil {
		a.log.Error("methods doc missing: %v", err)
		http.Error(w, "Methods documentation unavailable", http.StatusInternalServerError)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	rendered := markdown.Render(p.Parse(source), renderer)

	a.renderTemplate(w, "methods.html", &methodsView{
		pageView: pageView{Title: "Methods", Page: PageHome},
		Content:  template.HTML(rendered),
	})
}

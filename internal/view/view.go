// Package view renders the scanner page. Model output is markdown and is
// converted to HTML with goldmark; raw HTML inside it is not passed through.
package view

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/fadilmartias/resume-ats-scanner/internal/dto"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/index.html
var indexHTML string

// Page is the data of one render.
type Page struct {
	Title       string
	MaxUploadMB int
	Error       string
	View        dto.ScanView
}

type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

func New() (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"markdown": r.Markdown,
	}).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

func (r *Renderer) Render(w io.Writer, page Page) error {
	return r.tmpl.Execute(w, page)
}

// Markdown converts model output to HTML. Text that fails to convert is
// shown escaped.
func (r *Renderer) Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

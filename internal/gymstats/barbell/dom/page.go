package dom

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
)

// Target is one exercise to draw a barbell for.
type Target struct {
	Name   string
	Weight float64
}

type PageParams struct {
	Title string
	// FormAction is where the bar selection form submits to; empty means the current URL.
	FormAction string
	// Hidden form fields carried over on every bar change, e.g. the requested weights.
	Hidden     map[string]string
	Bars       []plates.BarSpec
	CheckedBar float64
	Targets    []Target
}

// Page is a full HTML document with a bar selection form and one display per target.
type Page struct {
	Doc      *html.Node
	Bars     *BarRadioGroup
	Displays []*Display
}

func NewPage(params PageParams) *Page {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlNode := newElement(atom.Html)
	head := newElement(atom.Head)
	head.AppendChild(newElement(atom.Meta, attr("charset", "utf-8")))
	title := newElement(atom.Title)
	title.AppendChild(newText(params.Title))
	head.AppendChild(title)
	htmlNode.AppendChild(head)

	body := newElement(atom.Body)
	h1 := newElement(atom.H1)
	h1.AppendChild(newText(params.Title))
	body.AppendChild(h1)

	form := newElement(atom.Form, attr("method", "get"))
	if params.FormAction != "" {
		form.Attr = append(form.Attr, attr("action", params.FormAction))
	}
	for _, bar := range params.Bars {
		label := newElement(atom.Label)
		label.AppendChild(newBarRadio(bar, bar.Weight == params.CheckedBar))
		label.AppendChild(newText(fmt.Sprintf(" %s kg", bar.Label())))
		form.AppendChild(label)
	}
	for _, key := range sortedKeys(params.Hidden) {
		form.AppendChild(newElement(atom.Input,
			attr("type", "hidden"),
			attr("name", key),
			attr("value", params.Hidden[key]),
		))
	}
	body.AppendChild(form)

	for _, target := range params.Targets {
		section := newElement(atom.Section)
		if target.Name != "" {
			h2 := newElement(atom.H2)
			h2.AppendChild(newText(fmt.Sprintf("%s - %s kg", target.Name, plates.FormatWeight(target.Weight))))
			section.AppendChild(h2)
		}
		section.AppendChild(NewDisplay(target.Weight, target.Name).Node())
		body.AppendChild(section)
	}

	htmlNode.AppendChild(body)
	doc.AppendChild(htmlNode)

	return &Page{
		Doc:      doc,
		Bars:     FindBarRadioGroup(doc),
		Displays: FindDisplays(doc),
	}
}

func (p *Page) Render(w io.Writer) error {
	if err := html.Render(w, p.Doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

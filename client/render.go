package client

import (
	"fmt"
	"html/template"
	"strings"
)

// listTemplate renders the gallery grid. Privileged controls carry a data-id
// attribute so a single delegated handler can dispatch clicks by record id.
const listTemplate = `{{if not .Photos}}<p class="empty">No photos found. Add one!</p>{{else}}<ul class="gallery">
{{range .Photos}}<li class="photo-card">
  <a href="/photo/{{.ID}}"><img src="{{thumb .}}" alt="{{title .}}"></a>
  <span class="photo-name">{{title .}}</span>
{{if $.Privileged}}  <a class="edit-link" href="/edit/{{.ID}}">Edit</a>
  <button class="delete-btn" data-id="{{.ID}}">Delete</button>
{{end}}</li>
{{end}}</ul>{{end}}`

const detailTemplate = `<article class="photo-detail">
  <img src="{{.Photo.ImageURL}}" alt="{{title .Photo}}">
  <h1>{{title .Photo}}</h1>
  <dl>
    <dt>Date</dt><dd>{{date .Photo}}</dd>
    <dt>People</dt><dd>{{people .Photo}}</dd>
  </dl>
  <p>{{description .Photo}}</p>
</article>`

// Renderer turns records into HTML fragments. The privilege flag is
// evaluated once per render call, not per item.
type Renderer struct {
	list   *template.Template
	detail *template.Template
}

// NewRenderer builds a Renderer with the built-in gallery templates.
func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"title": func(p Photo) string {
			if p.Name == "" {
				return "Untitled"
			}
			return p.Name
		},
		"date": func(p Photo) string {
			if p.Date == "" {
				return "Unknown"
			}
			return p.Date
		},
		"people": func(p Photo) string {
			if p.People == "" {
				return "Unknown"
			}
			return p.People
		},
		"description": func(p Photo) string {
			if p.Description == "" {
				return "No description."
			}
			return p.Description
		},
		"thumb": func(p Photo) string {
			if p.ThumbnailURL != "" {
				return p.ThumbnailURL
			}
			return p.ImageURL
		},
	}
	return &Renderer{
		list:   template.Must(template.New("list").Funcs(funcs).Parse(listTemplate)),
		detail: template.Must(template.New("detail").Funcs(funcs).Parse(detailTemplate)),
	}
}

// RenderList renders the gallery listing. With privileged set, each card
// carries an edit link and a delete button.
func (r *Renderer) RenderList(photos []Photo, privileged bool) (string, error) {
	var b strings.Builder
	err := r.list.Execute(&b, struct {
		Photos     []Photo
		Privileged bool
	}{photos, privileged})
	if err != nil {
		return "", fmt.Errorf("render list: %w", err)
	}
	return b.String(), nil
}

// RenderDetail renders one photo's full metadata.
func (r *Renderer) RenderDetail(p Photo) (string, error) {
	var b strings.Builder
	if err := r.detail.Execute(&b, struct{ Photo Photo }{p}); err != nil {
		return "", fmt.Errorf("render detail: %w", err)
	}
	return b.String(), nil
}

// Package email renders outbox messages and delivers them through Amazon SES or,
// in development, to the application log.
package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"optistore/internal/core/domain/model/notification"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Rendered is a message ready to hand to a mail transport.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

// Renderer holds the parsed text and HTML templates of every message kind.
type Renderer struct {
	text map[notification.Kind]*texttemplate.Template
	html map[notification.Kind]*htmltemplate.Template
}

func NewRenderer() (*Renderer, error) {
	kinds := []notification.Kind{
		notification.OrderConfirmation,
		notification.StatusUpdate,
		notification.DeliveryAssignment,
	}

	r := &Renderer{
		text: make(map[notification.Kind]*texttemplate.Template, len(kinds)),
		html: make(map[notification.Kind]*htmltemplate.Template, len(kinds)),
	}

	for _, kind := range kinds {
		textName := fmt.Sprintf("templates/%s.txt.tmpl", kind)
		t, err := texttemplate.New(string(kind)).Option("missingkey=zero").ParseFS(templateFS, textName)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", textName, err)
		}
		r.text[kind] = t.Lookup(fmt.Sprintf("%s.txt.tmpl", kind))

		htmlName := fmt.Sprintf("templates/%s.html.tmpl", kind)
		h, err := htmltemplate.New(string(kind)).Option("missingkey=zero").ParseFS(templateFS, htmlName)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", htmlName, err)
		}
		r.html[kind] = h.Lookup(fmt.Sprintf("%s.html.tmpl", kind))
	}

	return r, nil
}

// Render fills the templates of the message kind with the message data.
// HTML output escapes the data.
func (r *Renderer) Render(m *notification.Message) (Rendered, error) {
	if err := m.Validate(); err != nil {
		return Rendered{}, err
	}

	textTmpl, ok := r.text[m.Kind()]
	if !ok {
		return Rendered{}, fmt.Errorf("no template for message kind %q", m.Kind())
	}

	data := m.Data()

	var text bytes.Buffer
	if err := textTmpl.Execute(&text, data); err != nil {
		return Rendered{}, err
	}

	var html bytes.Buffer
	if err := r.html[m.Kind()].Execute(&html, data); err != nil {
		return Rendered{}, err
	}

	return Rendered{
		Subject: m.Subject(),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

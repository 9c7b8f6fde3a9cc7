package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

type Message struct {
	Subject string
	Text    string
	HTML    string
}

type templateSet struct {
	subject string
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

// Renderer turns a code and a greeting name into a mail body per purpose.
type Renderer struct {
	ttlMinutes int
	sets       map[Purpose]templateSet
}

type templateData struct {
	Name       string
	Code       string
	TTLMinutes int
}

const (
	verificationText = `Hi {{.Name}},

Your verification code is: {{.Code}}
It expires in {{.TTLMinutes}} minutes.`

	verificationHTML = `<p>Hi {{.Name}},</p>
<p>Your verification code is: <strong>{{.Code}}</strong></p>
<p>It expires in {{.TTLMinutes}} minutes.</p>`

	recoveryText = `Hi {{.Name}},

Your password recovery code is: {{.Code}}
It expires in {{.TTLMinutes}} minutes. If you did not ask to reset your password, ignore this email.`

	recoveryHTML = `<p>Hi {{.Name}},</p>
<p>Your password recovery code is: <strong>{{.Code}}</strong></p>
<p>It expires in {{.TTLMinutes}} minutes. If you did not ask to reset your password, ignore this email.</p>`
)

func NewRenderer(ttlMinutes int) (*Renderer, error) {
	r := &Renderer{ttlMinutes: ttlMinutes, sets: make(map[Purpose]templateSet)}

	defs := []struct {
		purpose Purpose
		subject string
		text    string
		html    string
	}{
		{PurposeVerification, "Your verification code", verificationText, verificationHTML},
		{PurposeRecovery, "Password recovery code", recoveryText, recoveryHTML},
	}

	for _, d := range defs {
		text, err := texttemplate.New(string(d.purpose) + ".txt").Parse(d.text)
		if err != nil {
			return nil, fmt.Errorf("parse %s text template: %w", d.purpose, err)
		}
		html, err := htmltemplate.New(string(d.purpose) + ".html").Parse(d.html)
		if err != nil {
			return nil, fmt.Errorf("parse %s html template: %w", d.purpose, err)
		}
		r.sets[d.purpose] = templateSet{subject: d.subject, text: text, html: html}
	}

	return r, nil
}

func (r *Renderer) Render(purpose Purpose, code, name string) (*Message, error) {
	set, ok := r.sets[purpose]
	if !ok {
		return nil, fmt.Errorf("no template for purpose %q", purpose)
	}

	data := templateData{Name: name, Code: code, TTLMinutes: r.ttlMinutes}

	var text, html bytes.Buffer
	if err := set.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render %s text: %w", purpose, err)
	}
	if err := set.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render %s html: %w", purpose, err)
	}

	return &Message{Subject: set.subject, Text: text.String(), HTML: html.String()}, nil
}

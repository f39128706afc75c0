// Package templates renders transactional emails from embedded template files.
package templates

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var files embed.FS

const otpTemplate = "otp"

// OTPData fills the password reset code email.
type OTPData struct {
	Name     string
	Code     string
	ValidFor string
	Resend   bool
}

// Message is a rendered email body in both formats.
type Message struct {
	HTML string
	Text string
}

// Renderer holds the parsed html and text template sets.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses every embedded template. A missing or malformed file
// fails here rather than on the first send.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	text, err := texttemplate.ParseFS(files, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// OTP renders the email carrying a password reset code.
func (r *Renderer) OTP(data OTPData) (Message, error) {
	return r.render(otpTemplate, data)
}

func (r *Renderer) render(name string, data any) (Message, error) {
	var html, text strings.Builder

	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s.html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s.txt: %w", name, err)
	}

	return Message{HTML: html.String(), Text: text.String()}, nil
}

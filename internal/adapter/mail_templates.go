package adapter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Email templates. Each one is parsed together with the shared layout.
const (
	templateWelcome       = "welcome"
	templatePasswordReset = "password_reset"
)

type templateData struct {
	Subject   string
	FirstName string
	URL       string
}

// templates holds one parsed layout per email kind.
type templates map[string]*template.Template

func parseTemplates() (templates, error) {
	t := make(templates)
	for _, name := range []string{templateWelcome, templatePasswordReset} {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing email template %q: %w", name, err)
		}
		t[name] = tmpl
	}

	return t, nil
}

func (t templates) render(name string, data templateData) (string, error) {
	tmpl, ok := t[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return "", fmt.Errorf("error rendering email template %q: %w", name, err)
	}

	return buf.String(), nil
}

// firstName returns the first word of a display name.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"eventhub/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

const (
	noLinkText        = "No link provided"
	noDescriptionText = "No description provided."
	startDateLayout   = "Monday, 2 January 2006"
)

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates.
// Every template name has a <name>_subject.txt, <name>.html and <name>.txt file.
type templateRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses the embedded templates once. Malformed embedded files panic.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html: htmltemplate.Must(htmltemplate.New("email").Option("missingkey=error").ParseFS(templateFS, "templates/*.html")),
		text: texttemplate.Must(texttemplate.New("email").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt")),
	}
}

// eventCreatedView is what the event_created templates render.
type eventCreatedView struct {
	OrganizerName string
	EventTitle    string
	Description   string
	StartDate     string
	Location      string
	// Link is the event link, or a placeholder; LinkURL is set only for http(s) links.
	Link    string
	LinkURL string
}

func newEventCreatedView(n *domain.EventNotification) eventCreatedView {
	v := eventCreatedView{
		OrganizerName: n.OrganizerName,
		EventTitle:    n.EventTitle,
		Description:   strings.TrimSpace(n.Description),
		StartDate:     n.StartDate,
		Location:      n.Location,
		Link:          strings.TrimSpace(n.Link),
	}
	if v.OrganizerName == "" {
		v.OrganizerName = "an organizer you follow"
	}
	if v.Description == "" {
		v.Description = noDescriptionText
	}
	if d, err := time.Parse(domain.DateLayout, n.StartDate); err == nil {
		v.StartDate = d.Format(startDateLayout)
	}
	if v.Link == "" {
		v.Link = noLinkText
	} else if u, err := url.Parse(v.Link); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		v.LinkURL = v.Link
	}
	return v
}

// view maps domain payloads to the shape their templates expect.
func view(data any) any {
	switch d := data.(type) {
	case *domain.EventNotification:
		if d != nil {
			return newEventCreatedView(d)
		}
	case domain.EventNotification:
		return newEventCreatedView(&d)
	}
	return data
}

// Render executes the named template (e.g. "event_created") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	data = view(data)
	subject, err = r.renderText(templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.renderHTML(templateName+".html", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.renderText(templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.Join(strings.Fields(subject), " "), htmlBody, textBody, nil
}

func (r *templateRenderer) renderHTML(name string, data any) (string, error) {
	t := r.html.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *templateRenderer) renderText(name string, data any) (string, error) {
	t := r.text.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Package web holds the dashboard's HTML template
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gravadigital/hotelops-dashboard/internal/dashboard"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/guest"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/notification"
)

// DashboardTemplate is the name of the dashboard page template
const DashboardTemplate = "dashboard.html"

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data rendered by the dashboard template
type Page struct {
	State    dashboard.State
	Cards    []guest.Card
	Channels []notification.Channel
}

// NewPage builds the template data for s
func NewPage(s dashboard.State) Page {
	return Page{
		State:    s,
		Cards:    s.Cards(),
		Channels: notification.Channels(),
	}
}

// Templates parses the embedded templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"isImage": func(contentType string) bool {
			return strings.HasPrefix(contentType, "image/")
		},
	}).ParseFS(templateFS, "templates/*.html")
}

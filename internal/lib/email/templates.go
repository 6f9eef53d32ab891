package email

import "embed"

//go:embed templates/*.html
var templates embed.FS

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateProjectActivity corresponds to templates/project_activity.html
	TemplateProjectActivity Template = "project_activity"
)

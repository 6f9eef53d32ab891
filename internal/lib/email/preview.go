package email

// PreviewData contains sample template data for local preview/testing.
//
//	templateName -> (templateVariableName -> exampleValue)
var PreviewData = map[Template]map[string]string{
	TemplateProjectActivity: {
		"Event":       "created",
		"ProjectID":   "1",
		"ProjectName": "Launch website",
	},
}

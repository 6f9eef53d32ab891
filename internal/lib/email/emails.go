package email

import (
	"fmt"
	"strconv"
)

// SendProjectActivityEmail tells the recipient that a project was created or
// removed. event is a past-tense verb such as "created".
func (c *Client) SendProjectActivityEmail(to, event string, projectID int64, projectName string) error {
	data := map[string]string{
		"Event":       event,
		"ProjectID":   strconv.FormatInt(projectID, 10),
		"ProjectName": projectName,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("Project %q %s", projectName, event),
		TemplateProjectActivity,
		data,
	)
}

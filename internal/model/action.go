package model

// ActionDescriptionMaxLength is the longest description, counted in runes,
// an action may carry.
const ActionDescriptionMaxLength = 128

// Action is a single step that belongs to a project.
type Action struct {
	ID          int64  `json:"id" db:"id"`
	ProjectID   int64  `json:"project_id" db:"project_id"`
	Description string `json:"description" db:"description"`
	Notes       string `json:"notes" db:"notes"`
}

// ActionPayload is the JSON body accepted by action create and update.
//
// The owning project always comes from the URL path, so a project_id sent in
// the body is ignored along with any other unknown field.
type ActionPayload struct {
	Description string `json:"description" validate:"required,max=128"`
	Notes       string `json:"notes" validate:"required"`
}

// Validate runs the struct tag rules. It returns validator.ValidationErrors
// when a rule fails.
func (p *ActionPayload) Validate() error {
	return validate.Struct(p)
}

// NewAction builds the record to insert under projectID.
func (p *ActionPayload) NewAction(projectID int64) Action {
	return Action{
		ProjectID:   projectID,
		Description: p.Description,
		Notes:       p.Notes,
	}
}

// Patch converts a validated payload into an action patch.
func (p *ActionPayload) Patch() ActionPatch {
	return ActionPatch{
		Description: &p.Description,
		Notes:       &p.Notes,
	}
}

// ActionPatch describes a partial update. Nil fields are left unchanged.
type ActionPatch struct {
	Description *string
	Notes       *string
}

// Apply merges the patch into a.
func (patch ActionPatch) Apply(a *Action) {
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
}

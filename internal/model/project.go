package model

// Project is a named unit of work that owns zero or more actions.
type Project struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// ProjectPayload is the JSON body accepted by project create and update.
// Unknown fields in the body are ignored.
type ProjectPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Validate runs the struct tag rules. It returns validator.ValidationErrors
// when a rule fails.
func (p *ProjectPayload) Validate() error {
	return validate.Struct(p)
}

// Patch converts a validated payload into a project patch.
func (p *ProjectPayload) Patch() ProjectPatch {
	return ProjectPatch{
		Name:        &p.Name,
		Description: &p.Description,
	}
}

// ProjectPatch describes a partial update. Nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// Apply merges the patch into p.
func (patch ProjectPatch) Apply(p *Project) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
}

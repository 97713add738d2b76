package dto

type CreateChecksheetTemplateDTO struct {
	Code        string                  `json:"code" validate:"required,min=2,max=32"`
	Name        string                  `json:"name" validate:"required,min=2"`
	Type        string                  `json:"type" validate:"required,checksheet_type"`
	Description string                  `json:"description" validate:"omitempty,max=500"`
	Items       []CreateTemplateItemDTO `json:"items,omitempty" validate:"omitempty,dive"`
}

type UpdateChecksheetTemplateDTO struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,min=2,max=32"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type ChecksheetTemplateDTO struct {
	ID          uint64            `json:"id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Items       []TemplateItemDTO `json:"items,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
}

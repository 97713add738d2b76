package dto

type CreateSectionDTO struct {
	SectionCode string `json:"section_code" validate:"required,min=2,max=32"`
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateSectionDTO struct {
	SectionCode *string `json:"section_code,omitempty" validate:"omitempty,min=2,max=32"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type SectionDTO struct {
	ID          uint64 `json:"id"`
	SectionCode string `json:"section_code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

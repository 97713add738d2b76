package dto

// Numeric values travel as strings so clients keep full decimal
// precision; decimal_string validates parseability.

type CreateTemplateItemDTO struct {
	TemplateID   uint64 `json:"template_id" validate:"omitempty,gt=0"`
	ItemName     string `json:"item_name" validate:"required,min=1"`
	Nominal      string `json:"nominal" validate:"omitempty,decimal_string"`
	ToleranceMin string `json:"tolerance_min" validate:"omitempty,decimal_string"`
	ToleranceMax string `json:"tolerance_max" validate:"omitempty,decimal_string"`
	Sequence     int    `json:"sequence" validate:"omitempty,gt=0"`
}

type BulkCreateTemplateItemsDTO struct {
	TemplateID uint64                  `json:"template_id" validate:"required,gt=0"`
	Items      []CreateTemplateItemDTO `json:"items" validate:"required,min=1,dive"`
}

type UpdateTemplateItemDTO struct {
	ItemName     *string `json:"item_name,omitempty" validate:"omitempty,min=1"`
	Nominal      *string `json:"nominal,omitempty" validate:"omitempty,decimal_string"`
	ToleranceMin *string `json:"tolerance_min,omitempty" validate:"omitempty,decimal_string"`
	ToleranceMax *string `json:"tolerance_max,omitempty" validate:"omitempty,decimal_string"`
	Sequence     *int    `json:"sequence,omitempty" validate:"omitempty,gt=0"`
}

type TemplateItemDTO struct {
	ID           uint64 `json:"id"`
	TemplateID   uint64 `json:"template_id"`
	ItemName     string `json:"item_name"`
	Nominal      string `json:"nominal,omitempty"`
	ToleranceMin string `json:"tolerance_min,omitempty"`
	ToleranceMax string `json:"tolerance_max,omitempty"`
	Sequence     int    `json:"sequence"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

package dto

type CreateTypeDTO struct {
	TypeCode    string `json:"type_code" validate:"required,min=2,max=32"`
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateTypeDTO struct {
	TypeCode    *string `json:"type_code,omitempty" validate:"omitempty,min=2,max=32"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type TypeDTO struct {
	ID          uint64 `json:"id"`
	TypeCode    string `json:"type_code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

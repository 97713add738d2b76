package dto

type CreateShiftDTO struct {
	ShiftCode string `json:"shift_code" validate:"required,min=1,max=16"`
	Name      string `json:"name" validate:"required,min=2"`
}

type UpdateShiftDTO struct {
	ShiftCode *string `json:"shift_code,omitempty" validate:"omitempty,min=1,max=16"`
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2"`
}

type ShiftDTO struct {
	ID        uint64 `json:"id"`
	ShiftCode string `json:"shift_code"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

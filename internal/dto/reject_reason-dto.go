package dto

type CreateRejectReasonDTO struct {
	ReasonCode string `json:"reason_code" validate:"required,min=2,max=32"`
	Name       string `json:"name" validate:"required,min=2"`
}

type UpdateRejectReasonDTO struct {
	ReasonCode *string `json:"reason_code,omitempty" validate:"omitempty,min=2,max=32"`
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2"`
}

type RejectReasonDTO struct {
	ID         uint64 `json:"id"`
	ReasonCode string `json:"reason_code"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

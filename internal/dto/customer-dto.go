package dto

type CreateCustomerDTO struct {
	CustomerCode string `json:"customer_code" validate:"required,min=2,max=32"`
	Name         string `json:"name" validate:"required,min=2"`
	Address      string `json:"address" validate:"omitempty,max=500"`
}

type UpdateCustomerDTO struct {
	CustomerCode *string `json:"customer_code,omitempty" validate:"omitempty,min=2,max=32"`
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type CustomerDTO struct {
	ID           uint64 `json:"id"`
	CustomerCode string `json:"customer_code"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

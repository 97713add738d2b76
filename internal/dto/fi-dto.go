package dto

type CreateFiDTO struct {
	IDFi              string                      `json:"id_fi" validate:"required,min=3,max=64"`
	FiNumber          string                      `json:"fi_number" validate:"required,min=1,max=64"`
	TemplateID        uint64                      `json:"template_id" validate:"required,gt=0"`
	ModelID           uint64                      `json:"model_id" validate:"required,gt=0"`
	CustomerID        uint64                      `json:"customer_id" validate:"required,gt=0"`
	ShiftID           uint64                      `json:"shift_id" validate:"required,gt=0"`
	SectionID         uint64                      `json:"section_id" validate:"required,gt=0"`
	VisualInspections []CreateVisualInspectionDTO `json:"visual_inspections" validate:"required,min=1,dive"`
}

type CreateVisualInspectionDTO struct {
	ItemName string `json:"item_name" validate:"required,min=1"`
	Status   string `json:"status" validate:"required,visual_judgment"`
	Remark   string `json:"remark" validate:"omitempty,max=500"`
}

type UpdateFiDTO struct {
	FiNumber *string `json:"fi_number,omitempty" validate:"omitempty,min=1,max=64"`
	ModelID  *uint64 `json:"model_id,omitempty" validate:"omitempty,gt=0"`
	ShiftID  *uint64 `json:"shift_id,omitempty" validate:"omitempty,gt=0"`
}

type FiDTO struct {
	ID                uint64                `json:"id"`
	IDFi              string                `json:"id_fi"`
	FiNumber          string                `json:"fi_number"`
	TemplateID        uint64                `json:"template_id"`
	ModelID           uint64                `json:"model_id"`
	CustomerID        uint64                `json:"customer_id"`
	ShiftID           uint64                `json:"shift_id"`
	SectionID         uint64                `json:"section_id"`
	OperatorID        uint64                `json:"operator_id"`
	Operator          *ShortUserDTO         `json:"operator,omitempty"`
	Status            string                `json:"status"`
	Version           int                   `json:"version"`
	VisualInspections []VisualInspectionDTO `json:"visual_inspections,omitempty"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at,omitempty"`
}

type VisualInspectionDTO struct {
	ID       uint64 `json:"id"`
	FiID     uint64 `json:"fi_id"`
	ItemName string `json:"item_name"`
	Status   string `json:"status"`
	Remark   string `json:"remark,omitempty"`
}

package dto

type CreateDirDTO struct {
	IDDir          string                 `json:"id_dir" validate:"required,min=3,max=64"`
	TemplateID     uint64                 `json:"template_id" validate:"required,gt=0"`
	ModelID        uint64                 `json:"model_id" validate:"required,gt=0"`
	PartID         uint64                 `json:"part_id" validate:"required,gt=0"`
	CustomerID     uint64                 `json:"customer_id" validate:"required,gt=0"`
	MaterialID     uint64                 `json:"material_id" validate:"required,gt=0"`
	ShiftID        uint64                 `json:"shift_id" validate:"required,gt=0"`
	SectionID      uint64                 `json:"section_id" validate:"required,gt=0"`
	Recommendation string                 `json:"recommendation" validate:"omitempty,max=1000"`
	GeneralNote    string                 `json:"general_note" validate:"omitempty,max=1000"`
	Measurements   []CreateMeasurementDTO `json:"measurements" validate:"required,min=1,dive"`
}

// CreateMeasurementDTO deliberately has no status field: the result is
// always computed server-side from actual vs the tolerance band.
type CreateMeasurementDTO struct {
	TemplateItemID uint64 `json:"template_item_id" validate:"required,gt=0"`
	Actual         string `json:"actual" validate:"required,decimal_string"`
	Nominal        string `json:"nominal" validate:"omitempty,decimal_string"`
	ToleranceMin   string `json:"tolerance_min" validate:"omitempty,decimal_string"`
	ToleranceMax   string `json:"tolerance_max" validate:"omitempty,decimal_string"`
}

type UpdateDirDTO struct {
	Recommendation *string `json:"recommendation,omitempty" validate:"omitempty,max=1000"`
	GeneralNote    *string `json:"general_note,omitempty" validate:"omitempty,max=1000"`
	ModelID        *uint64 `json:"model_id,omitempty" validate:"omitempty,gt=0"`
	PartID         *uint64 `json:"part_id,omitempty" validate:"omitempty,gt=0"`
	MaterialID     *uint64 `json:"material_id,omitempty" validate:"omitempty,gt=0"`
	ShiftID        *uint64 `json:"shift_id,omitempty" validate:"omitempty,gt=0"`
}

type DirDTO struct {
	ID             uint64           `json:"id"`
	IDDir          string           `json:"id_dir"`
	TemplateID     uint64           `json:"template_id"`
	ModelID        uint64           `json:"model_id"`
	PartID         uint64           `json:"part_id"`
	CustomerID     uint64           `json:"customer_id"`
	MaterialID     uint64           `json:"material_id"`
	ShiftID        uint64           `json:"shift_id"`
	SectionID      uint64           `json:"section_id"`
	OperatorID     uint64           `json:"operator_id"`
	Operator       *ShortUserDTO    `json:"operator,omitempty"`
	Status         string           `json:"status"`
	Recommendation string           `json:"recommendation,omitempty"`
	GeneralNote    string           `json:"general_note,omitempty"`
	Version        int              `json:"version"`
	Measurements   []MeasurementDTO `json:"measurements,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at,omitempty"`
}

type MeasurementDTO struct {
	ID           uint64                `json:"id"`
	DirID        uint64                `json:"dir_id"`
	Dimensional  int                   `json:"dimensional"`
	Nominal      string                `json:"nominal,omitempty"`
	ToleranceMin string                `json:"tolerance_min,omitempty"`
	ToleranceMax string                `json:"tolerance_max,omitempty"`
	Actual       string                `json:"actual"`
	Status       string                `json:"status"`
	Photos       []MeasurementPhotoDTO `json:"photos,omitempty"`
}

type CreateMeasurementPhotoDTO struct {
	Remark         string  `json:"remark" validate:"omitempty,max=500"`
	RejectReasonID *uint64 `json:"reject_reason_id,omitempty" validate:"omitempty,gt=0"`
}

type MeasurementPhotoDTO struct {
	ID             uint64  `json:"id"`
	MeasurementID  uint64  `json:"measurement_id"`
	PhotoPath      string  `json:"photo_path"`
	Remark         string  `json:"remark,omitempty"`
	RejectReasonID *uint64 `json:"reject_reason_id,omitempty"`
}

package dto

type ReportRowDTO struct {
	ChecksheetType string `json:"checksheet_type"` // dir | fi
	Number         string `json:"number"`          // id_dir or fi_number
	ModelName      string `json:"model_name"`
	CustomerName   string `json:"customer_name"`
	SectionName    string `json:"section_name"`
	OperatorName   string `json:"operator_name"`
	Status         string `json:"status"`
	ItemCount      int    `json:"item_count"`
	RejectCount    int    `json:"reject_count"`
	CreatedAt      string `json:"created_at"`
}

type DashboardSummaryDTO struct {
	DirByStatus map[string]uint64 `json:"dir_by_status"`
	FiByStatus  map[string]uint64 `json:"fi_by_status"`

	MeasurementsTotal    uint64  `json:"measurements_total"`
	MeasurementsRejected uint64  `json:"measurements_rejected"`
	RejectRate           float64 `json:"reject_rate"`
}

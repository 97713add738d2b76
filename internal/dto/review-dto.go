package dto

// WorkflowActionDTO is the body of approve/revision/reject calls.
type WorkflowActionDTO struct {
	Note string `json:"note" validate:"omitempty,max=1000"`
}

type ChecksheetApprovalDTO struct {
	ID            uint64        `json:"id"`
	ReferenceType string        `json:"reference_type"`
	ReferenceID   uint64        `json:"reference_id"`
	Decision      string        `json:"decision"`
	ApprovedBy    uint64        `json:"approved_by"`
	Approver      *ShortUserDTO `json:"approver,omitempty"`
	ApprovedAt    string        `json:"approved_at"`
	Note          string        `json:"note,omitempty"`
}

type ChecksheetRevisionDTO struct {
	ID             uint64        `json:"id"`
	ReferenceType  string        `json:"reference_type"`
	ReferenceID    uint64        `json:"reference_id"`
	RevisionNumber int           `json:"revision_number"`
	RevisionNote   string        `json:"revision_note,omitempty"`
	RevisedBy      uint64        `json:"revised_by"`
	Reviser        *ShortUserDTO `json:"reviser,omitempty"`
	CreatedAt      string        `json:"created_at"`
}

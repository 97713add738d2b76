package inspection

import (
	apperrors "checksheet-system/pkg/errors"
)

// Status is the review state of a checksheet (DIR or FI).
type Status string

const (
	StatusPending  Status = "pending"
	StatusRevision Status = "revision"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRevision, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further supervisor action is allowed.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Action is a supervisor decision on a checksheet.
type Action string

const (
	ActionApprove         Action = "approve"
	ActionRequestRevision Action = "request_revision"
	ActionReject          Action = "reject"
)

// transitions is the explicit state machine: which statuses each action
// may be applied from, and the status it leads to.
var transitions = map[Action]struct {
	from []Status
	to   Status
}{
	ActionApprove:         {from: []Status{StatusPending, StatusRevision}, to: StatusApproved},
	ActionRequestRevision: {from: []Status{StatusPending}, to: StatusRevision},
	ActionReject:          {from: []Status{StatusPending, StatusRevision}, to: StatusRejected},
}

// Transition returns the status that applying action to current yields,
// or a TransitionError when the action is not permitted from current.
func Transition(current Status, action Action) (Status, error) {
	t, ok := transitions[action]
	if !ok {
		return "", apperrors.NewInvalidInputError("unknown workflow action %q", action)
	}
	for _, from := range t.from {
		if current == from {
			return t.to, nil
		}
	}
	return "", &apperrors.TransitionError{From: string(current), Action: string(action)}
}

// ReferenceType tags which checksheet table a review record points at.
type ReferenceType string

const (
	RefDir ReferenceType = "dir"
	RefFi  ReferenceType = "fi"
)

// Reference is a validated polymorphic pointer to a DIR or FI row.
// Construct it through DirRef/FiRef so the type tag stays closed.
type Reference struct {
	Type ReferenceType
	ID   uint64
}

func DirRef(id uint64) Reference { return Reference{Type: RefDir, ID: id} }
func FiRef(id uint64) Reference  { return Reference{Type: RefFi, ID: id} }

func (r Reference) Valid() bool {
	return r.ID != 0 && (r.Type == RefDir || r.Type == RefFi)
}

package services

import (
	"errors"
	"fmt"
)

// User-facing ledger errors. All are recoverable; handlers map each to its
// own status so callers can tell them apart.
var (
	ErrEmptyCaseNo        = errors.New("case number required")
	ErrUnknownBucket      = errors.New("unknown bucket")
	ErrUnknownMember      = errors.New("member not on shift roster")
	ErrDuplicateCase      = errors.New("duplicate case")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrNotAssignee        = errors.New("only the assignee may confirm")
	ErrAlreadyConfirmed   = errors.New("assignment already confirmed")
)

// DuplicateCaseError reports which shift already holds the case number.
type DuplicateCaseError struct {
	CaseNo   string
	ShiftKey string
}

func (e *DuplicateCaseError) Error() string {
	return fmt.Sprintf("duplicate case %s in shift %s", e.CaseNo, e.ShiftKey)
}

func (e *DuplicateCaseError) Unwrap() error {
	return ErrDuplicateCase
}

package services

import "fmt"

// Reason classifies a gate outcome. The string values are part of the HTTP contract.
type Reason string

const (
	ReasonProtectionDisabled   Reason = "protection_disabled"
	ReasonGlobalCheckSkipped   Reason = "global_check_skipped"
	ReasonNewVisitor           Reason = "new_visitor"
	ReasonNewSubjectSubmission Reason = "new_subject_submission"
	ReasonDuplicateSubject     Reason = "duplicate_subject"
	ReasonCheckError           Reason = "check_error"
	ReasonError                Reason = "error"
)

// Decision is the result of one gate evaluation.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow(r Reason) Decision { return Decision{Allowed: true, Reason: r} }

// BlockKind distinguishes where a duplicate was caught.
type BlockKind string

const (
	BlockDuplicateSubject           BlockKind = "duplicate_subject"
	BlockDuplicateSubjectLateReject BlockKind = "duplicate_subject_late_reject"
)

// BlockReason is the typed form of submission_logs.block_reason.
type BlockReason struct {
	Kind    BlockKind
	Subject string
}

// String renders the stored tag, e.g. "duplicate_subject:Math".
func (b BlockReason) String() string {
	return fmt.Sprintf("%s:%s", b.Kind, b.Subject)
}

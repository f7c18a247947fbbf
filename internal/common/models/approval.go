package models

import "time"

// ApprovalStatus is the lifecycle state of a requisition's approval.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending_approval"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

type DecisionAction string

const (
	DecisionApproved DecisionAction = "approved"
	DecisionRejected DecisionAction = "rejected"
)

// ResolvedApprover is one entry of the frozen approval chain: either a
// concrete identity or a skip marker, never empty. Once written onto a
// requisition it is immutable; later org changes do not touch it.
type ResolvedApprover struct {
	StepOrder    int    `bson:"step_order" json:"step_order"`
	StepName     string `bson:"step_name" json:"step_name"`
	ApproverType string `bson:"approver_type" json:"approver_type"`
	UserID       string `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Skipped      bool   `bson:"skipped" json:"skipped"`
	SkipReason   string `bson:"skip_reason,omitempty" json:"skip_reason,omitempty"`
}

// Decision is one append-only audit record of an approve/reject action.
type Decision struct {
	Step          int            `bson:"step" json:"step"`
	StepName      string         `bson:"step_name" json:"step_name"`
	ApproverEmail string         `bson:"approver_email" json:"approver_email"`
	ApproverName  string         `bson:"approver_name" json:"approver_name"`
	Action        DecisionAction `bson:"action" json:"action"`
	Reason        string         `bson:"reason,omitempty" json:"reason,omitempty"`
	Timestamp     time.Time      `bson:"timestamp" json:"timestamp"`
}

// RequisitionApprovalState is the approval facet embedded in the
// requisition document under "approval". CurrentStep is meaningful only
// while Status is pending; 0 means cleared. CurrentApproverEmail is a
// denormalized lowercase copy of the current entry's email so pending
// queues can be answered with a plain indexed query.
type RequisitionApprovalState struct {
	WorkflowID           string             `bson:"workflow_id" json:"workflow_id"`
	WorkflowName         string             `bson:"workflow_name" json:"workflow_name"`
	ResolvedApprovers    []ResolvedApprover `bson:"resolved_approvers" json:"resolved_approvers"`
	Status               ApprovalStatus     `bson:"status" json:"status"`
	CurrentStep          int                `bson:"current_step,omitempty" json:"current_step,omitempty"`
	CurrentApproverEmail string             `bson:"current_approver_email,omitempty" json:"current_approver_email,omitempty"`
	Aprobaciones         []Decision         `bson:"aprobaciones" json:"aprobaciones"`
	SubmittedAt          time.Time          `bson:"submitted_at" json:"submitted_at"`
	Stale                bool               `bson:"stale,omitempty" json:"stale,omitempty"`
}

package approval

import (
	"fmt"
	"strings"
	"time"

	common_models "go-hiring/internal/common/models"
)

// The state machine is pure compute over the approval facet; persistence
// (and the compare-and-swap that serializes racing approvers) lives in
// the requisition repository.

// FirstActionableStep returns the order of the first non-skipped entry.
func FirstActionableStep(chain []common_models.ResolvedApprover) (int, bool) {
	for _, entry := range chain {
		if !entry.Skipped {
			return entry.StepOrder, true
		}
	}
	return 0, false
}

// NextActionableStep returns the first non-skipped entry after the given
// step order.
func NextActionableStep(chain []common_models.ResolvedApprover, after int) (int, bool) {
	for _, entry := range chain {
		if entry.StepOrder > after && !entry.Skipped {
			return entry.StepOrder, true
		}
	}
	return 0, false
}

func entryAt(chain []common_models.ResolvedApprover, order int) *common_models.ResolvedApprover {
	for i := range chain {
		if chain[i].StepOrder == order {
			return &chain[i]
		}
	}
	return nil
}

// NewState builds the initial approval facet from a frozen chain. When
// every step resolved to skipped the requisition is approved on the
// spot with an empty decision log, so it never sits pending with no one
// able to act.
func NewState(workflowID, workflowName string, chain []common_models.ResolvedApprover) *common_models.RequisitionApprovalState {
	state := &common_models.RequisitionApprovalState{
		WorkflowID:        workflowID,
		WorkflowName:      workflowName,
		ResolvedApprovers: chain,
		Aprobaciones:      []common_models.Decision{},
		SubmittedAt:       time.Now(),
	}

	if first, ok := FirstActionableStep(chain); ok {
		state.Status = common_models.ApprovalStatusPending
		state.CurrentStep = first
		state.CurrentApproverEmail = strings.ToLower(entryAt(chain, first).Email)
	} else {
		state.Status = common_models.ApprovalStatusApproved
	}

	return state
}

// IsActionableBy reports whether the given email is the current approver.
func IsActionableBy(state *common_models.RequisitionApprovalState, email string) bool {
	if state == nil || state.Status != common_models.ApprovalStatusPending {
		return false
	}
	entry := entryAt(state.ResolvedApprovers, state.CurrentStep)
	if entry == nil || entry.Skipped {
		return false
	}
	return strings.EqualFold(entry.Email, email)
}

// ApplyDecision validates and applies one approve/reject action,
// returning a new state; the input is never mutated so a failed
// persistence attempt leaves nothing half-applied. The decision log is
// append-only: entries are only ever added, at the end.
func ApplyDecision(state *common_models.RequisitionApprovalState, actorEmail string, action common_models.DecisionAction, reason string) (*common_models.RequisitionApprovalState, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: requisition was never submitted", ErrInvalidState)
	}
	if state.Status != common_models.ApprovalStatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, state.Status)
	}

	entry := entryAt(state.ResolvedApprovers, state.CurrentStep)
	if entry == nil || entry.Skipped {
		return nil, fmt.Errorf("%w: current step %d has no actionable approver", ErrInvalidState, state.CurrentStep)
	}
	if !strings.EqualFold(entry.Email, actorEmail) {
		return nil, fmt.Errorf("%w: step %d expects %s", ErrUnauthorized, state.CurrentStep, entry.Email)
	}

	if action == common_models.DecisionRejected && strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a rejection requires a reason", ErrInvalidArgument)
	}
	if action != common_models.DecisionApproved && action != common_models.DecisionRejected {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, action)
	}

	next := *state
	next.Aprobaciones = make([]common_models.Decision, len(state.Aprobaciones), len(state.Aprobaciones)+1)
	copy(next.Aprobaciones, state.Aprobaciones)
	next.Aprobaciones = append(next.Aprobaciones, common_models.Decision{
		Step:          entry.StepOrder,
		StepName:      entry.StepName,
		ApproverEmail: entry.Email,
		ApproverName:  entry.Name,
		Action:        action,
		Reason:        reason,
		Timestamp:     time.Now(),
	})

	if action == common_models.DecisionRejected {
		next.Status = common_models.ApprovalStatusRejected
		next.CurrentStep = 0
		next.CurrentApproverEmail = ""
		return &next, nil
	}

	if nextStep, ok := NextActionableStep(state.ResolvedApprovers, state.CurrentStep); ok {
		next.CurrentStep = nextStep
		next.CurrentApproverEmail = strings.ToLower(entryAt(state.ResolvedApprovers, nextStep).Email)
	} else {
		next.Status = common_models.ApprovalStatusApproved
		next.CurrentStep = 0
		next.CurrentApproverEmail = ""
	}

	return &next, nil
}

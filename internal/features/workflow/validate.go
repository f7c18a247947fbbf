package workflow

import (
	"errors"
	"fmt"
)

// ErrInvalidTemplate marks definition-time validation failures. Callers
// match it with errors.Is to map onto a 400 response.
var ErrInvalidTemplate = errors.New("invalid workflow template")

var knownApproverTypes = map[ApproverType]bool{
	ApproverHiringManager:   true,
	ApproverAreaManager:     true,
	ApproverGerenciaManager: true,
	ApproverSpecificUser:    true,
	ApproverRecruitmentLead: true,
}

// ValidateTemplate enforces the definition-time invariants: non-empty
// steps, contiguous 1..N ordering, and static identity set iff the step
// is specific_user. A misconfigured specific_user step is rejected here,
// never skipped at resolution time.
func ValidateTemplate(t *WorkflowTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if t.HoldingID == "" {
		return fmt.Errorf("%w: holding_id is required", ErrInvalidTemplate)
	}
	if len(t.Steps) == 0 {
		return fmt.Errorf("%w: at least one step is required", ErrInvalidTemplate)
	}

	for i, step := range t.Steps {
		if step.Order != i+1 {
			return fmt.Errorf("%w: steps must be contiguously ordered 1..N, step %d has order %d", ErrInvalidTemplate, i+1, step.Order)
		}
		if step.Name == "" {
			return fmt.Errorf("%w: step %d has no name", ErrInvalidTemplate, step.Order)
		}
		if !knownApproverTypes[step.ApproverType] {
			return fmt.Errorf("%w: step %d has unknown approver type %q", ErrInvalidTemplate, step.Order, step.ApproverType)
		}

		isSpecific := step.ApproverType == ApproverSpecificUser
		hasStatic := step.StaticUserID != ""
		if isSpecific && (!hasStatic || step.StaticUserEmail == "") {
			return fmt.Errorf("%w: step %d is specific_user but has no static identity", ErrInvalidTemplate, step.Order)
		}
		if !isSpecific && hasStatic {
			return fmt.Errorf("%w: step %d carries a static identity but is not specific_user", ErrInvalidTemplate, step.Order)
		}
	}

	return nil
}

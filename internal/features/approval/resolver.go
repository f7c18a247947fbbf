package approval

import (
	"context"
	"fmt"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/requisition"
	"go-hiring/internal/features/workflow"
)

// OrgDirectory answers role-occupancy lookups during resolution. A nil
// identity with a nil error means the role is unoccupied and the step
// will be skipped; a non-nil error aborts the whole resolution.
type OrgDirectory interface {
	ManagerOfArea(ctx context.Context, areaID string) (*common_models.Identity, error)
	ManagerOfGerencia(ctx context.Context, gerenciaID string) (*common_models.Identity, error)
	RecruitmentLead(ctx context.Context, holdingID string) (*common_models.Identity, error)
}

// ResolveChain instantiates a template against one requisition's
// organizational snapshot. The result has exactly one entry per step, in
// step order: a concrete identity or a skip marker, never a hole. It is
// computed once at submission and frozen; later org changes must not
// alter it, which is why the chain stores identities rather than role
// references.
func ResolveChain(ctx context.Context, rq *requisition.Requisition, template *workflow.WorkflowTemplate, dir OrgDirectory) ([]common_models.ResolvedApprover, error) {
	if len(template.Steps) == 0 {
		return nil, fmt.Errorf("%w: template %q has no steps", ErrValidation, template.Name)
	}

	chain := make([]common_models.ResolvedApprover, 0, len(template.Steps))
	for _, step := range template.Steps {
		entry := common_models.ResolvedApprover{
			StepOrder:    step.Order,
			StepName:     step.Name,
			ApproverType: string(step.ApproverType),
		}

		switch step.ApproverType {
		case workflow.ApproverSpecificUser:
			// Static identities are validated at definition time; a
			// missing one here is a template bug, not a skip.
			if step.StaticUserID == "" || step.StaticUserEmail == "" {
				return nil, fmt.Errorf("%w: step %d is specific_user without a static identity", ErrValidation, step.Order)
			}
			entry.UserID = step.StaticUserID
			entry.Email = step.StaticUserEmail
			entry.Name = step.StaticUserName

		case workflow.ApproverHiringManager:
			// The creator always exists; never skipped.
			entry.UserID = rq.CreatedBy.UserID
			entry.Email = rq.CreatedBy.Email
			entry.Name = rq.CreatedBy.Name

		case workflow.ApproverAreaManager:
			identity, err := dir.ManagerOfArea(ctx, rq.AreaID)
			if err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrResolutionFailure, step.Order, err)
			}
			if identity == nil {
				entry.Skipped = true
				entry.SkipReason = fmt.Sprintf("no area manager assigned for %s", rq.AreaID)
			} else {
				entry.UserID, entry.Email, entry.Name = identity.UserID, identity.Email, identity.Name
			}

		case workflow.ApproverGerenciaManager:
			identity, err := dir.ManagerOfGerencia(ctx, rq.GerenciaID)
			if err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrResolutionFailure, step.Order, err)
			}
			if identity == nil {
				entry.Skipped = true
				entry.SkipReason = fmt.Sprintf("no gerencia manager assigned for %s", rq.GerenciaID)
			} else {
				entry.UserID, entry.Email, entry.Name = identity.UserID, identity.Email, identity.Name
			}

		case workflow.ApproverRecruitmentLead:
			identity, err := dir.RecruitmentLead(ctx, rq.HoldingID)
			if err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrResolutionFailure, step.Order, err)
			}
			if identity == nil {
				entry.Skipped = true
				entry.SkipReason = fmt.Sprintf("no recruitment lead assigned for %s", rq.HoldingID)
			} else {
				entry.UserID, entry.Email, entry.Name = identity.UserID, identity.Email, identity.Name
			}

		default:
			return nil, fmt.Errorf("%w: step %d has unknown approver type %q", ErrValidation, step.Order, step.ApproverType)
		}

		chain = append(chain, entry)
	}

	return chain, nil
}

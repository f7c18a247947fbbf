package approval

import (
	"context"
	"errors"
	"fmt"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/audit"
	"go-hiring/internal/features/requisition"
	"go-hiring/internal/features/workflow"

	"go.uber.org/zap"
)

type ApprovalService interface {
	// SubmitForApproval resolves the chosen workflow against the RQ's
	// organizational snapshot and freezes the result. A requisition can
	// only be submitted once.
	SubmitForApproval(ctx context.Context, rqID string, workflowID string) (*requisition.Requisition, error)

	// Decide records one approve/reject by the current approver.
	Decide(ctx context.Context, rqID string, actorEmail string, action common_models.DecisionAction, reason string) (*requisition.Requisition, error)

	// ListActionable returns the requisitions whose current non-skipped
	// step resolves to the given email.
	ListActionable(ctx context.Context, email string) ([]requisition.Requisition, error)
}

type ApprovalServiceImpl struct {
	RQRepo          requisition.RequisitionRepository
	WorkflowService workflow.WorkflowService
	Directory       OrgDirectory
	AuditService    audit.AuditService
	Publisher       Publisher
	Logger          *zap.Logger
}

func NewApprovalService(
	rqRepo requisition.RequisitionRepository,
	workflowService workflow.WorkflowService,
	directory OrgDirectory,
	auditService audit.AuditService,
	publisher Publisher,
	logger *zap.Logger,
) ApprovalService {
	return &ApprovalServiceImpl{
		RQRepo:          rqRepo,
		WorkflowService: workflowService,
		Directory:       directory,
		AuditService:    auditService,
		Publisher:       publisher,
		Logger:          logger,
	}
}

func (s *ApprovalServiceImpl) SubmitForApproval(ctx context.Context, rqID string, workflowID string) (*requisition.Requisition, error) {
	rq, err := s.RQRepo.GetByID(ctx, rqID)
	if err != nil {
		return nil, err
	}
	if rq == nil {
		return nil, ErrNotFound
	}
	if rq.Approval != nil {
		return nil, fmt.Errorf("%w: requisition already submitted", ErrInvalidState)
	}

	template, err := s.WorkflowService.SelectTemplate(ctx, rq.HoldingID, workflowID, map[string]interface{}{
		"title":         rq.Title,
		"positions":     rq.Positions,
		"puesto_id":     rq.PuestoID,
		"area_id":       rq.AreaID,
		"gerencia_id":   rq.GerenciaID,
		"holding_id":    rq.HoldingID,
		"store_id":      rq.StoreID,
		"brand_id":      rq.BrandID,
		"creator_email": rq.CreatedBy.Email,
	})
	if err != nil {
		return nil, err
	}
	if err := workflow.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	chain, err := ResolveChain(ctx, rq, template, s.Directory)
	if err != nil {
		// Nothing was persisted; the caller retries the submission wholesale.
		return nil, err
	}

	state := NewState(template.ID.Hex(), template.Name, chain)

	attached, err := s.RQRepo.AttachApprovalState(ctx, rqID, state)
	if err != nil {
		return nil, err
	}
	if !attached {
		return nil, fmt.Errorf("%w: requisition already submitted", ErrInvalidState)
	}
	rq.Approval = state

	action := "submitted"
	if state.Status == common_models.ApprovalStatusApproved {
		action = "auto_approved"
		s.Logger.Info("requisition auto-approved, all steps skipped",
			zap.String("rq_id", rqID),
			zap.String("workflow", template.Name),
		)
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionSubmit, "requisitions", rqID, map[string]common_models.Change{
		"workflow": {New: template.Name},
		"status":   {Old: nil, New: string(state.Status)},
	})

	s.Publisher.Publish(Event{
		RequisitionID: rqID,
		Action:        action,
		Status:        state.Status,
		CurrentStep:   state.CurrentStep,
		Timestamp:     state.SubmittedAt,
	})

	return rq, nil
}

func (s *ApprovalServiceImpl) Decide(ctx context.Context, rqID string, actorEmail string, action common_models.DecisionAction, reason string) (*requisition.Requisition, error) {
	rq, err := s.RQRepo.GetByID(ctx, rqID)
	if err != nil {
		return nil, err
	}
	if rq == nil {
		return nil, ErrNotFound
	}

	next, err := ApplyDecision(rq.Approval, actorEmail, action, reason)
	if err != nil {
		// Races and stale UIs land here constantly; keep them out of the
		// error stream.
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidState) {
			s.Logger.Debug("decision not applicable",
				zap.String("rq_id", rqID),
				zap.String("actor", actorEmail),
				zap.String("cause", err.Error()),
			)
		}
		return nil, err
	}

	swapped, err := s.RQRepo.SwapApprovalState(ctx, rqID, rq.Approval.CurrentStep, next)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, fmt.Errorf("%w: a concurrent decision was recorded first", ErrInvalidState)
	}
	rq.Approval = next

	decision := next.Aprobaciones[len(next.Aprobaciones)-1]
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionApproval, "requisitions", rqID, map[string]common_models.Change{
		"step":   {New: decision.Step},
		"action": {New: string(decision.Action)},
		"status": {New: string(next.Status)},
	})

	s.Publisher.Publish(Event{
		RequisitionID: rqID,
		Action:        string(decision.Action),
		Status:        next.Status,
		CurrentStep:   next.CurrentStep,
		ActorEmail:    decision.ApproverEmail,
		Timestamp:     decision.Timestamp,
	})

	return rq, nil
}

func (s *ApprovalServiceImpl) ListActionable(ctx context.Context, email string) ([]requisition.Requisition, error) {
	return s.RQRepo.ListPendingFor(ctx, email)
}

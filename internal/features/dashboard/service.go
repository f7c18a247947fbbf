package dashboard

import (
	"context"
	"fmt"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/requisition"

	"github.com/xuri/excelize/v2"
)

// ChainStepView is one row of the rendered approval chain.
type ChainStepView struct {
	StepOrder     int                     `json:"step_order"`
	StepName      string                  `json:"step_name"`
	ApproverType  string                  `json:"approver_type"`
	ApproverName  string                  `json:"approver_name,omitempty"`
	ApproverEmail string                  `json:"approver_email,omitempty"`
	State         string                  `json:"state"` // completed | current | future | skipped
	SkipReason    string                  `json:"skip_reason,omitempty"`
	Decision      *common_models.Decision `json:"decision,omitempty"`
}

type DashboardService interface {
	ChainView(ctx context.Context, rqID string) ([]ChainStepView, error)
	ListPending(ctx context.Context, approverEmail string) ([]requisition.Requisition, error)
	ListByStatus(ctx context.Context, holdingID string, status common_models.ApprovalStatus) ([]requisition.Requisition, error)
	ExportRequisitions(ctx context.Context, holdingID string) ([]byte, string, error)
}

type DashboardServiceImpl struct {
	RQRepo requisition.RequisitionRepository
}

func NewDashboardService(rqRepo requisition.RequisitionRepository) DashboardService {
	return &DashboardServiceImpl{RQRepo: rqRepo}
}

// BuildChainView annotates a frozen chain with its display state. It is a
// pure projection; nothing here mutates the requisition.
func BuildChainView(state *common_models.RequisitionApprovalState) []ChainStepView {
	if state == nil {
		return nil
	}

	decisions := make(map[int]*common_models.Decision, len(state.Aprobaciones))
	for i := range state.Aprobaciones {
		decisions[state.Aprobaciones[i].Step] = &state.Aprobaciones[i]
	}

	views := make([]ChainStepView, 0, len(state.ResolvedApprovers))
	for _, entry := range state.ResolvedApprovers {
		view := ChainStepView{
			StepOrder:     entry.StepOrder,
			StepName:      entry.StepName,
			ApproverType:  entry.ApproverType,
			ApproverName:  entry.Name,
			ApproverEmail: entry.Email,
			SkipReason:    entry.SkipReason,
		}

		switch {
		case entry.Skipped:
			view.State = "skipped"
		case decisions[entry.StepOrder] != nil:
			view.State = "completed"
			view.Decision = decisions[entry.StepOrder]
		case state.Status == common_models.ApprovalStatusPending && entry.StepOrder == state.CurrentStep:
			view.State = "current"
		default:
			view.State = "future"
		}

		views = append(views, view)
	}

	return views
}

func (s *DashboardServiceImpl) ChainView(ctx context.Context, rqID string) ([]ChainStepView, error) {
	rq, err := s.RQRepo.GetByID(ctx, rqID)
	if err != nil {
		return nil, err
	}
	if rq == nil || rq.Approval == nil {
		return nil, nil
	}
	return BuildChainView(rq.Approval), nil
}

func (s *DashboardServiceImpl) ListPending(ctx context.Context, approverEmail string) ([]requisition.Requisition, error) {
	return s.RQRepo.ListPendingFor(ctx, approverEmail)
}

func (s *DashboardServiceImpl) ListByStatus(ctx context.Context, holdingID string, status common_models.ApprovalStatus) ([]requisition.Requisition, error) {
	return s.RQRepo.ListByStatus(ctx, holdingID, status, 0)
}

func (s *DashboardServiceImpl) ExportRequisitions(ctx context.Context, holdingID string) ([]byte, string, error) {
	statuses := []common_models.ApprovalStatus{
		common_models.ApprovalStatusPending,
		common_models.ApprovalStatusApproved,
		common_models.ApprovalStatusRejected,
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Requisitions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"ID", "Title", "Workflow", "Status", "Current Step", "Current Approver", "Submitted At", "Decisions", "Stale"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 2
	for _, status := range statuses {
		rqs, err := s.RQRepo.ListByStatus(ctx, holdingID, status, 0)
		if err != nil {
			return nil, "", err
		}
		for _, rq := range rqs {
			if rq.Approval == nil {
				continue
			}
			values := []interface{}{
				rq.ID.Hex(),
				rq.Title,
				rq.Approval.WorkflowName,
				string(rq.Approval.Status),
				rq.Approval.CurrentStep,
				rq.Approval.CurrentApproverEmail,
				rq.Approval.SubmittedAt.Format("2006-01-02 15:04"),
				len(rq.Approval.Aprobaciones),
				rq.Approval.Stale,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheetName, cell, v)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := "requisitions.xlsx"
	if holdingID != "" {
		filename = fmt.Sprintf("requisitions_%s.xlsx", holdingID)
	}
	return buf.Bytes(), filename, nil
}

package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/requisition"
	"go-hiring/internal/features/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockRQRepo struct {
	RQs map[string]*requisition.Requisition

	// SwapRejects simulates a concurrent decision winning the CAS.
	SwapRejects bool
}

func (m *MockRQRepo) Create(ctx context.Context, rq *requisition.Requisition) error {
	return nil
}
func (m *MockRQRepo) GetByID(ctx context.Context, id string) (*requisition.Requisition, error) {
	return m.RQs[id], nil
}
func (m *MockRQRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]requisition.Requisition, error) {
	return nil, nil
}
func (m *MockRQRepo) AttachApprovalState(ctx context.Context, id string, state *common_models.RequisitionApprovalState) (bool, error) {
	rq := m.RQs[id]
	if rq == nil || rq.Approval != nil {
		return false, nil
	}
	rq.Approval = state
	return true, nil
}
func (m *MockRQRepo) SwapApprovalState(ctx context.Context, id string, expectedStep int, state *common_models.RequisitionApprovalState) (bool, error) {
	if m.SwapRejects {
		return false, nil
	}
	rq := m.RQs[id]
	if rq == nil || rq.Approval == nil || rq.Approval.CurrentStep != expectedStep {
		return false, nil
	}
	rq.Approval = state
	return true, nil
}
func (m *MockRQRepo) ListPendingFor(ctx context.Context, approverEmail string) ([]requisition.Requisition, error) {
	var out []requisition.Requisition
	for _, rq := range m.RQs {
		if rq.Approval != nil && rq.Approval.Status == common_models.ApprovalStatusPending && rq.Approval.CurrentApproverEmail == approverEmail {
			out = append(out, *rq)
		}
	}
	return out, nil
}
func (m *MockRQRepo) ListByStatus(ctx context.Context, holdingID string, status common_models.ApprovalStatus, limit int64) ([]requisition.Requisition, error) {
	return nil, nil
}
func (m *MockRQRepo) MarkStalePending(ctx context.Context, submittedBefore time.Time) (int64, error) {
	return 0, nil
}
func (m *MockRQRepo) ListDecidedSince(ctx context.Context, since time.Time) ([]requisition.Requisition, error) {
	return nil, nil
}
func (m *MockRQRepo) EnsureIndexes(ctx context.Context) error {
	return nil
}

type MockWorkflowService struct {
	Template *workflow.WorkflowTemplate
}

func (m *MockWorkflowService) CreateTemplate(ctx context.Context, template *workflow.WorkflowTemplate) error {
	return nil
}
func (m *MockWorkflowService) GetTemplate(ctx context.Context, id string) (*workflow.WorkflowTemplate, error) {
	return m.Template, nil
}
func (m *MockWorkflowService) ListTemplates(ctx context.Context, holdingID string) ([]workflow.WorkflowTemplate, error) {
	return nil, nil
}
func (m *MockWorkflowService) UpdateTemplate(ctx context.Context, id string, template *workflow.WorkflowTemplate) error {
	return nil
}
func (m *MockWorkflowService) DeleteTemplate(ctx context.Context, id string) error {
	return nil
}
func (m *MockWorkflowService) SetDefault(ctx context.Context, holdingID string, id string) error {
	return nil
}
func (m *MockWorkflowService) SelectTemplate(ctx context.Context, holdingID string, explicitID string, rqVars map[string]interface{}) (*workflow.WorkflowTemplate, error) {
	return m.Template, nil
}

type MockAuditService struct{}

func (MockAuditService) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	return nil
}
func (MockAuditService) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type MockPublisher struct {
	Events []Event
}

func (m *MockPublisher) Publish(event Event) {
	m.Events = append(m.Events, event)
}

func newTestService(repo *MockRQRepo, tpl *workflow.WorkflowTemplate, dir OrgDirectory, pub *MockPublisher) ApprovalService {
	return &ApprovalServiceImpl{
		RQRepo:          repo,
		WorkflowService: &MockWorkflowService{Template: tpl},
		Directory:       dir,
		AuditService:    MockAuditService{},
		Publisher:       pub,
		Logger:          zap.NewNop(),
	}
}

func pendingRQ() (*requisition.Requisition, string) {
	id := primitive.NewObjectID()
	return &requisition.Requisition{
		ID:         id,
		Title:      "Backend Engineer",
		Positions:  1,
		AreaID:     "area-1",
		GerenciaID: "ger-1",
		HoldingID:  "hold-1",
		CreatedBy:  common_models.Identity{UserID: "u-creator", Email: "creator@x.com", Name: "Creator"},
	}, id.Hex()
}

func TestSubmitForApprovalFreezesChain(t *testing.T) {
	rq, id := pendingRQ()
	repo := &MockRQRepo{RQs: map[string]*requisition.Requisition{id: rq}}
	dir := &MockDirectory{
		GerenciaManagers: map[string]*common_models.Identity{"ger-1": {UserID: "u-gm", Email: "gm@x.com", Name: "Ger Mgr"}},
	}
	tpl := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "Gerencia", ApproverType: workflow.ApproverGerenciaManager},
	)
	pub := &MockPublisher{}
	service := newTestService(repo, tpl, dir, pub)

	out, err := service.SubmitForApproval(context.Background(), id, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if out.Approval == nil {
		t.Fatal("approval state not attached")
	}
	if out.Approval.Status != common_models.ApprovalStatusPending {
		t.Errorf("expected pending, got %s", out.Approval.Status)
	}
	if out.Approval.CurrentApproverEmail != "gm@x.com" {
		t.Errorf("expected gm@x.com as current, got %s", out.Approval.CurrentApproverEmail)
	}
	if len(pub.Events) != 1 || pub.Events[0].Action != "submitted" {
		t.Errorf("expected one submitted event, got %+v", pub.Events)
	}
}

func TestSubmitForApprovalTwiceFails(t *testing.T) {
	rq, id := pendingRQ()
	repo := &MockRQRepo{RQs: map[string]*requisition.Requisition{id: rq}}
	dir := &MockDirectory{
		GerenciaManagers: map[string]*common_models.Identity{"ger-1": {UserID: "u-gm", Email: "gm@x.com"}},
	}
	tpl := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "Gerencia", ApproverType: workflow.ApproverGerenciaManager},
	)
	service := newTestService(repo, tpl, dir, &MockPublisher{})

	if _, err := service.SubmitForApproval(context.Background(), id, ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := service.SubmitForApproval(context.Background(), id, "")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("second submit must fail with ErrInvalidState, got %v", err)
	}
}

func TestSubmitForApprovalAllSkippedAutoApproves(t *testing.T) {
	rq, id := pendingRQ()
	repo := &MockRQRepo{RQs: map[string]*requisition.Requisition{id: rq}}
	tpl := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "Area", ApproverType: workflow.ApproverAreaManager},
	)
	pub := &MockPublisher{}
	service := newTestService(repo, tpl, &MockDirectory{}, pub)

	out, err := service.SubmitForApproval(context.Background(), id, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if out.Approval.Status != common_models.ApprovalStatusApproved {
		t.Errorf("expected auto-approval, got %s", out.Approval.Status)
	}
	if len(pub.Events) != 1 || pub.Events[0].Action != "auto_approved" {
		t.Errorf("expected auto_approved event, got %+v", pub.Events)
	}
}

func TestDecideLostRace(t *testing.T) {
	rq, id := pendingRQ()
	rq.Approval = NewState("wf1", "Standard", []common_models.ResolvedApprover{
		{StepOrder: 1, StepName: "Gerencia", Email: "gm@x.com", Name: "Ger Mgr"},
	})
	repo := &MockRQRepo{RQs: map[string]*requisition.Requisition{id: rq}, SwapRejects: true}
	service := newTestService(repo, nil, &MockDirectory{}, &MockPublisher{})

	_, err := service.Decide(context.Background(), id, "gm@x.com", common_models.DecisionApproved, "")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("lost CAS must surface ErrInvalidState, got %v", err)
	}
}

func TestDecideRecordsAndPublishes(t *testing.T) {
	rq, id := pendingRQ()
	rq.Approval = NewState("wf1", "Standard", []common_models.ResolvedApprover{
		{StepOrder: 1, StepName: "Gerencia", Email: "gm@x.com", Name: "Ger Mgr"},
	})
	repo := &MockRQRepo{RQs: map[string]*requisition.Requisition{id: rq}}
	pub := &MockPublisher{}
	service := newTestService(repo, nil, &MockDirectory{}, pub)

	out, err := service.Decide(context.Background(), id, "gm@x.com", common_models.DecisionApproved, "")
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if out.Approval.Status != common_models.ApprovalStatusApproved {
		t.Errorf("expected approved, got %s", out.Approval.Status)
	}
	if len(pub.Events) != 1 || pub.Events[0].ActorEmail != "gm@x.com" {
		t.Errorf("expected decision event from gm@x.com, got %+v", pub.Events)
	}
}

func TestListActionableMatchesCurrentApprover(t *testing.T) {
	rq, id := pendingRQ()
	rq.Approval = NewState("wf1", "Standard", []common_models.ResolvedApprover{
		{StepOrder: 1, StepName: "Gerencia", Email: "GM@x.com", Name: "Ger Mgr"},
	})
	repo := &MockRQRepo{RQs: map[string]*requisition.Requisition{id: rq}}
	service := newTestService(repo, nil, &MockDirectory{}, &MockPublisher{})

	// The denormalized queue key is stored lowercase.
	rqs, err := service.ListActionable(context.Background(), "gm@x.com")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rqs) != 1 {
		t.Errorf("expected 1 actionable requisition, got %d", len(rqs))
	}
}

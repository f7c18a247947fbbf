package workflow

import (
	"context"
	"testing"

	common_models "go-hiring/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockWorkflowRepo struct {
	Templates map[string]*WorkflowTemplate
	Default   *WorkflowTemplate
	Active    []WorkflowTemplate
}

func (m *MockWorkflowRepo) Create(ctx context.Context, template *WorkflowTemplate) error {
	return nil
}
func (m *MockWorkflowRepo) GetByID(ctx context.Context, id string) (*WorkflowTemplate, error) {
	return m.Templates[id], nil
}
func (m *MockWorkflowRepo) GetDefault(ctx context.Context, holdingID string) (*WorkflowTemplate, error) {
	return m.Default, nil
}
func (m *MockWorkflowRepo) List(ctx context.Context, holdingID string) ([]WorkflowTemplate, error) {
	return nil, nil
}
func (m *MockWorkflowRepo) ListActive(ctx context.Context, holdingID string) ([]WorkflowTemplate, error) {
	return m.Active, nil
}
func (m *MockWorkflowRepo) Update(ctx context.Context, id string, template *WorkflowTemplate) error {
	return nil
}
func (m *MockWorkflowRepo) Delete(ctx context.Context, id string) error {
	return nil
}
func (m *MockWorkflowRepo) SetDefault(ctx context.Context, holdingID string, id string) error {
	return nil
}

type NopAuditService struct{}

func (NopAuditService) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	return nil
}
func (NopAuditService) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func TestSelectTemplateExplicitID(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &MockWorkflowRepo{
		Templates: map[string]*WorkflowTemplate{
			id.Hex(): {ID: id, Name: "Executive", HoldingID: "hold-1", Active: true},
		},
	}
	service := &WorkflowServiceImpl{Repo: repo, AuditService: NopAuditService{}}

	tpl, err := service.SelectTemplate(context.Background(), "hold-1", id.Hex(), nil)
	if err != nil {
		t.Fatalf("explicit selection failed: %v", err)
	}
	if tpl.Name != "Executive" {
		t.Errorf("wrong template selected: %s", tpl.Name)
	}
}

func TestSelectTemplateExplicitIDWrongHolding(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &MockWorkflowRepo{
		Templates: map[string]*WorkflowTemplate{
			id.Hex(): {ID: id, Name: "Executive", HoldingID: "hold-2", Active: true},
		},
	}
	service := &WorkflowServiceImpl{Repo: repo, AuditService: NopAuditService{}}

	if _, err := service.SelectTemplate(context.Background(), "hold-1", id.Hex(), nil); err == nil {
		t.Error("cross-holding selection must fail")
	}
}

func TestSelectTemplateMatchScriptWins(t *testing.T) {
	repo := &MockWorkflowRepo{
		Active: []WorkflowTemplate{
			{Name: "Bulk Hiring", HoldingID: "hold-1", Active: true, MatchScript: `match := rq.positions > 5`},
			{Name: "Standard", HoldingID: "hold-1", Active: true},
		},
		Default: &WorkflowTemplate{Name: "Standard", HoldingID: "hold-1", Active: true, IsDefault: true},
	}
	service := &WorkflowServiceImpl{Repo: repo, AuditService: NopAuditService{}}

	tpl, err := service.SelectTemplate(context.Background(), "hold-1", "", map[string]interface{}{"positions": 10})
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if tpl.Name != "Bulk Hiring" {
		t.Errorf("expected match script to win, got %s", tpl.Name)
	}

	tpl, err = service.SelectTemplate(context.Background(), "hold-1", "", map[string]interface{}{"positions": 2})
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if tpl.Name != "Standard" {
		t.Errorf("expected fall-through to default, got %s", tpl.Name)
	}
}

func TestSelectTemplateBrokenScriptFallsThrough(t *testing.T) {
	repo := &MockWorkflowRepo{
		Active: []WorkflowTemplate{
			{Name: "Broken", HoldingID: "hold-1", Active: true, MatchScript: `match := rq.`},
		},
		Default: &WorkflowTemplate{Name: "Standard", HoldingID: "hold-1", Active: true, IsDefault: true},
	}
	service := &WorkflowServiceImpl{Repo: repo, AuditService: NopAuditService{}}

	tpl, err := service.SelectTemplate(context.Background(), "hold-1", "", map[string]interface{}{"positions": 1})
	if err != nil {
		t.Fatalf("a broken script must not block submission: %v", err)
	}
	if tpl.Name != "Standard" {
		t.Errorf("expected default after broken script, got %s", tpl.Name)
	}
}

func TestSelectTemplateNoDefault(t *testing.T) {
	service := &WorkflowServiceImpl{Repo: &MockWorkflowRepo{}, AuditService: NopAuditService{}}

	if _, err := service.SelectTemplate(context.Background(), "hold-1", "", nil); err == nil {
		t.Error("missing default must be an error")
	}
}

func TestEvalMatchScript(t *testing.T) {
	ok, err := evalMatchScript(context.Background(), `match := rq.gerencia_id == "ger-7"`, map[string]interface{}{"gerencia_id": "ger-7"})
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if !ok {
		t.Error("expected match")
	}

	ok, err = evalMatchScript(context.Background(), `match := rq.positions > 5`, map[string]interface{}{"positions": 3})
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if ok {
		t.Error("expected no match")
	}
}

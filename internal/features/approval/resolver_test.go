package approval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/requisition"
	"go-hiring/internal/features/workflow"
)

type MockDirectory struct {
	AreaManagers     map[string]*common_models.Identity
	GerenciaManagers map[string]*common_models.Identity
	Leads            map[string]*common_models.Identity
	Err              error
}

func (m *MockDirectory) ManagerOfArea(ctx context.Context, areaID string) (*common_models.Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.AreaManagers[areaID], nil
}

func (m *MockDirectory) ManagerOfGerencia(ctx context.Context, gerenciaID string) (*common_models.Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.GerenciaManagers[gerenciaID], nil
}

func (m *MockDirectory) RecruitmentLead(ctx context.Context, holdingID string) (*common_models.Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Leads[holdingID], nil
}

func testRequisition() *requisition.Requisition {
	return &requisition.Requisition{
		Title:      "Backend Engineer",
		Positions:  2,
		AreaID:     "area-1",
		GerenciaID: "ger-1",
		HoldingID:  "hold-1",
		CreatedBy:  common_models.Identity{UserID: "u-creator", Email: "creator@x.com", Name: "Creator"},
	}
}

func testTemplate(steps ...workflow.WorkflowStep) *workflow.WorkflowTemplate {
	return &workflow.WorkflowTemplate{
		Name:      "Standard",
		HoldingID: "hold-1",
		Steps:     steps,
	}
}

func TestResolveChainFreezesIdentities(t *testing.T) {
	dir := &MockDirectory{
		AreaManagers:     map[string]*common_models.Identity{"area-1": {UserID: "u-am", Email: "am@x.com", Name: "Area Mgr"}},
		GerenciaManagers: map[string]*common_models.Identity{"ger-1": {UserID: "u-gm", Email: "gm@x.com", Name: "Ger Mgr"}},
		Leads:            map[string]*common_models.Identity{"hold-1": {UserID: "u-rl", Email: "rl@x.com", Name: "Lead"}},
	}
	template := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "Area", ApproverType: workflow.ApproverAreaManager},
		workflow.WorkflowStep{Order: 2, Name: "Gerencia", ApproverType: workflow.ApproverGerenciaManager},
		workflow.WorkflowStep{Order: 3, Name: "RRHH", ApproverType: workflow.ApproverRecruitmentLead},
	)

	chain, err := ResolveChain(context.Background(), testRequisition(), template, dir)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("expected one entry per step, got %d", len(chain))
	}

	want := []string{"am@x.com", "gm@x.com", "rl@x.com"}
	for i, entry := range chain {
		if entry.Skipped {
			t.Errorf("step %d unexpectedly skipped: %s", entry.StepOrder, entry.SkipReason)
		}
		if entry.Email != want[i] {
			t.Errorf("step %d: expected %s, got %s", entry.StepOrder, want[i], entry.Email)
		}
		if entry.StepOrder != i+1 {
			t.Errorf("chain out of step order at index %d: %d", i, entry.StepOrder)
		}
	}

	// Re-pointing the role afterwards must not matter: the chain already
	// carries the concrete identity, not the role reference.
	dir.AreaManagers["area-1"] = &common_models.Identity{UserID: "u-new", Email: "new@x.com"}
	if chain[0].Email != "am@x.com" {
		t.Error("chain entry changed after directory update")
	}
}

func TestResolveChainUnoccupiedRoleIsSkipped(t *testing.T) {
	dir := &MockDirectory{
		GerenciaManagers: map[string]*common_models.Identity{"ger-1": {UserID: "u-gm", Email: "gm@x.com"}},
	}
	template := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "Area", ApproverType: workflow.ApproverAreaManager},
		workflow.WorkflowStep{Order: 2, Name: "Gerencia", ApproverType: workflow.ApproverGerenciaManager},
	)

	chain, err := ResolveChain(context.Background(), testRequisition(), template, dir)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if !chain[0].Skipped {
		t.Fatal("unoccupied area manager step must be skipped")
	}
	if chain[0].SkipReason == "" {
		t.Error("skip entries must carry a reason")
	}
	if chain[1].Skipped {
		t.Error("occupied step must not be skipped")
	}
}

func TestResolveChainDirectoryErrorAborts(t *testing.T) {
	dir := &MockDirectory{Err: fmt.Errorf("mongo: connection refused")}
	template := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "Area", ApproverType: workflow.ApproverAreaManager},
	)

	_, err := ResolveChain(context.Background(), testRequisition(), template, dir)
	if !errors.Is(err, ErrResolutionFailure) {
		t.Errorf("directory failure must map to ErrResolutionFailure, got %v", err)
	}
}

func TestResolveChainHiringManagerIsCreator(t *testing.T) {
	template := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "Manager", ApproverType: workflow.ApproverHiringManager},
	)

	chain, err := ResolveChain(context.Background(), testRequisition(), template, &MockDirectory{})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if chain[0].Email != "creator@x.com" {
		t.Errorf("hiring manager step must bind the creator, got %s", chain[0].Email)
	}
}

func TestResolveChainSpecificUser(t *testing.T) {
	template := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "CFO", ApproverType: workflow.ApproverSpecificUser, StaticUserID: "u-cfo", StaticUserEmail: "cfo@x.com", StaticUserName: "CFO"},
	)

	chain, err := ResolveChain(context.Background(), testRequisition(), template, &MockDirectory{})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if chain[0].Email != "cfo@x.com" || chain[0].Skipped {
		t.Errorf("static step resolved wrong: %+v", chain[0])
	}

	broken := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "CFO", ApproverType: workflow.ApproverSpecificUser},
	)
	_, err = ResolveChain(context.Background(), testRequisition(), broken, &MockDirectory{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("specific_user without identity must fail validation, got %v", err)
	}
}

func TestResolveChainUnknownApproverType(t *testing.T) {
	template := testTemplate(
		workflow.WorkflowStep{Order: 1, Name: "??", ApproverType: "vice_president"},
	)

	_, err := ResolveChain(context.Background(), testRequisition(), template, &MockDirectory{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("unknown approver type must fail validation, got %v", err)
	}
}

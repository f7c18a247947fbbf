package dashboard

import (
	"testing"
	"time"

	common_models "go-hiring/internal/common/models"
)

func TestBuildChainView(t *testing.T) {
	state := &common_models.RequisitionApprovalState{
		WorkflowName: "Standard",
		Status:       common_models.ApprovalStatusPending,
		CurrentStep:  3,
		ResolvedApprovers: []common_models.ResolvedApprover{
			{StepOrder: 1, StepName: "Area", Skipped: true, SkipReason: "no area manager assigned for area-1"},
			{StepOrder: 2, StepName: "Gerencia", Email: "gm@x.com", Name: "Ger Mgr"},
			{StepOrder: 3, StepName: "RRHH", Email: "rl@x.com", Name: "Lead"},
			{StepOrder: 4, StepName: "CFO", Email: "cfo@x.com", Name: "CFO"},
		},
		Aprobaciones: []common_models.Decision{
			{Step: 2, StepName: "Gerencia", ApproverEmail: "gm@x.com", Action: common_models.DecisionApproved, Timestamp: time.Now()},
		},
	}

	views := BuildChainView(state)
	if len(views) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(views))
	}

	want := []string{"skipped", "completed", "current", "future"}
	for i, view := range views {
		if view.State != want[i] {
			t.Errorf("step %d: expected %s, got %s", view.StepOrder, want[i], view.State)
		}
	}

	if views[0].SkipReason == "" {
		t.Error("skipped row must carry its reason")
	}
	if views[1].Decision == nil || views[1].Decision.Action != common_models.DecisionApproved {
		t.Error("completed row must carry its decision")
	}
	if views[2].Decision != nil {
		t.Error("current row must not carry a decision")
	}
}

func TestBuildChainViewTerminalStates(t *testing.T) {
	state := &common_models.RequisitionApprovalState{
		Status: common_models.ApprovalStatusRejected,
		ResolvedApprovers: []common_models.ResolvedApprover{
			{StepOrder: 1, StepName: "Gerencia", Email: "gm@x.com"},
			{StepOrder: 2, StepName: "RRHH", Email: "rl@x.com"},
		},
		Aprobaciones: []common_models.Decision{
			{Step: 1, ApproverEmail: "gm@x.com", Action: common_models.DecisionRejected, Reason: "headcount frozen"},
		},
	}

	views := BuildChainView(state)
	if views[0].State != "completed" {
		t.Errorf("decided row must be completed, got %s", views[0].State)
	}
	if views[1].State != "future" {
		t.Errorf("unreached row after rejection stays future, got %s", views[1].State)
	}

	if BuildChainView(nil) != nil {
		t.Error("nil state must render as nil")
	}
}

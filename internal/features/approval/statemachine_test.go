package approval

import (
	"errors"
	"testing"

	common_models "go-hiring/internal/common/models"
)

func threeStepChain() []common_models.ResolvedApprover {
	return []common_models.ResolvedApprover{
		{StepOrder: 1, StepName: "Area Manager", ApproverType: "area_manager", Skipped: true, SkipReason: "no area manager assigned for area-1"},
		{StepOrder: 2, StepName: "Gerencia Manager", ApproverType: "gerencia_manager", UserID: "u2", Email: "g@x.com", Name: "Gerencia Boss"},
		{StepOrder: 3, StepName: "Recruitment Lead", ApproverType: "recruitment_lead", UserID: "u3", Email: "r@x.com", Name: "Recruiter"},
	}
}

func TestNewStateSkipsToFirstActionableStep(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	if state.Status != common_models.ApprovalStatusPending {
		t.Fatalf("expected pending, got %s", state.Status)
	}
	if state.CurrentStep != 2 {
		t.Errorf("expected current step 2, got %d", state.CurrentStep)
	}
	if state.CurrentApproverEmail != "g@x.com" {
		t.Errorf("expected current approver g@x.com, got %s", state.CurrentApproverEmail)
	}
	if len(state.Aprobaciones) != 0 {
		t.Errorf("expected empty decision log, got %d entries", len(state.Aprobaciones))
	}
}

func TestNewStateAllSkippedAutoApproves(t *testing.T) {
	chain := []common_models.ResolvedApprover{
		{StepOrder: 1, StepName: "Area Manager", Skipped: true, SkipReason: "no area manager assigned for area-1"},
		{StepOrder: 2, StepName: "Gerencia Manager", Skipped: true, SkipReason: "no gerencia manager assigned for ger-1"},
	}

	state := NewState("wf1", "Standard", chain)

	if state.Status != common_models.ApprovalStatusApproved {
		t.Fatalf("expected auto-approved, got %s", state.Status)
	}
	if state.CurrentStep != 0 {
		t.Errorf("expected current step cleared, got %d", state.CurrentStep)
	}
	if len(state.Aprobaciones) != 0 {
		t.Errorf("auto-approval must not fabricate decisions, got %d", len(state.Aprobaciones))
	}
}

func TestApplyDecisionFullApprovalRun(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	state, err := ApplyDecision(state, "g@x.com", common_models.DecisionApproved, "")
	if err != nil {
		t.Fatalf("step 2 approve failed: %v", err)
	}
	if state.CurrentStep != 3 {
		t.Fatalf("expected advance to step 3, got %d", state.CurrentStep)
	}
	if state.CurrentApproverEmail != "r@x.com" {
		t.Errorf("expected current approver r@x.com, got %s", state.CurrentApproverEmail)
	}

	state, err = ApplyDecision(state, "r@x.com", common_models.DecisionApproved, "lgtm")
	if err != nil {
		t.Fatalf("step 3 approve failed: %v", err)
	}
	if state.Status != common_models.ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", state.Status)
	}
	if state.CurrentStep != 0 || state.CurrentApproverEmail != "" {
		t.Errorf("terminal state should clear current step, got %d / %q", state.CurrentStep, state.CurrentApproverEmail)
	}

	if len(state.Aprobaciones) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(state.Aprobaciones))
	}
	if state.Aprobaciones[0].Step != 2 || state.Aprobaciones[1].Step != 3 {
		t.Errorf("decisions out of order: %+v", state.Aprobaciones)
	}
	if state.Aprobaciones[0].ApproverName != "Gerencia Boss" {
		t.Errorf("decision must carry the frozen approver name, got %q", state.Aprobaciones[0].ApproverName)
	}
}

func TestApplyDecisionRejectIsTerminal(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	state, err := ApplyDecision(state, "g@x.com", common_models.DecisionRejected, "headcount frozen")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if state.Status != common_models.ApprovalStatusRejected {
		t.Fatalf("expected rejected, got %s", state.Status)
	}

	_, err = ApplyDecision(state, "r@x.com", common_models.DecisionApproved, "")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("decisions on a terminal state must fail with ErrInvalidState, got %v", err)
	}
}

func TestApplyDecisionRejectRequiresReason(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	_, err := ApplyDecision(state, "g@x.com", common_models.DecisionRejected, "   ")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for blank reason, got %v", err)
	}
}

func TestApplyDecisionWrongActor(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	_, err := ApplyDecision(state, "wrong@x.com", common_models.DecisionApproved, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// The recruitment lead is in the chain but not yet current.
	_, err = ApplyDecision(state, "r@x.com", common_models.DecisionApproved, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("a future approver acting early must get ErrUnauthorized, got %v", err)
	}
}

func TestApplyDecisionActorEmailCaseInsensitive(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	next, err := ApplyDecision(state, "G@X.COM", common_models.DecisionApproved, "")
	if err != nil {
		t.Fatalf("case-insensitive match failed: %v", err)
	}
	if next.CurrentStep != 3 {
		t.Errorf("expected advance to 3, got %d", next.CurrentStep)
	}
}

func TestApplyDecisionDoesNotMutateInput(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	_, err := ApplyDecision(state, "g@x.com", common_models.DecisionApproved, "")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if state.CurrentStep != 2 {
		t.Errorf("input state mutated: current step is now %d", state.CurrentStep)
	}
	if len(state.Aprobaciones) != 0 {
		t.Errorf("input decision log mutated: %d entries", len(state.Aprobaciones))
	}
}

func TestApplyDecisionNeverSubmitted(t *testing.T) {
	_, err := ApplyDecision(nil, "g@x.com", common_models.DecisionApproved, "")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState for nil state, got %v", err)
	}
}

func TestIsActionableBy(t *testing.T) {
	state := NewState("wf1", "Standard", threeStepChain())

	if !IsActionableBy(state, "g@x.com") {
		t.Error("current approver must be actionable")
	}
	if IsActionableBy(state, "r@x.com") {
		t.Error("future approver must not be actionable")
	}
	if IsActionableBy(nil, "g@x.com") {
		t.Error("nil state must not be actionable")
	}

	done, _ := ApplyDecision(state, "g@x.com", common_models.DecisionRejected, "no budget")
	if IsActionableBy(done, "r@x.com") {
		t.Error("terminal state must not be actionable")
	}
}

func TestNextActionableStepSkipsHoles(t *testing.T) {
	chain := []common_models.ResolvedApprover{
		{StepOrder: 1, Email: "a@x.com"},
		{StepOrder: 2, Skipped: true},
		{StepOrder: 3, Skipped: true},
		{StepOrder: 4, Email: "d@x.com"},
	}

	next, ok := NextActionableStep(chain, 1)
	if !ok || next != 4 {
		t.Errorf("expected next actionable 4, got %d (ok=%v)", next, ok)
	}

	if _, ok := NextActionableStep(chain, 4); ok {
		t.Error("no step after the last must report ok=false")
	}
}

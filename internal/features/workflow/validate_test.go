package workflow

import (
	"errors"
	"testing"
)

func validTemplate() *WorkflowTemplate {
	return &WorkflowTemplate{
		Name:      "Standard",
		HoldingID: "hold-1",
		Steps: []WorkflowStep{
			{Order: 1, Name: "Area Manager", ApproverType: ApproverAreaManager},
			{Order: 2, Name: "Gerencia Manager", ApproverType: ApproverGerenciaManager},
			{Order: 3, Name: "RRHH", ApproverType: ApproverRecruitmentLead},
		},
	}
}

func TestValidateTemplateAccepts(t *testing.T) {
	if err := ValidateTemplate(validTemplate()); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}
}

func TestValidateTemplateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkflowTemplate)
	}{
		{"empty name", func(tpl *WorkflowTemplate) { tpl.Name = "" }},
		{"empty holding", func(tpl *WorkflowTemplate) { tpl.HoldingID = "" }},
		{"no steps", func(tpl *WorkflowTemplate) { tpl.Steps = nil }},
		{"gap in order", func(tpl *WorkflowTemplate) { tpl.Steps[2].Order = 5 }},
		{"duplicate order", func(tpl *WorkflowTemplate) { tpl.Steps[1].Order = 1 }},
		{"unnamed step", func(tpl *WorkflowTemplate) { tpl.Steps[0].Name = "" }},
		{"unknown approver type", func(tpl *WorkflowTemplate) { tpl.Steps[0].ApproverType = "ceo" }},
		{"specific_user without identity", func(tpl *WorkflowTemplate) {
			tpl.Steps[0].ApproverType = ApproverSpecificUser
		}},
		{"static identity on dynamic step", func(tpl *WorkflowTemplate) {
			tpl.Steps[0].StaticUserID = "u1"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate()
			tt.mutate(tpl)
			err := ValidateTemplate(tpl)
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("expected ErrInvalidTemplate, got %v", err)
			}
		})
	}
}

func TestValidateTemplateSpecificUserWithIdentity(t *testing.T) {
	tpl := validTemplate()
	tpl.Steps[0] = WorkflowStep{
		Order:           1,
		Name:            "CFO",
		ApproverType:    ApproverSpecificUser,
		StaticUserID:    "u-cfo",
		StaticUserEmail: "cfo@x.com",
	}

	if err := ValidateTemplate(tpl); err != nil {
		t.Fatalf("specific_user with identity rejected: %v", err)
	}
}

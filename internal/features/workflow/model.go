package workflow

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApproverType is the role category a step requires. Dynamic types are
// resolved against the org directory at submission time; specific_user
// is bound statically when the template is defined.
type ApproverType string

const (
	ApproverHiringManager   ApproverType = "hiring_manager"
	ApproverAreaManager     ApproverType = "area_manager"
	ApproverGerenciaManager ApproverType = "gerencia_manager"
	ApproverSpecificUser    ApproverType = "specific_user"
	ApproverRecruitmentLead ApproverType = "recruitment_lead"
)

// WorkflowTemplate is a named, reusable approval sequence for one holding.
// At most one template per holding carries is_default.
type WorkflowTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	HoldingID   string             `bson:"holding_id" json:"holding_id"`
	Steps       []WorkflowStep     `bson:"steps" json:"steps"`
	IsDefault   bool               `bson:"is_default" json:"is_default"`
	Active      bool               `bson:"active" json:"active"`
	Priority    int                `bson:"priority" json:"priority"` // Evaluation order for match scripts (0 = highest)
	MatchScript string             `bson:"match_script,omitempty" json:"match_script,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// WorkflowStep is one entry of the ordered approval sequence.
type WorkflowStep struct {
	ID           string       `bson:"id" json:"id"` // uuid
	Order        int          `bson:"order" json:"order"`
	Name         string       `bson:"name" json:"name"`
	ApproverType ApproverType `bson:"approver_type" json:"approver_type"`

	// Static identity, set iff ApproverType == specific_user
	StaticUserID    string `bson:"static_user_id,omitempty" json:"static_user_id,omitempty"`
	StaticUserEmail string `bson:"static_user_email,omitempty" json:"static_user_email,omitempty"`
	StaticUserName  string `bson:"static_user_name,omitempty" json:"static_user_name,omitempty"`
}

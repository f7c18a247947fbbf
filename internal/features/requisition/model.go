package requisition

import (
	"time"

	common_models "go-hiring/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Requisition is a request to fill one or more positions. Organizational
// coordinates (puesto -> area -> gerencia -> holding) are captured at
// creation so the resolver never has to walk the tree at decision time.
type Requisition struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Positions  int                `bson:"positions" json:"positions"`
	PuestoID   string             `bson:"puesto_id" json:"puesto_id"`
	AreaID     string             `bson:"area_id" json:"area_id"`
	GerenciaID string             `bson:"gerencia_id" json:"gerencia_id"`
	HoldingID  string             `bson:"holding_id" json:"holding_id"`
	StoreID    string             `bson:"store_id,omitempty" json:"store_id,omitempty"`
	BrandID    string             `bson:"brand_id,omitempty" json:"brand_id,omitempty"`

	CreatedBy common_models.Identity `bson:"created_by" json:"created_by"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time              `bson:"updated_at" json:"updated_at"`

	// Approval is nil until the requisition is submitted.
	Approval *common_models.RequisitionApprovalState `bson:"approval,omitempty" json:"approval,omitempty"`
}

package org

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Holding is the top of the organizational tree. Each holding groups the
// brands/stores it operates and designates one recruitment lead.
type Holding struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name"`
	RecruitmentLeadUserID string             `bson:"recruitment_lead_user_id,omitempty" json:"recruitment_lead_user_id,omitempty"`
	Active                bool               `bson:"active" json:"active"`
}

// Gerencia is a top-level management division inside a holding.
type Gerencia struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	HoldingID     string             `bson:"holding_id" json:"holding_id"`
	ManagerUserID string             `bson:"manager_user_id,omitempty" json:"manager_user_id,omitempty"`
}

// Area belongs to a gerencia and carries its own manager occupancy.
type Area struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	GerenciaID    string             `bson:"gerencia_id" json:"gerencia_id"`
	ManagerUserID string             `bson:"manager_user_id,omitempty" json:"manager_user_id,omitempty"`
}

// Puesto is a concrete job position inside an area; requisitions are
// opened against a puesto and inherit its area/gerencia coordinates.
type Puesto struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	AreaID string             `bson:"area_id" json:"area_id"`
}

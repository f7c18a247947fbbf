package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	HoldingIDKey ContextKey = "holding_id"
)

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionLogin    AuditAction = "LOGIN"
	AuditActionSubmit   AuditAction = "SUBMIT"
	AuditActionApproval AuditAction = "APPROVAL"
	AuditActionTemplate AuditAction = "TEMPLATE"
	AuditActionSync     AuditAction = "SYNC"
	AuditActionCron     AuditAction = "CRON"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HoldingID string             `bson:"holding_id,omitempty" json:"holding_id,omitempty"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`          // The feature/collection name
	RecordID  string             `bson:"record_id" json:"record_id"`    // The ID of the record being modified
	ActorID   string             `bson:"actor_id" json:"actor_id"`      // User ID who performed the action
	ActorName string             `bson:"-" json:"actor_name,omitempty"` // Populated Name of the actor
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Identity is a concrete person reference as frozen into approval chains
// and decision records: id + email + display name, nothing live.
type Identity struct {
	UserID string `bson:"user_id" json:"user_id"`
	Email  string `bson:"email" json:"email"`
	Name   string `bson:"name" json:"name"`
}

// User is the directory entry behind every identity lookup.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	HoldingID    string             `bson:"holding_id" json:"holding_id"`
	PuestoID     string             `bson:"puesto_id,omitempty" json:"puesto_id,omitempty"`
	Roles        []string           `bson:"roles" json:"roles"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Identity projects the user to the frozen reference shape.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID.Hex(), Email: u.Email, Name: u.Name}
}

// Log is a system log row persisted by the async zap tee writer.
type Log struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppId     string             `bson:"app_id" json:"app_id"`
	Level     int                `bson:"level" json:"level"`
	Message   string             `bson:"message" json:"message"`
	Caller    string             `bson:"caller,omitempty" json:"caller,omitempty"`
	IpAddress string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	HoldingID string             `bson:"holding_id,omitempty" json:"holding_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

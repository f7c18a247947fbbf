package workflow

import (
	"context"
	"errors"
	"time"

	"go-hiring/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WorkflowRepository interface {
	Create(ctx context.Context, template *WorkflowTemplate) error
	GetByID(ctx context.Context, id string) (*WorkflowTemplate, error)
	GetDefault(ctx context.Context, holdingID string) (*WorkflowTemplate, error)
	List(ctx context.Context, holdingID string) ([]WorkflowTemplate, error)
	ListActive(ctx context.Context, holdingID string) ([]WorkflowTemplate, error)
	Update(ctx context.Context, id string, template *WorkflowTemplate) error
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, holdingID string, id string) error
}

type WorkflowRepositoryImpl struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

func NewWorkflowRepository(mongodb *database.MongodbDB) WorkflowRepository {
	return &WorkflowRepositoryImpl{
		Client:     mongodb.Client,
		Collection: mongodb.DB.Collection("workflow_templates"),
	}
}

func (r *WorkflowRepositoryImpl) Create(ctx context.Context, template *WorkflowTemplate) error {
	_, err := r.Collection.InsertOne(ctx, template)
	return err
}

func (r *WorkflowRepositoryImpl) GetByID(ctx context.Context, id string) (*WorkflowTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var template WorkflowTemplate
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *WorkflowRepositoryImpl) GetDefault(ctx context.Context, holdingID string) (*WorkflowTemplate, error) {
	var template WorkflowTemplate
	err := r.Collection.FindOne(ctx, bson.M{"holding_id": holdingID, "is_default": true, "active": true}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *WorkflowRepositoryImpl) List(ctx context.Context, holdingID string) ([]WorkflowTemplate, error) {
	filter := bson.M{}
	if holdingID != "" {
		filter["holding_id"] = holdingID
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var templates []WorkflowTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *WorkflowRepositoryImpl) ListActive(ctx context.Context, holdingID string) ([]WorkflowTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"holding_id": holdingID, "active": true}, opts)
	if err != nil {
		return nil, err
	}
	var templates []WorkflowTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *WorkflowRepositoryImpl) Update(ctx context.Context, id string, template *WorkflowTemplate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"name":         template.Name,
			"slug":         template.Slug,
			"description":  template.Description,
			"steps":        template.Steps,
			"active":       template.Active,
			"priority":     template.Priority,
			"match_script": template.MatchScript,
			"updated_at":   time.Now(),
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *WorkflowRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// SetDefault clears the previous default and marks the given template in
// one transaction, so there is never a window with zero or two defaults
// for a holding.
func (r *WorkflowRepositoryImpl) SetDefault(ctx context.Context, holdingID string, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	session, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.Collection.UpdateMany(sc,
			bson.M{"holding_id": holdingID, "is_default": true},
			bson.M{"$set": bson.M{"is_default": false, "updated_at": time.Now()}},
		); err != nil {
			return nil, err
		}

		res, err := r.Collection.UpdateOne(sc,
			bson.M{"_id": oid, "holding_id": holdingID},
			bson.M{"$set": bson.M{"is_default": true, "updated_at": time.Now()}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, errors.New("template not found in holding")
		}
		return nil, nil
	})
	return err
}

package requisition

import (
	"context"
	"strings"
	"time"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RequisitionRepository interface {
	Create(ctx context.Context, rq *Requisition) error
	GetByID(ctx context.Context, id string) (*Requisition, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Requisition, error)

	// AttachApprovalState freezes the resolved chain onto an RQ that has
	// none yet. Returns false when the RQ already carries a chain, so a
	// submission can never re-resolve.
	AttachApprovalState(ctx context.Context, id string, state *common_models.RequisitionApprovalState) (bool, error)

	// SwapApprovalState is the compare-and-swap behind approve/reject:
	// the write only lands if the RQ is still pending at expectedStep.
	// Returns false when a concurrent decision won the race.
	SwapApprovalState(ctx context.Context, id string, expectedStep int, state *common_models.RequisitionApprovalState) (bool, error)

	ListPendingFor(ctx context.Context, approverEmail string) ([]Requisition, error)
	ListByStatus(ctx context.Context, holdingID string, status common_models.ApprovalStatus, limit int64) ([]Requisition, error)
	MarkStalePending(ctx context.Context, submittedBefore time.Time) (int64, error)
	ListDecidedSince(ctx context.Context, since time.Time) ([]Requisition, error)

	EnsureIndexes(ctx context.Context) error
}

type RequisitionRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRequisitionRepository(mongodb *database.MongodbDB) RequisitionRepository {
	return &RequisitionRepositoryImpl{
		Collection: mongodb.DB.Collection("requisitions"),
	}
}

func (r *RequisitionRepositoryImpl) Create(ctx context.Context, rq *Requisition) error {
	if rq.ID.IsZero() {
		rq.ID = primitive.NewObjectID()
	}
	rq.CreatedAt = time.Now()
	rq.UpdatedAt = rq.CreatedAt
	_, err := r.Collection.InsertOne(ctx, rq)
	return err
}

func (r *RequisitionRepositoryImpl) GetByID(ctx context.Context, id string) (*Requisition, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var rq Requisition
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rq)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rq, nil
}

func (r *RequisitionRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Requisition, error) {
	query := bson.M{}
	for k, v := range filter {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok && str == "" {
			continue
		}
		query[k] = v
	}

	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetLimit(limit).SetSkip(offset).SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var rqs []Requisition
	if err = cursor.All(ctx, &rqs); err != nil {
		return nil, err
	}
	return rqs, nil
}

func (r *RequisitionRepositoryImpl) AttachApprovalState(ctx context.Context, id string, state *common_models.RequisitionApprovalState) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid, "approval": nil},
		bson.M{"$set": bson.M{"approval": state, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *RequisitionRepositoryImpl) SwapApprovalState(ctx context.Context, id string, expectedStep int, state *common_models.RequisitionApprovalState) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	filter := bson.M{
		"_id":                   oid,
		"approval.status":       common_models.ApprovalStatusPending,
		"approval.current_step": expectedStep,
	}
	res, err := r.Collection.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"approval": state, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *RequisitionRepositoryImpl) ListPendingFor(ctx context.Context, approverEmail string) ([]Requisition, error) {
	filter := bson.M{
		"approval.status":                 common_models.ApprovalStatusPending,
		"approval.current_approver_email": strings.ToLower(approverEmail),
	}
	opts := options.Find().SetSort(bson.D{{Key: "approval.submitted_at", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var rqs []Requisition
	if err = cursor.All(ctx, &rqs); err != nil {
		return nil, err
	}
	return rqs, nil
}

func (r *RequisitionRepositoryImpl) ListByStatus(ctx context.Context, holdingID string, status common_models.ApprovalStatus, limit int64) ([]Requisition, error) {
	query := bson.M{"approval.status": status}
	if holdingID != "" {
		query["holding_id"] = holdingID
	}
	if limit <= 0 {
		limit = 500
	}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "approval.submitted_at", Value: -1}})

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var rqs []Requisition
	if err = cursor.All(ctx, &rqs); err != nil {
		return nil, err
	}
	return rqs, nil
}

func (r *RequisitionRepositoryImpl) MarkStalePending(ctx context.Context, submittedBefore time.Time) (int64, error) {
	res, err := r.Collection.UpdateMany(ctx,
		bson.M{
			"approval.status":       common_models.ApprovalStatusPending,
			"approval.submitted_at": bson.M{"$lt": submittedBefore},
			"approval.stale":        bson.M{"$ne": true},
		},
		bson.M{"$set": bson.M{"approval.stale": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *RequisitionRepositoryImpl) ListDecidedSince(ctx context.Context, since time.Time) ([]Requisition, error) {
	filter := bson.M{
		"approval.status": bson.M{"$in": []common_models.ApprovalStatus{
			common_models.ApprovalStatusApproved,
			common_models.ApprovalStatusRejected,
		}},
		"updated_at": bson.M{"$gt": since},
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var rqs []Requisition
	if err = cursor.All(ctx, &rqs); err != nil {
		return nil, err
	}
	return rqs, nil
}

func (r *RequisitionRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "approval.status", Value: 1}, {Key: "approval.current_approver_email", Value: 1}}},
		{Keys: bson.D{{Key: "holding_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

package mongo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

const (
	reimbsCollection = "ers_reimbursements"
	reimbSequence    = "reimb_id"
)

// ReimbRepository is the MongoDB-backed implementation of ports.ReimbRepository.
type ReimbRepository struct {
	db     *mongo.Database
	logger zerolog.Logger
}

func NewReimbRepository(db *mongo.Database, logger zerolog.Logger) *ReimbRepository {
	return &ReimbRepository{
		db:     db,
		logger: logger.With().Str("repository", "reimbursements").Logger(),
	}
}

func (r *ReimbRepository) collection() *mongo.Collection {
	return r.db.Collection(reimbsCollection)
}

func (r *ReimbRepository) GetAll(ctx context.Context) ([]domain.Reimbursement, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *ReimbRepository) GetByID(ctx context.Context, id int64) (*domain.Reimbursement, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ReimbRepository) GetByUniqueKey(ctx context.Context, field, value string) (*domain.Reimbursement, error) {
	return r.findOne(ctx, bson.M{field: coerceValue(field, value)})
}

func (r *ReimbRepository) GetAllByAuthor(ctx context.Context, authorID int64) ([]domain.Reimbursement, error) {
	return r.findAll(ctx, bson.M{"author_id": authorID})
}

func (r *ReimbRepository) GetAllByField(ctx context.Context, field, value string) ([]domain.Reimbursement, error) {
	return r.findAll(ctx, bson.M{field: coerceValue(field, value)})
}

func (r *ReimbRepository) Save(ctx context.Context, reimb *domain.Reimbursement) (*domain.Reimbursement, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, reimbSequence)
	if err != nil {
		return nil, r.fail("allocate reimbursement id", err)
	}
	reimb.ID = id

	if _, err := r.collection().InsertOne(ctx, reimb); err != nil {
		return nil, r.fail("insert reimbursement", err)
	}
	return reimb, nil
}

func (r *ReimbRepository) Update(ctx context.Context, reimb *domain.Reimbursement) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"amount":      reimb.Amount,
		"description": reimb.Description,
		"reimb_type":  reimb.Type,
	}}

	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": reimb.ID}, update)
	if err != nil {
		return false, r.fail("update reimbursement", err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrReimbNotFound
	}
	return true, nil
}

func (r *ReimbRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReimbStatus, resolverID int64, resolved time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"reimb_status": status,
		"resolver_id":  resolverID,
		"resolved":     resolved,
	}}

	// The pending filter makes resolution atomic: a concurrent resolve loses
	// the race and matches nothing.
	filter := bson.M{"_id": id, "reimb_status": domain.StatusPending}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, r.fail("resolve reimbursement", err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrNotPending
	}
	return true, nil
}

func (r *ReimbRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, r.fail("delete reimbursement", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *ReimbRepository) findAll(ctx context.Context, filter bson.M) ([]domain.Reimbursement, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, r.fail("find reimbursements", err)
	}
	defer cursor.Close(ctx)

	reimbs := []domain.Reimbursement{}
	if err := cursor.All(ctx, &reimbs); err != nil {
		return nil, r.fail("decode reimbursements", err)
	}
	return reimbs, nil
}

func (r *ReimbRepository) findOne(ctx context.Context, filter bson.M) (*domain.Reimbursement, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var reimb domain.Reimbursement
	if err := r.collection().FindOne(ctx, filter).Decode(&reimb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReimbNotFound
		}
		return nil, r.fail("find reimbursement", err)
	}
	return &reimb, nil
}

func (r *ReimbRepository) fail(op string, err error) error {
	r.logger.Error().Err(err).Str("op", op).Msg("storage failure")
	return domain.ErrInternalServer
}

// coerceValue converts string filter values to the persisted type for the
// numeric reimbursement fields; everything else matches as a string.
func coerceValue(field, value string) any {
	switch field {
	case "author_id", "resolver_id":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	case "amount":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return value
}

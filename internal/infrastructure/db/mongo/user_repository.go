package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

const (
	usersCollection = "ers_users"
	userSequence    = "ers_user_id"

	queryTimeout = 5 * time.Second
)

// UserRepository is the MongoDB-backed implementation of ports.UserRepository.
// Storage failures surface to callers as bare domain.ErrInternalServer; the
// underlying cause goes to the log only.
type UserRepository struct {
	db     *mongo.Database
	logger zerolog.Logger
}

func NewUserRepository(db *mongo.Database, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With().Str("repository", "users").Logger(),
	}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, r.fail("find users", err)
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, r.fail("decode users", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByUniqueKey(ctx context.Context, field, value string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{field: value})
}

func (r *UserRepository) GetAllByField(ctx context.Context, field, value string) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection().Find(ctx, bson.M{field: value})
	if err != nil {
		return nil, r.fail("find users by field", err)
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, r.fail("decode users", err)
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, userSequence)
	if err != nil {
		return nil, r.fail("allocate user id", err)
	}
	u.ID = id

	if _, err := r.collection().InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, r.fail("insert user", err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"username":   u.Username,
		"password":   u.Password,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"role_name":  u.Role,
	}}

	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": u.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, domain.ErrDuplicateUser
		}
		return false, r.fail("update user", err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrUserNotFound
	}
	return true, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, r.fail("delete user", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u domain.User
	if err := r.collection().FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, r.fail("find user", err)
	}
	return &u, nil
}

// fail logs the real cause and returns the opaque internal error.
func (r *UserRepository) fail(op string, err error) error {
	r.logger.Error().Err(err).Str("op", op).Msg("storage failure")
	return domain.ErrInternalServer
}

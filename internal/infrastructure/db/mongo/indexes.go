package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Username and
// email uniqueness is enforced here as a backstop behind the service-level
// availability checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role_name", Value: 1}},
		},
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	reimbIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "author_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "reimb_status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "reimb_type", Value: 1}},
		},
	}
	if _, err := db.Collection(reimbsCollection).Indexes().CreateMany(ctx, reimbIndexes); err != nil {
		return fmt.Errorf("create reimbursement indexes: %w", err)
	}

	return nil
}

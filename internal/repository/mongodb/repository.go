package mongodb

import (
	"context"

	"github.com/StackUnderflow/post-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Post interface {
	Insert(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	Find(ctx context.Context, filter PostFilter, skip int64, limit int64) ([]*model.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	UpdateVotes(ctx context.Context, id primitive.ObjectID, upvotes []model.Vote, downvotes []model.Vote, voteCount int) error
	SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoRepository struct {
	Post
}

func New(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		Post: newPostRepo(db),
	}
}

// IsValidID reports whether s is a well-formed document identifier.
func IsValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

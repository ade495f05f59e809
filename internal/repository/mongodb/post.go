package mongodb

import (
	"context"
	"regexp"

	"github.com/StackUnderflow/post-service/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postsCollection = "posts"

// PostFilter is the full set of selectors the query service combines.
// A zero field means "no constraint on this field".
type PostFilter struct {
	Featured *bool
	Tag      string
	Search   string
	UserID   *primitive.ObjectID
}

func (f PostFilter) build() bson.M {
	filter := bson.M{}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	if f.UserID != nil {
		filter["user"] = *f.UserID
	}
	return filter
}

type postRepo struct {
	coll *mongo.Collection
}

func newPostRepo(db *mongo.Database) Post {
	return &postRepo{
		coll: db.Collection(postsCollection),
	}
}

func (r *postRepo) Insert(ctx context.Context, post model.Post) (*model.Post, error) {
	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) Find(ctx context.Context, filter PostFilter, skip int64, limit int64) ([]*model.Post, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter.build(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter PostFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, filter.build())
}

// UpdateVotes writes the reconciled vote state as one document update, so
// the two arrays and the derived count are never persisted out of step.
// Two voters racing on the same post still run separate load/store cycles
// and the later write wins; the store does not serialize them.
func (r *postRepo) UpdateVotes(ctx context.Context, id primitive.ObjectID, upvotes []model.Vote, downvotes []model.Vote, voteCount int) error {
	update := bson.M{"$set": bson.M{
		"upvotes":   upvotes,
		"downvotes": downvotes,
		"voteCount": voteCount,
	}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *postRepo) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"featured": featured}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

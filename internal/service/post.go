package service

import (
	"context"
	"strings"
	"time"

	"github.com/StackUnderflow/post-service/internal/dto"
	"github.com/StackUnderflow/post-service/internal/model"
	"github.com/StackUnderflow/post-service/internal/rabbitmq"
	"github.com/StackUnderflow/post-service/internal/repository"
	"github.com/StackUnderflow/post-service/internal/repository/mongodb"
	"github.com/StackUnderflow/post-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type eventPublisher interface {
	PublishJSON(ctx context.Context, queue string, msg interface{}) error
}

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	publisher eventPublisher
}

func newPostService(logger *zap.Logger, repo *repository.Repository, publisher eventPublisher) Post {
	return &postService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

// normalizePage coerces the requested page to its magnitude and defaults
// absent or zero input to the first page.
func normalizePage(page int) int {
	if page < 0 {
		page = -page
	}
	if page == 0 {
		page = 1
	}
	return page
}

func (s *postService) FindPaginated(ctx context.Context, page int, tag string, search string, featured bool) (*dto.PaginatedPosts, error) {
	page = normalizePage(page)

	// A tag filter wins over a search filter, and either one resets the
	// requested page back to 1.
	filter := mongodb.PostFilter{Featured: &featured}
	switch {
	case tag != "":
		filter.Tag = tag
		page = 1
	case search != "":
		filter.Search = search
		page = 1
	}

	return s.findPage(ctx, filter, page)
}

func (s *postService) FindUserPosts(ctx context.Context, userID string, page int) (*dto.PaginatedPosts, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.findPage(ctx, mongodb.PostFilter{UserID: &uid}, normalizePage(page))
}

// findPage runs one filter twice: once paginated for the page itself and
// once unpaginated for the total, so both always reflect the same filter.
// A filter matching nothing yields an empty page, not an error.
func (s *postService) findPage(ctx context.Context, filter mongodb.PostFilter, page int) (*dto.PaginatedPosts, error) {
	skip := int64(PER_PAGE * (page - 1))

	posts, err := s.repo.Mongo.Post.Find(ctx, filter, skip, PER_PAGE)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts page(%d): %s", page, err.Error())
		return nil, ErrInternal
	}

	total, err := s.repo.Mongo.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts: %s", err.Error())
		return nil, ErrInternal
	}

	return &dto.PaginatedPosts{
		Posts:      posts,
		TotalPages: (total + PER_PAGE - 1) / PER_PAGE,
		TotalPosts: total,
	}, nil
}

func (s *postService) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		// A malformed identifier is indistinguishable from an unknown one.
		return nil, ErrPostNotFound
	}

	cachedPost, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(postID))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", postID, err.Error())
	}

	post, err := s.repo.Mongo.Post.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(postID), post, viper.GetDuration("cache.post-ttl")); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) in redis: %s", postID, err.Error())
	}

	return post, nil
}

func (s *postService) Create(ctx context.Context, user *model.AuthUser, input dto.CreatePostRequest) (*model.Post, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleMustNotBeEmpty
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, ErrBodyMustNotBeEmpty
	}
	if len(input.Tags) == 0 {
		return nil, ErrTagsMustNotBeEmpty
	}

	post := model.Post{
		UserID:    user.ID,
		Username:  user.Username,
		Title:     input.Title,
		Body:      input.Body,
		Tags:      input.Tags,
		Upvotes:   []model.Vote{},
		Downvotes: []model.Vote{},
		CreatedAt: timestamp(),
	}

	createdPost, err := s.repo.Mongo.Post.Insert(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", user.ID.Hex(), err.Error())
		return nil, ErrInternal
	}

	s.publish(ctx, rabbitmq.POST_CREATED_QUEUE, dto.MQPostCreatedMsg{
		PostID:    createdPost.ID.Hex(),
		UserID:    user.ID.Hex(),
		PostTitle: createdPost.Title,
		CreatedAt: createdPost.CreatedAt,
	})

	return createdPost, nil
}

func (s *postService) Delete(ctx context.Context, user *model.AuthUser, postID string) error {
	if user == nil {
		return ErrNotAuthenticated
	}

	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrPostNotFound
	}

	post, err := s.repo.Mongo.Post.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
		return ErrInternal
	}

	if post.Username != user.Username {
		return ErrActionNotAllowed
	}

	if err := s.repo.Mongo.Post.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to delete post(%s): %s", postID, err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, postID)
	s.publish(ctx, rabbitmq.POST_DELETED_QUEUE, dto.MQPostDeletedMsg{
		PostID:    postID,
		UserID:    user.ID.Hex(),
		DeletedAt: timestamp(),
	})

	return nil
}

func (s *postService) Upvote(ctx context.Context, user *model.AuthUser, postID string) (*model.Post, error) {
	return s.toggleVote(ctx, user, postID, model.Upvote)
}

func (s *postService) Downvote(ctx context.Context, user *model.AuthUser, postID string) (*model.Post, error) {
	return s.toggleVote(ctx, user, postID, model.Downvote)
}

// toggleVote is a read-modify-write: it loads the post straight from the
// store (never the cache), reconciles the voter's state in memory and
// persists both vote arrays plus the recomputed count as one update.
func (s *postService) toggleVote(ctx context.Context, user *model.AuthUser, postID string, side model.VoteSide) (*model.Post, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	post, err := s.repo.Mongo.Post.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID, err.Error())
		return nil, ErrInternal
	}

	post.ToggleVote(side, user.Username, timestamp())

	if err := s.repo.Mongo.Post.UpdateVotes(ctx, id, post.Upvotes, post.Downvotes, post.VoteCount); err != nil {
		if err == mongo.ErrNoDocuments {
			// The vote raced a delete.
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to update post(%s) votes: %s", postID, err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, postID)

	return post, nil
}

func (s *postService) SetFeatured(ctx context.Context, postID string, featured bool) (*model.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	if err := s.repo.Mongo.Post.SetFeatured(ctx, id, featured); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to set post(%s) featured=%t: %s", postID, featured, err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, postID)

	post, err := s.repo.Mongo.Post.FindByID(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) after featuring: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) invalidatePost(ctx context.Context, postID string) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%s) from redis: %s", postID, err.Error())
	}
}

// publish is best-effort: the write already committed, so a broker failure
// is logged and never fails the request.
func (s *postService) publish(ctx context.Context, queue string, msg interface{}) {
	if err := s.publisher.PublishJSON(ctx, queue, msg); err != nil {
		s.logger.Sugar().Errorf("failed to publish to queue(%s): %s", queue, err.Error())
	}
}

// timestamp returns the current time in a sortable string form; it is used
// for post and vote creation times.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

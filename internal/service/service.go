package service

import (
	"context"

	"github.com/StackUnderflow/post-service/internal/dto"
	"github.com/StackUnderflow/post-service/internal/model"
	"github.com/StackUnderflow/post-service/internal/rabbitmq"
	"github.com/StackUnderflow/post-service/internal/repository"
	"go.uber.org/zap"
)

// PER_PAGE is the fixed page size of every list query.
const PER_PAGE = 4

type Post interface {
	FindPaginated(ctx context.Context, page int, tag string, search string, featured bool) (*dto.PaginatedPosts, error)
	FindByID(ctx context.Context, postID string) (*model.Post, error)
	FindUserPosts(ctx context.Context, userID string, page int) (*dto.PaginatedPosts, error)
	Create(ctx context.Context, user *model.AuthUser, input dto.CreatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, user *model.AuthUser, postID string) error
	Upvote(ctx context.Context, user *model.AuthUser, postID string) (*model.Post, error)
	Downvote(ctx context.Context, user *model.AuthUser, postID string) (*model.Post, error)
	SetFeatured(ctx context.Context, postID string, featured bool) (*model.Post, error)
}

type Service struct {
	Post
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) *Service {
	return &Service{
		Post: newPostService(logger, repo, mq),
	}
}

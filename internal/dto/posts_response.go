package dto

import "github.com/StackUnderflow/post-service/internal/model"

// PaginatedPosts is computed fresh on every list query, never cached.
type PaginatedPosts struct {
	Posts      []*model.Post `json:"posts"`
	TotalPages int64         `json:"total_pages"`
	TotalPosts int64         `json:"total_posts"`
}

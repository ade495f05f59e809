package handler

import (
	"github.com/StackUnderflow/post-service/internal/model"
	"github.com/StackUnderflow/post-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const authUserKey = "auth-user"

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGet)
			posts.GET("/author/:userID", h.postsGetByAuthor)
			posts.POST("", h.authMiddleware, h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.GET("", h.postsGetByID)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.POST("/upvote", h.authMiddleware, h.postsUpvote)
				post.POST("/downvote", h.authMiddleware, h.postsDownvote)
				post.PATCH("/featured", h.moderatorMiddleware, h.modSetPostFeatured)
			}
		}
	}

	return r
}

func (h *Handler) getAuthUser(c *gin.Context) *model.AuthUser {
	value, exists := c.Get(authUserKey)
	if !exists {
		return nil
	}

	user, ok := value.(model.AuthUser)
	if !ok {
		return nil
	}

	return &user
}

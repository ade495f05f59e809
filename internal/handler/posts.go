package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/StackUnderflow/post-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsGet(c *gin.Context) {
	featured, err := strconv.ParseBool(c.Query("featured"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(codeValidationFailed, errFeaturedMustBeBool.Error()))
		return
	}

	// A missing or malformed page becomes 0 here; the service treats that
	// as page 1.
	page, _ := strconv.Atoi(c.Query("page"))

	result, err := h.services.Post.FindPaginated(c.Request.Context(), page, c.Query("tag"), c.Query("search"), featured)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID := strings.TrimSpace(c.Param("postID"))

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, *post)
}

func (h *Handler) postsGetByAuthor(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userID"))
	page, _ := strconv.Atoi(c.Query("page"))

	result, err := h.services.Post.FindUserPosts(c.Request.Context(), userID, page)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getAuthUser(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(codeValidationFailed, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user, input)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getAuthUser(c)
	postID := strings.TrimSpace(c.Param("postID"))

	if err := h.services.Post.Delete(c.Request.Context(), user, postID); err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post deleted successfully"))
}

func (h *Handler) postsUpvote(c *gin.Context) {
	user := h.getAuthUser(c)
	postID := strings.TrimSpace(c.Param("postID"))

	post, err := h.services.Post.Upvote(c.Request.Context(), user, postID)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, *post)
}

func (h *Handler) postsDownvote(c *gin.Context) {
	user := h.getAuthUser(c)
	postID := strings.TrimSpace(c.Param("postID"))

	post, err := h.services.Post.Downvote(c.Request.Context(), user, postID)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, *post)
}

func (h *Handler) modSetPostFeatured(c *gin.Context) {
	postID := strings.TrimSpace(c.Param("postID"))

	var input dto.SetFeaturedRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(codeValidationFailed, err.Error()))
		return
	}

	post, err := h.services.Post.SetFeatured(c.Request.Context(), postID, input.Featured)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, *post)
}

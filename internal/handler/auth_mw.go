package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/StackUnderflow/post-service/internal/dto"
	"github.com/StackUnderflow/post-service/internal/model"
	"github.com/StackUnderflow/post-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	user, ok := h.authUserFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(codeUnauthenticated, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set(authUserKey, *user)

	c.Next()
}

func (h *Handler) moderatorMiddleware(c *gin.Context) {
	claims, ok := h.claimsFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(codeUnauthenticated, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	role, _ := claims["role"].(string)
	role = strings.ToLower(role)
	if role != "mod" && role != "admin" {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(codeUnauthorized, "no access"))
		c.Abort()
		return
	}

	user, err := authUserFromClaims(claims)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(codeUnauthenticated, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set(authUserKey, *user)

	c.Next()
}

func (h *Handler) authUserFromRequest(c *gin.Context) (*model.AuthUser, bool) {
	claims, ok := h.claimsFromRequest(c)
	if !ok {
		return nil, false
	}

	user, err := authUserFromClaims(claims)
	if err != nil {
		return nil, false
	}

	return user, true
}

func (h *Handler) claimsFromRequest(c *gin.Context) (jwt.MapClaims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		return nil, false
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, false
	}

	return claims, true
}

func authUserFromClaims(claims jwt.MapClaims) (*model.AuthUser, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}

	id, err := primitive.ObjectIDFromHex(idString)
	if err != nil {
		return nil, errNotAuthorized
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, errNotAuthorized
	}

	return &model.AuthUser{ID: id, Username: username}, nil
}

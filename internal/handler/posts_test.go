package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/StackUnderflow/post-service/internal/dto"
	"github.com/StackUnderflow/post-service/internal/model"
	"github.com/StackUnderflow/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubPostService struct {
	paginated *dto.PaginatedPosts
	post      *model.Post
	err       error

	lastUser *model.AuthUser
	lastPage int
}

func (s *stubPostService) FindPaginated(_ context.Context, page int, _ string, _ string, _ bool) (*dto.PaginatedPosts, error) {
	s.lastPage = page
	return s.paginated, s.err
}

func (s *stubPostService) FindByID(_ context.Context, _ string) (*model.Post, error) {
	return s.post, s.err
}

func (s *stubPostService) FindUserPosts(_ context.Context, _ string, page int) (*dto.PaginatedPosts, error) {
	s.lastPage = page
	return s.paginated, s.err
}

func (s *stubPostService) Create(_ context.Context, user *model.AuthUser, _ dto.CreatePostRequest) (*model.Post, error) {
	s.lastUser = user
	return s.post, s.err
}

func (s *stubPostService) Delete(_ context.Context, user *model.AuthUser, _ string) error {
	s.lastUser = user
	return s.err
}

func (s *stubPostService) Upvote(_ context.Context, user *model.AuthUser, _ string) (*model.Post, error) {
	s.lastUser = user
	return s.post, s.err
}

func (s *stubPostService) Downvote(_ context.Context, user *model.AuthUser, _ string) (*model.Post, error) {
	s.lastUser = user
	return s.post, s.err
}

func (s *stubPostService) SetFeatured(_ context.Context, _ string, _ bool) (*model.Post, error) {
	return s.post, s.err
}

func newTestRouter(stub *stubPostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")
	return New(&service.Service{Post: stub}).InitRoutes()
}

func makeToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestPostsGet_FeaturedIsRequired(t *testing.T) {
	r := newTestRouter(&stubPostService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts?page=1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPostsGet_OK(t *testing.T) {
	stub := &stubPostService{paginated: &dto.PaginatedPosts{
		Posts:      []*model.Post{},
		TotalPages: 2,
		TotalPosts: 5,
	}}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts?featured=true&page=-3", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastPage != -3 {
		t.Fatalf("expected the raw page to reach the service, got %d", stub.lastPage)
	}

	var result dto.PaginatedPosts
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.TotalPages != 2 || result.TotalPosts != 5 {
		t.Fatalf("unexpected totals: %#v", result)
	}
}

func TestPostsGetByID_NotFoundCode(t *testing.T) {
	stub := &stubPostService{err: service.ErrPostNotFound}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/"+primitive.NewObjectID().Hex(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "POST_NOT_FOUND" {
		t.Fatalf("expected POST_NOT_FOUND, got %q", resp.Code)
	}
}

func TestPostsCreate_RequiresAuth(t *testing.T) {
	r := newTestRouter(&stubPostService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(`{"title":"t","body":"b","tags":["go"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPostsCreate_ResolvesIdentity(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "testsecret")

	userID := primitive.NewObjectID()
	stub := &stubPostService{post: &model.Post{ID: primitive.NewObjectID(), Title: "t"}}
	r := newTestRouter(stub)

	token := makeToken(t, "testsecret", jwt.MapClaims{
		"id":       userID.Hex(),
		"username": "alice",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(`{"title":"t","body":"b","tags":["go"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastUser == nil || stub.lastUser.Username != "alice" || stub.lastUser.ID != userID {
		t.Fatalf("expected the resolved identity, got %#v", stub.lastUser)
	}
}

func TestPostsDelete_Confirmation(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "testsecret")

	stub := &stubPostService{}
	r := newTestRouter(stub)

	token := makeToken(t, "testsecret", jwt.MapClaims{
		"id":       primitive.NewObjectID().Hex(),
		"username": "alice",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/posts/"+primitive.NewObjectID().Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.BasicResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Ok {
		t.Fatalf("expected a success confirmation, got %#v", resp)
	}
}

func TestModSetPostFeatured_RequiresRole(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "testsecret")

	stub := &stubPostService{post: &model.Post{ID: primitive.NewObjectID(), Featured: true}}
	r := newTestRouter(stub)

	plain := makeToken(t, "testsecret", jwt.MapClaims{
		"id":       primitive.NewObjectID().Hex(),
		"username": "alice",
	})
	mod := makeToken(t, "testsecret", jwt.MapClaims{
		"id":       primitive.NewObjectID().Hex(),
		"username": "mod",
		"role":     "mod",
	})

	target := "/api/v1/posts/" + primitive.NewObjectID().Hex() + "/featured"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"featured":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+plain)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a regular user, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"featured":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mod)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for a moderator, got %d: %s", w.Code, w.Body.String())
	}
}

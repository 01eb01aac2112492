package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/devlink/backend/internal/metrics"
	appMiddleware "github.com/devlink/backend/internal/middleware"
	"github.com/devlink/backend/internal/models"
	"github.com/devlink/backend/internal/services"
)

const testJWTSecret = "test-secret"

// testEnv wires the real handlers, auth middleware and memory services into a
// router with the same shape as cmd/server.
type testEnv struct {
	router *chi.Mux
	posts  services.PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userService := services.NewMemoryUserService(nil)
	profileService := services.NewMemoryProfileService(nil)
	postService := services.NewMemoryPostService(nil)
	accountService := services.NewCascadeAccountService(userService, profileService)

	authHandler := NewAuthHandler(userService, testJWTSecret, time.Hour)
	profileHandler := NewProfileHandler(profileService)
	postHandler := NewPostHandler(postService, userService, metrics.NewCollector())
	accountHandler := NewAccountHandler(accountService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.Register)
		r.Post("/auth", authHandler.Login)
		r.Get("/profile", profileHandler.ListProfiles)
		r.Get("/profile/user/{userId}", profileHandler.GetProfileByUser)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(testJWTSecret))

			r.Get("/auth", authHandler.CurrentUser)

			r.Get("/profile/me", profileHandler.GetMyProfile)
			r.Post("/profile", profileHandler.UpsertProfile)
			r.Delete("/profile", accountHandler.DeleteAccount)
			r.Put("/profile/experience", profileHandler.AddExperience)
			r.Delete("/profile/experience/{expId}", profileHandler.RemoveExperience)
			r.Put("/profile/education", profileHandler.AddEducation)
			r.Delete("/profile/education/{eduId}", profileHandler.RemoveEducation)

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", postHandler.CreatePost)
				r.Get("/", postHandler.ListPosts)
				r.Get("/{postId}", postHandler.GetPost)
				r.Delete("/{postId}", postHandler.DeletePost)
				r.Put("/like/{postId}", postHandler.LikePost)
				r.Put("/unlike/{postId}", postHandler.UnlikePost)
			})
		})
	})

	return &testEnv{router: r, posts: postService}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type authEnvelope struct {
	Success bool                `json:"success"`
	Data    models.AuthResponse `json:"data"`
	Error   string              `json:"error"`
}

// register creates an account and returns its ID and bearer token.
func (e *testEnv) register(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/users", "", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.User.ID, resp.Data.Token
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

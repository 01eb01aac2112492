package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devlink/backend/internal/metrics"
	"github.com/devlink/backend/internal/middleware"
	"github.com/devlink/backend/internal/models"
	"github.com/devlink/backend/internal/services"
)

type PostHandler struct {
	postService services.PostService
	userService services.UserService
	collector   *metrics.Collector
}

// NewPostHandler wires the post service with the user service (for the author
// snapshot at creation) and an optional metrics collector.
func NewPostHandler(postService services.PostService, userService services.UserService, collector *metrics.Collector) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
		collector:   collector,
	}
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	author, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		log.Printf("[CreatePost] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(storageErrorMessage))
		return
	}

	post, err := h.postService.Create(r.Context(), author, &req)
	if err != nil {
		log.Printf("[CreatePost] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(storageErrorMessage))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		log.Printf("[ListPosts] error=%v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(storageErrorMessage))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[GetPost] post=%s error=%v", postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(storageErrorMessage))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	if err := h.postService.Delete(r.Context(), userID, postID); err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrNotOwner:
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("User not authorized"))
		default:
			log.Printf("[DeletePost] post=%s error=%v", postID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(storageErrorMessage))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Post removed"}))
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	likes, err := h.postService.Like(r.Context(), userID, postID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			h.recordLike("like", "not_found")
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrAlreadyLiked:
			h.recordLike("like", "conflict")
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Post already liked"))
		default:
			log.Printf("[LikePost] post=%s user=%s error=%v", postID, userID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(storageErrorMessage))
		}
		return
	}

	h.recordLike("like", "ok")
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(likes))
}

func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postId")

	likes, err := h.postService.Unlike(r.Context(), userID, postID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			h.recordLike("unlike", "not_found")
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrNotLiked:
			h.recordLike("unlike", "conflict")
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Post has not yet been liked"))
		default:
			log.Printf("[UnlikePost] post=%s user=%s error=%v", postID, userID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(storageErrorMessage))
		}
		return
	}

	h.recordLike("unlike", "ok")
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(likes))
}

func (h *PostHandler) recordLike(action, outcome string) {
	if h.collector != nil {
		h.collector.RecordLikeTransition(action, outcome)
	}
}

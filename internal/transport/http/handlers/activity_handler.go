package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/service"
	"github.com/strideclub/stride/internal/transport/http/middleware"
	"github.com/strideclub/stride/pkg/validator"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activityService   *service.ActivityService
	annotationService *service.AnnotationService
	logger            *zap.Logger
}

func NewActivityHandler(activityService *service.ActivityService, annotationService *service.AnnotationService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService:   activityService,
		annotationService: annotationService,
		logger:            logger,
	}
}

func (h *ActivityHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.RecordActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateActivity(input.Type, input.Date); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	activity, err := h.activityService.Record(r.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidActivityDate):
			writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
		case errors.Is(err, service.ErrInvalidActivityTime):
			writeError(w, http.StatusBadRequest, "INVALID_TIME", "Time must be HH:MM")
		default:
			h.logger.Error("record activity failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	ownerID, err := uuid.Parse(r.PathValue("uid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	activities, err := h.activityService.ListForViewer(r.Context(), viewerID, ownerID)
	if err != nil {
		if errors.Is(err, service.ErrNotVisibleToViewer) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Activities are only visible to friends")
			return
		}
		h.logger.Error("list activities failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
}

func (h *ActivityHandler) SetReaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	key, ok := parseActivityKey(w, r)
	if !ok {
		return
	}

	var input struct {
		Type domain.ReactionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.annotationService.SetReaction(r.Context(), key, userID, input.Type)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReaction) {
			writeError(w, http.StatusBadRequest, "INVALID_REACTION", "Unsupported reaction type")
			return
		}
		h.logger.Error("set reaction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ActivityHandler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	key, ok := parseActivityKey(w, r)
	if !ok {
		return
	}

	reactions, err := h.annotationService.ListReactions(r.Context(), key)
	if err != nil {
		h.logger.Error("list reactions failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	comments, err := h.annotationService.ListComments(r.Context(), key)
	if err != nil {
		h.logger.Error("list comments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reactions": reactions,
		"comments":  comments,
	})
}

func (h *ActivityHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	key, ok := parseActivityKey(w, r)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateComment(input.Text); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	comment, err := h.annotationService.AddComment(r.Context(), key, userID, input.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			writeError(w, http.StatusBadRequest, "EMPTY_COMMENT", "Comment text is required")
		case errors.Is(err, service.ErrCommentTooLong):
			writeError(w, http.StatusBadRequest, "COMMENT_TOO_LONG", "Comment is too long")
		default:
			h.logger.Error("add comment failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *ActivityHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	key, ok := parseActivityKey(w, r)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(r.PathValue("commentId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	if err := h.annotationService.DeleteComment(r.Context(), key, commentID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Comment not found")
		case errors.Is(err, service.ErrNotCommentAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the author can delete a comment")
		default:
			h.logger.Error("delete comment failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseActivityKey(w http.ResponseWriter, r *http.Request) (domain.ActivityKey, bool) {
	ownerID, err := uuid.Parse(r.PathValue("uid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid owner ID")
		return domain.ActivityKey{}, false
	}
	activityID, err := uuid.Parse(r.PathValue("activityId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid activity ID")
		return domain.ActivityKey{}, false
	}
	return domain.ActivityKey{OwnerID: ownerID, ActivityID: activityID}, true
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/service"
	"github.com/strideclub/stride/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type FriendHandler struct {
	friendService *service.FriendService
	logger        *zap.Logger
}

func NewFriendHandler(friendService *service.FriendService, logger *zap.Logger) *FriendHandler {
	return &FriendHandler{friendService: friendService, logger: logger}
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Username == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "Username is required")
		return
	}

	req, err := h.friendService.SendRequest(r.Context(), userID, input.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotRequestSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_REQUEST_SELF", "Cannot send a request to yourself")
		case errors.Is(err, service.ErrTargetNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrAlreadyFriends):
			writeError(w, http.StatusConflict, "ALREADY_FRIENDS", "You are already friends")
		case errors.Is(err, service.ErrRequestAlreadySent):
			writeError(w, http.StatusConflict, "ALREADY_SENT", "A pending request already exists")
		case errors.Is(err, service.ErrRequestAlreadyReceived):
			// Client should surface the incoming request and offer Accept.
			writeError(w, http.StatusConflict, "ALREADY_RECEIVED", "This user already sent you a request")
		default:
			h.logger.Error("send friend request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	friendship, err := h.friendService.AcceptRequest(r.Context(), userID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Friend request not found")
		case errors.Is(err, service.ErrNotRequestReceiver):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the receiver can accept")
		default:
			h.logger.Error("accept friend request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, friendship)
}

func (h *FriendHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	if err := h.friendService.DeclineRequest(r.Context(), userID, requestID); err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Friend request not found")
		case errors.Is(err, service.ErrNotRequestReceiver):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the receiver can decline")
		default:
			h.logger.Error("decline friend request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FriendHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	if err := h.friendService.CancelRequest(r.Context(), userID, requestID); err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Friend request not found")
		case errors.Is(err, service.ErrNotRequestSender):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the sender can cancel")
		default:
			h.logger.Error("cancel friend request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	friends, err := h.friendService.ListFriends(r.Context(), userID)
	if err != nil {
		h.logger.Error("list friends failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"friends": friends})
}

func (h *FriendHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reqs, err := h.friendService.ListIncomingRequests(r.Context(), userID)
	if err != nil {
		h.logger.Error("list incoming requests failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (h *FriendHandler) ListOutgoing(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reqs, err := h.friendService.ListOutgoingRequests(r.Context(), userID)
	if err != nil {
		h.logger.Error("list outgoing requests failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (h *FriendHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	otherID, err := uuid.Parse(r.PathValue("uid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.friendService.RemoveFriend(r.Context(), userID, otherID); err != nil {
		h.logger.Error("remove friend failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

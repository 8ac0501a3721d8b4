package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrInvalidReaction  = errors.New("unsupported reaction type")
	ErrEmptyComment     = errors.New("comment text is empty")
	ErrCommentTooLong   = errors.New("comment text is too long")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the comment author can delete it")
)

const maxCommentLength = 500

// ReactionResult reports the outcome of SetReaction. Removed is true when
// the call toggled an existing reaction off; otherwise Reaction holds the
// inserted or replaced row.
type ReactionResult struct {
	Removed  bool             `json:"removed"`
	Reaction *domain.Reaction `json:"reaction,omitempty"`
}

// AnnotationService is the per-activity annotation layer: at most one
// reaction per (activity, user) and an append-only comment log.
type AnnotationService struct {
	repo     repository.AnnotationRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewAnnotationService(repo repository.AnnotationRepository, logger *zap.Logger) *AnnotationService {
	return &AnnotationService{repo: repo, logger: logger}
}

func (s *AnnotationService) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetReaction applies the toggle semantics: same type again removes the
// reaction, a different type replaces it in place, no existing reaction
// inserts one. The single-reaction invariant holds before and after every
// call.
func (s *AnnotationService) SetReaction(ctx context.Context, key domain.ActivityKey, userID uuid.UUID, t domain.ReactionType) (*ReactionResult, error) {
	if !t.Valid() {
		return nil, ErrInvalidReaction
	}

	existing, err := s.repo.GetReaction(ctx, key, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil && existing.Type == t {
		if err := s.repo.DeleteReaction(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("removing reaction: %w", err)
		}
		if s.notifier != nil {
			s.notifier.NotifyReactionSet(existing, true)
		}
		return &ReactionResult{Removed: true}, nil
	}

	if existing != nil {
		if err := s.repo.UpdateReactionType(ctx, existing.ID, t); err != nil {
			return nil, fmt.Errorf("replacing reaction: %w", err)
		}
		existing.Type = t
		if s.notifier != nil {
			s.notifier.NotifyReactionSet(existing, false)
		}
		return &ReactionResult{Reaction: existing}, nil
	}

	reaction := &domain.Reaction{
		ID:         uuid.New(),
		OwnerID:    key.OwnerID,
		ActivityID: key.ActivityID,
		ReactorID:  userID,
		Type:       t,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateReaction(ctx, reaction); err != nil {
		return nil, fmt.Errorf("creating reaction: %w", err)
	}

	reactionsSetTotal.Inc()
	if s.notifier != nil {
		s.notifier.NotifyReactionSet(reaction, false)
	}
	return &ReactionResult{Reaction: reaction}, nil
}

// ListReactions returns the current reaction set; empty for activities
// never annotated.
func (s *AnnotationService) ListReactions(ctx context.Context, key domain.ActivityKey) ([]domain.Reaction, error) {
	reactions, err := s.repo.ListReactions(ctx, key)
	if err != nil {
		return nil, err
	}
	if reactions == nil {
		reactions = []domain.Reaction{}
	}
	return reactions, nil
}

// AddComment appends a comment with a generated id and server-assigned
// timestamp. Text is trimmed; an empty result is rejected.
func (s *AnnotationService) AddComment(ctx context.Context, key domain.ActivityKey, userID uuid.UUID, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if len(text) > maxCommentLength {
		return nil, ErrCommentTooLong
	}

	comment := &domain.Comment{
		ID:         uuid.New(),
		OwnerID:    key.OwnerID,
		ActivityID: key.ActivityID,
		AuthorID:   userID,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyCommentAdded(comment)
	}
	return comment, nil
}

// DeleteComment removes a comment; only its author may do so.
func (s *AnnotationService) DeleteComment(ctx context.Context, key domain.ActivityKey, commentID, requesterID uuid.UUID) error {
	comment, err := s.repo.GetComment(ctx, key, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != requesterID {
		return ErrNotCommentAuthor
	}

	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyCommentDeleted(key, commentID)
	}
	return nil
}

// ListComments returns the comment log in creation order.
func (s *AnnotationService) ListComments(ctx context.Context, key domain.ActivityKey) ([]domain.Comment, error) {
	comments, err := s.repo.ListComments(ctx, key)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

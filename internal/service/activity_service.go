package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/repository"
)

var (
	ErrInvalidActivityDate = errors.New("activity date must be YYYY-MM-DD")
	ErrInvalidActivityTime = errors.New("activity time must be HH:MM")
	ErrNotVisibleToViewer  = errors.New("activities are only visible to friends")
)

// ActivityService is the thin write/read path in front of the activity
// store. Activities are immutable once recorded.
type ActivityService struct {
	activities repository.ActivitySource
	friendRepo repository.FriendRepository
}

func NewActivityService(activities repository.ActivitySource, friendRepo repository.FriendRepository) *ActivityService {
	return &ActivityService{activities: activities, friendRepo: friendRepo}
}

type RecordActivityInput struct {
	Type            string   `json:"type"`
	Date            string   `json:"date"`
	Time            *string  `json:"time,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Calories        *int     `json:"calories,omitempty"`
	DistanceMiles   *float64 `json:"distance_miles,omitempty"`
	PhotoURL        *string  `json:"photo_url,omitempty"`
	IsPhotoPrivate  bool     `json:"is_photo_private"`
	Emoji           *string  `json:"emoji,omitempty"`
}

// Record stores a new activity for ownerID.
func (s *ActivityService) Record(ctx context.Context, ownerID uuid.UUID, input RecordActivityInput) (*domain.Activity, error) {
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, ErrInvalidActivityDate
	}
	if input.Time != nil {
		if _, err := time.Parse("15:04", *input.Time); err != nil {
			return nil, ErrInvalidActivityTime
		}
	}

	activity := &domain.Activity{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Type:            input.Type,
		Date:            input.Date,
		Time:            input.Time,
		DurationMinutes: input.DurationMinutes,
		Calories:        input.Calories,
		DistanceMiles:   input.DistanceMiles,
		PhotoURL:        input.PhotoURL,
		IsPhotoPrivate:  input.IsPhotoPrivate,
		Emoji:           input.Emoji,
		CreatedAt:       time.Now(),
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("recording activity: %w", err)
	}
	return activity, nil
}

// ListForViewer returns ownerID's activities as seen by viewerID. Only the
// owner and their friends may look; private photos are stripped for anyone
// but the owner.
func (s *ActivityService) ListForViewer(ctx context.Context, viewerID, ownerID uuid.UUID) ([]domain.Activity, error) {
	if viewerID != ownerID {
		friends, err := s.friendRepo.AreFriends(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, ErrNotVisibleToViewer
		}
	}

	activities, err := s.activities.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}

	if viewerID != ownerID {
		for i := range activities {
			activities[i].StripPrivatePhoto()
		}
	}
	return activities, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single logged workout. Immutable once created; this core
// only ever reads activities back after the initial insert.
type Activity struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Type            string    `json:"type"`
	Date            string    `json:"date"`           // "2006-01-02"
	Time            *string   `json:"time,omitempty"` // "15:04"
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Calories        *int      `json:"calories,omitempty"`
	DistanceMiles   *float64  `json:"distance_miles,omitempty"`
	PhotoURL        *string   `json:"photo_url,omitempty"`
	IsPhotoPrivate  bool      `json:"is_photo_private"`
	Emoji           *string   `json:"emoji,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ActivityKey addresses the annotation collections of one activity.
type ActivityKey struct {
	OwnerID    uuid.UUID
	ActivityID uuid.UUID
}

// String renders the key the way feed maps are addressed: "ownerUid-activityId".
func (k ActivityKey) String() string {
	return k.OwnerID.String() + "-" + k.ActivityID.String()
}

func (a *Activity) Key() ActivityKey {
	return ActivityKey{OwnerID: a.OwnerID, ActivityID: a.ID}
}

// StripPrivatePhoto clears the photo URL when the owner marked it private.
// Applied to every view of the activity except the owner's own.
func (a *Activity) StripPrivatePhoto() {
	if a.IsPhotoPrivate {
		a.PhotoURL = nil
	}
}

// EffectiveTime is the timestamp used for feed ordering: the activity date
// combined with its time of day, or midday when no time was logged.
// Falls back to CreatedAt if the date is unparseable.
func (a *Activity) EffectiveTime() time.Time {
	d, err := time.Parse("2006-01-02", a.Date)
	if err != nil {
		return a.CreatedAt
	}
	hour, minute := 12, 0
	if a.Time != nil {
		if t, err := time.Parse("15:04", *a.Time); err == nil {
			hour, minute = t.Hour(), t.Minute()
		}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

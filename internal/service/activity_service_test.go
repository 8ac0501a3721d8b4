package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/service"
)

func newActivityFixture() (*service.ActivityService, *stubUserRepo, *stubFriendRepo, *stubActivitySource) {
	users := newStubUserRepo()
	friends := newStubFriendRepo(users)
	activities := newStubActivitySource()
	return service.NewActivityService(activities, friends), users, friends, activities
}

func TestRecord_ValidatesDateAndTime(t *testing.T) {
	svc, _, _, _ := newActivityFixture()
	owner := uuid.New()
	ctx := context.Background()

	if _, err := svc.Record(ctx, owner, service.RecordActivityInput{Type: "run", Date: "01/02/2024"}); !errors.Is(err, service.ErrInvalidActivityDate) {
		t.Errorf("bad date error = %v, want ErrInvalidActivityDate", err)
	}
	bad := "25:99"
	if _, err := svc.Record(ctx, owner, service.RecordActivityInput{Type: "run", Date: "2024-01-02", Time: &bad}); !errors.Is(err, service.ErrInvalidActivityTime) {
		t.Errorf("bad time error = %v, want ErrInvalidActivityTime", err)
	}

	clock := "06:45"
	act, err := svc.Record(ctx, owner, service.RecordActivityInput{Type: "run", Date: "2024-01-02", Time: &clock})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if act.ID == uuid.Nil || act.OwnerID != owner || act.CreatedAt.IsZero() {
		t.Errorf("recorded activity = %+v, missing generated fields", act)
	}
}

func TestListForViewer_FriendGateAndPhotoPrivacy(t *testing.T) {
	svc, users, friendRepo, activities := newActivityFixture()
	owner := users.add("owner")
	friend := users.add("friend")
	stranger := users.add("stranger")
	friendRepo.befriend(owner.ID, friend.ID)
	ctx := context.Background()

	photo := "https://cdn.example.com/p.jpg"
	activities.add(domain.Activity{
		ID: uuid.New(), OwnerID: owner.ID, Type: "lift", Date: "2024-01-02",
		PhotoURL: &photo, IsPhotoPrivate: true,
	})

	if _, err := svc.ListForViewer(ctx, stranger.ID, owner.ID); !errors.Is(err, service.ErrNotVisibleToViewer) {
		t.Errorf("stranger view error = %v, want ErrNotVisibleToViewer", err)
	}

	// Owner keeps the private photo.
	own, err := svc.ListForViewer(ctx, owner.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner ListForViewer: %v", err)
	}
	if len(own) != 1 || own[0].PhotoURL == nil {
		t.Errorf("owner view = %+v, want photo retained", own)
	}

	// Friends see the activity with the photo stripped.
	seen, err := svc.ListForViewer(ctx, friend.ID, owner.ID)
	if err != nil {
		t.Fatalf("friend ListForViewer: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("friend view entries = %d, want 1", len(seen))
	}
	if seen[0].PhotoURL != nil {
		t.Error("private photo leaked to friend view")
	}
}

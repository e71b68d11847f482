package activity_test

import (
	"context"
	"testing"

	mem "petverse/internal/adapters/storage/memory"
	"petverse/internal/domain/activity"
)

func TestService_Record_ListNewestFirst(t *testing.T) {
	svc := activity.NewService(mem.NewActivityRepo(0))
	ctx := context.Background()

	for _, k := range []activity.Kind{activity.KindCreate, activity.KindFeed, activity.KindPlay} {
		if err := svc.Record(ctx, "Tom", string(k), "  msg "+string(k)+" "); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	got, err := svc.ListByPet(ctx, "Tom", activity.ListFilter{})
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Kind != activity.KindPlay || got[2].Kind != activity.KindCreate {
		t.Fatalf("expected newest first, got %#v", got)
	}
	if got[0].Message != "msg play" {
		t.Fatalf("expected trimmed message, got %q", got[0].Message)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("expected unique ids")
	}
}

func TestService_List_FilterKindsAndLimit(t *testing.T) {
	svc := activity.NewService(mem.NewActivityRepo(0))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = svc.Record(ctx, "Tom", string(activity.KindWork), "worked")
		_ = svc.Record(ctx, "Tom", string(activity.KindGift), "gift")
	}

	got, err := svc.ListByPet(ctx, "Tom", activity.ListFilter{Kinds: []activity.Kind{activity.KindGift}, Limit: 3})
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 gift entries, got %d", len(got))
	}
	for _, e := range got {
		if e.Kind != activity.KindGift {
			t.Fatalf("unexpected kind %s", e.Kind)
		}
	}
}

func TestService_RepoCapDropsOldest(t *testing.T) {
	svc := activity.NewService(mem.NewActivityRepo(2))
	ctx := context.Background()

	_ = svc.Record(ctx, "Tom", string(activity.KindFeed), "one")
	_ = svc.Record(ctx, "Tom", string(activity.KindFeed), "two")
	_ = svc.Record(ctx, "Tom", string(activity.KindFeed), "three")

	got, _ := svc.ListByPet(ctx, "Tom", activity.ListFilter{})
	if len(got) != 2 || got[0].Message != "three" || got[1].Message != "two" {
		t.Fatalf("expected last two entries, got %#v", got)
	}
}

func TestService_Forget(t *testing.T) {
	svc := activity.NewService(mem.NewActivityRepo(0))
	ctx := context.Background()

	_ = svc.Record(ctx, "Tom", string(activity.KindFeed), "fed")
	if err := svc.Forget(ctx, "Tom"); err != nil {
		t.Fatalf("Forget error: %v", err)
	}
	got, _ := svc.ListByPet(ctx, "Tom", activity.ListFilter{})
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %d", len(got))
	}
}

func TestService_InvalidInput(t *testing.T) {
	svc := activity.NewService(mem.NewActivityRepo(0))
	ctx := context.Background()

	if err := svc.Record(ctx, " ", "feed", "x"); err != activity.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ListByPet(ctx, "", activity.ListFilter{}); err != activity.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

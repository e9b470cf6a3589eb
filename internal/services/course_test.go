package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/akademus/akademus-api/internal/platform/apierr"
)

func seedOwner(t *testing.T, ts *testServices, email string) uuid.UUID {
	t.Helper()
	u, err := ts.users.Create(context.Background(), CreateUserInput{
		Email: email, FirstName: "Owner", LastName: "One", Password: "pw",
	})
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return u.ID
}

func TestCourseLifecycle(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	owner := seedOwner(t, ts, "owner@x.com")

	created, err := ts.courses.Create(ctx, owner, CreateCourseInput{Title: "  Bio 101  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Bio 101" || created.OwnerID != owner || !created.IsActive {
		t.Fatalf("Create: unexpected %+v", created)
	}

	got, err := ts.courses.GetOne(ctx, created.ID, owner)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if got.ID != created.ID || got.Title != "Bio 101" || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("GetOne: unexpected %+v", got)
	}

	time.Sleep(5 * time.Millisecond)
	title := "Bio 102"
	updated, err := ts.courses.Update(ctx, created.ID, owner, UpdateCourseInput{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Bio 102" || !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("Update: unexpected %+v", updated)
	}

	untouched, err := ts.courses.Update(ctx, created.ID, owner, UpdateCourseInput{})
	if err != nil {
		t.Fatalf("Update (empty patch): %v", err)
	}
	if untouched.Title != "Bio 102" {
		t.Fatalf("Update (empty patch): title changed to %q", untouched.Title)
	}

	list, err := ts.courses.ListForOwner(ctx, owner)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListForOwner: err=%v len=%d", err, len(list))
	}

	if err := ts.courses.Remove(ctx, created.ID, owner); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	requireCode(t, "Remove (again)", ts.courses.Remove(ctx, created.ID, owner), apierr.CodeNotFound)
	_, err = ts.courses.GetOne(ctx, created.ID, owner)
	requireCode(t, "GetOne (deleted)", err, apierr.CodeNotFound)
	_, err = ts.courses.Update(ctx, created.ID, owner, UpdateCourseInput{Title: &title})
	requireCode(t, "Update (deleted)", err, apierr.CodeNotFound)

	list, err = ts.courses.ListForOwner(ctx, owner)
	if err != nil || len(list) != 0 {
		t.Fatalf("ListForOwner (after delete): err=%v len=%d", err, len(list))
	}
}

func TestCourseForeignOwnerIsNotFound(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	owner := seedOwner(t, ts, "owner@x.com")
	intruder := seedOwner(t, ts, "intruder@x.com")

	c, err := ts.courses.Create(ctx, owner, CreateCourseInput{Title: "Private"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = ts.courses.GetOne(ctx, c.ID, intruder)
	requireCode(t, "GetOne (foreign)", err, apierr.CodeNotFound)

	title := "Mine now"
	_, err = ts.courses.Update(ctx, c.ID, intruder, UpdateCourseInput{Title: &title})
	requireCode(t, "Update (foreign)", err, apierr.CodeNotFound)

	requireCode(t, "Remove (foreign)", ts.courses.Remove(ctx, c.ID, intruder), apierr.CodeNotFound)

	list, err := ts.courses.ListForOwner(ctx, intruder)
	if err != nil || len(list) != 0 {
		t.Fatalf("ListForOwner (intruder): err=%v len=%d", err, len(list))
	}

	got, err := ts.courses.GetOne(ctx, c.ID, owner)
	if err != nil || got.Title != "Private" {
		t.Fatalf("GetOne (owner): got=%+v err=%v", got, err)
	}
}

func TestCourseTitleValidation(t *testing.T) {
	ts := newTestServices(t)
	owner := seedOwner(t, ts, "owner@x.com")

	for _, title := range []string{"", "   ", "ab", strings.Repeat("x", 101)} {
		_, err := ts.courses.Create(context.Background(), owner, CreateCourseInput{Title: title})
		requireCode(t, "Create ("+title+")", err, apierr.CodeValidation)
	}
	if _, err := ts.courses.Create(context.Background(), owner, CreateCourseInput{Title: strings.Repeat("x", 100)}); err != nil {
		t.Fatalf("Create (100 chars): %v", err)
	}
}

func TestCourseConcurrentRemove(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	owner := seedOwner(t, ts, "owner@x.com")
	c, err := ts.courses.Create(ctx, owner, CreateCourseInput{Title: "Race"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = ts.courses.Remove(ctx, c.ID, owner)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !apierr.Is(err, apierr.CodeNotFound):
			t.Fatalf("Remove (concurrent): unexpected error %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("Remove (concurrent): expected exactly one success, got %d", succeeded)
	}
}

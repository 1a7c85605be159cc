package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pupils-backend/apperror"
	"pupils-backend/database/dbtest"
	"pupils-backend/models"
	"pupils-backend/repository"
	"pupils-backend/schema"
	"pupils-backend/service"
)

var fixedNow = func() time.Time { return time.Date(2020, time.September, 1, 12, 0, 0, 0, time.UTC) }

func newService(t *testing.T) *service.PupilService {
	t.Helper()
	store := dbtest.Open(t, true)
	return service.NewPupilService(
		repository.NewPupilRepository(store.Gorm),
		repository.NewClassRepository(store.SQLX),
		service.WithClock(fixedNow),
	)
}

func birth(s string) time.Time {
	d, err := schema.ParseBirthDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func mustCreate(t *testing.T, svc *service.PupilService, first, last, born string) *models.Pupil {
	t.Helper()
	p, err := svc.Create(context.Background(), schema.NewPupil{FirstName: first, LastName: last, BirthDate: birth(born)})
	if err != nil {
		t.Fatalf("create %s %s: %v", first, last, err)
	}
	return p
}

func TestCreateAndGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "Peter", "Peterhoff", "01-10-2005")
	if created.SchoolClassID != nil {
		t.Error("created pupil must be unassigned")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FirstName != "Peter" || got.LastName != "Peterhoff" || schema.FormatDate(got.BirthDate) != "01-10-2005" {
		t.Errorf("got %+v", got)
	}
}

func TestCreateAgeBounds(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		born string
		ok   bool
	}{
		{"31-12-2015", true},  // 5
		{"01-01-2016", false}, // 4
		{"01-01-2001", true},  // 19
		{"31-12-2000", false}, // 20
	}
	for _, tt := range tests {
		_, err := svc.Create(context.Background(), schema.NewPupil{FirstName: "Test", LastName: "Pupil", BirthDate: birth(tt.born)})
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.born, err)
		}
		if !tt.ok && !apperror.Is(err, apperror.KindAgeOutOfRange) {
			t.Errorf("%s: expected age error, got %v", tt.born, err)
		}
	}
}

func TestGetMissing(t *testing.T) {
	svc := newService(t)

	_, err := svc.Get(context.Background(), 77)
	if !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "Pupil with id 77 not found." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestListEmptyIsNotFound(t *testing.T) {
	svc := newService(t)

	if _, err := svc.List(context.Background()); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found on empty list, got %v", err)
	}

	roster, err := svc.Roster(context.Background())
	if err != nil || len(roster) != 0 {
		t.Fatalf("Roster on empty store = %v, %v", roster, err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	p := mustCreate(t, svc, "Peter", "Peterhoff", "01-10-2005")

	updated, err := svc.Update(ctx, p.ID, schema.PupilPatch{FirstName: strPtr("Ivan")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.FirstName != "Ivan" {
		t.Errorf("first name = %q", updated.FirstName)
	}

	got, _ := svc.Get(ctx, p.ID)
	if got.LastName != "Peterhoff" || schema.FormatDate(got.BirthDate) != "01-10-2005" {
		t.Errorf("untouched fields changed: %+v", got)
	}

	newBirth := birth("01-01-2008")
	if _, err := svc.Update(ctx, p.ID, schema.PupilPatch{BirthDate: &newBirth}); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.Get(ctx, p.ID)
	if schema.FormatDate(got.BirthDate) != "01-01-2008" || got.FirstName != "Ivan" {
		t.Errorf("after birth date patch: %+v", got)
	}
}

func TestUpdateAgeOutOfRangeKeepsRecord(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	p := mustCreate(t, svc, "Peter", "Peterhoff", "01-10-2005")

	tooOld := birth("01-01-1990")
	_, err := svc.Update(ctx, p.ID, schema.PupilPatch{FirstName: strPtr("Ivan"), BirthDate: &tooOld})
	if !apperror.Is(err, apperror.KindAgeOutOfRange) {
		t.Fatalf("expected age error, got %v", err)
	}

	got, _ := svc.Get(ctx, p.ID)
	if got.FirstName != "Peter" {
		t.Errorf("failed update must not be committed, first name = %q", got.FirstName)
	}
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	p := mustCreate(t, svc, "Peter", "Peterhoff", "01-10-2005")

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, p.ID); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("get after delete: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("delete twice: %v", err)
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	p := mustCreate(t, svc, "Peter", "Peterhoff", "01-10-2005")

	for i := 0; i < 2; i++ {
		pupil, class, err := svc.Assign(ctx, p.ID, 1)
		if err != nil {
			t.Fatalf("assign #%d: %v", i+1, err)
		}
		if class.Name != "1-A" || pupil.SchoolClass == nil || pupil.SchoolClass.ID != 1 {
			t.Errorf("assign #%d: pupil=%+v class=%+v", i+1, pupil, class)
		}
	}
}

func TestReassignStrict(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	p := mustCreate(t, svc, "Peter", "Peterhoff", "01-10-2005")

	pupil, _, err := svc.Reassign(ctx, p.ID, 2)
	if err != nil {
		t.Fatalf("reassign from no class: %v", err)
	}
	if !pupil.InClass(2) {
		t.Error("pupil not moved to class 2")
	}

	if _, _, err := svc.Reassign(ctx, p.ID, 2); !apperror.Is(err, apperror.KindAlreadyAssigned) {
		t.Fatalf("expected already assigned, got %v", err)
	}

	pupil, class, err := svc.Reassign(ctx, p.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if class.Name != "3-C" || !pupil.InClass(3) {
		t.Errorf("pupil=%+v class=%+v", pupil, class)
	}
}

func TestAssignMissing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	p := mustCreate(t, svc, "Peter", "Peterhoff", "01-10-2005")

	_, _, err := svc.Assign(ctx, 999, 1)
	if !apperror.Is(err, apperror.KindNotFound) || err.Error() != "Pupil with id 999 not found." {
		t.Errorf("missing pupil: %v", err)
	}

	_, _, err = svc.Reassign(ctx, p.ID, 50)
	if !apperror.Is(err, apperror.KindNotFound) || err.Error() != "School Class with id 50 not found." {
		t.Errorf("missing class: %v", err)
	}
}

func TestClasses(t *testing.T) {
	svc := newService(t)

	classes, err := svc.Classes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 3 {
		t.Errorf("got %d classes", len(classes))
	}
}

type brokenStore struct{}

var errDisk = errors.New("disk I/O error")

func (brokenStore) FindByID(context.Context, uint) (*models.Pupil, error)  { return nil, errDisk }
func (brokenStore) ListOrdered(context.Context) ([]models.Pupil, error)    { return nil, errDisk }
func (brokenStore) Create(context.Context, *models.Pupil) error            { return errDisk }
func (brokenStore) Save(context.Context, *models.Pupil) error              { return errDisk }
func (brokenStore) Delete(context.Context, *models.Pupil) error            { return errDisk }
func (brokenStore) List(context.Context) ([]models.SchoolClass, error)     { return nil, errDisk }

type brokenClasses struct{ brokenStore }

func (brokenClasses) FindByID(context.Context, uint) (*models.SchoolClass, error) {
	return nil, errDisk
}

func TestStoreFailuresAreInternal(t *testing.T) {
	svc := service.NewPupilService(brokenStore{}, brokenClasses{}, service.WithClock(fixedNow))
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["list"] = svc.List(ctx)
	_, checks["get"] = svc.Get(ctx, 1)
	_, checks["create"] = svc.Create(ctx, schema.NewPupil{FirstName: "Peter", LastName: "Peterhoff", BirthDate: birth("01-10-2005")})
	checks["delete"] = svc.Delete(ctx, 1)
	_, checks["classes"] = svc.Classes(ctx)

	for name, err := range checks {
		if !apperror.Is(err, apperror.KindInternal) {
			t.Errorf("%s: expected internal error, got %v", name, err)
		}
		if !errors.Is(err, errDisk) {
			t.Errorf("%s: cause lost: %v", name, err)
		}
	}
}

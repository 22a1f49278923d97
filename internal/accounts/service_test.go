package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/types"
)

type stubAccountRepo struct {
	Repository
	account       *models.Account
	created       *models.Account
	territories   pq.StringArray
	legacyNotes   string
	note          *models.AccountNote
	noteErr       error
	legacyErr     error
	err           error
	territoryCall bool
}

func (s *stubAccountRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if s.err != nil {
		return s.err
	}
	s.created = account
	return nil
}

func (s *stubAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.account, s.err
}

func (s *stubAccountRepo) UpdateTerritories(ctx context.Context, id uuid.UUID, territories pq.StringArray) error {
	s.territoryCall = true
	s.territories = territories
	return s.err
}

func (s *stubAccountRepo) AppendLegacyNote(ctx context.Context, id uuid.UUID, notes string) error {
	if s.legacyErr != nil {
		return s.legacyErr
	}
	s.legacyNotes = notes
	return nil
}

func (s *stubAccountRepo) CreateNote(ctx context.Context, note *models.AccountNote) error {
	if s.noteErr != nil {
		return s.noteErr
	}
	s.note = note
	return nil
}

type recordedActivity struct {
	action enums.ActivityAction
	detail string
}

type stubRecorder struct {
	entries []recordedActivity
}

func (s *stubRecorder) Record(ctx context.Context, action enums.ActivityAction, repID uuid.UUID, accountID *uuid.UUID, detail string) {
	s.entries = append(s.entries, recordedActivity{action: action, detail: detail})
}

func testActor() types.Actor {
	return types.Actor{RepID: uuid.New(), Name: "Sam Vega", Email: "sam@acme.io"}
}

func newTestService(repo Repository, recorder *stubRecorder) Service {
	svc, err := NewService(repo, recorder, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		panic(err)
	}
	return svc
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(&stubAccountRepo{}, &stubRecorder{})
	_, err := svc.Create(context.Background(), CreateParams{Name: "  "}, testActor())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRecordsActivity(t *testing.T) {
	recorder := &stubRecorder{}
	svc := newTestService(&stubAccountRepo{}, recorder)

	account, err := svc.Create(context.Background(), CreateParams{
		Name:        "Harbor Liquors",
		Territories: []string{"north", " North ", "East"},
	}, testActor())
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if len(account.Territories) != 2 {
		t.Fatalf("expected normalized territories, got %v", account.Territories)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].action != enums.ActivityAccountCreated {
		t.Fatalf("expected account_created activity, got %+v", recorder.entries)
	}
}

func TestChangeTerritoriesNoOpOnSameSet(t *testing.T) {
	account := &models.Account{ID: uuid.New(), Territories: pq.StringArray{"East", "North"}}
	repo := &stubAccountRepo{account: account}
	recorder := &stubRecorder{}
	svc := newTestService(repo, recorder)

	_, err := svc.ChangeTerritories(context.Background(), account.ID, []string{"north", "east"}, testActor())
	if err != nil {
		t.Fatalf("change territories: %v", err)
	}
	if repo.territoryCall {
		t.Fatal("expected no update for identical territory set")
	}
	if len(recorder.entries) != 0 {
		t.Fatalf("expected no activity for no-op, got %+v", recorder.entries)
	}
}

func TestChangeTerritoriesRecordsActivity(t *testing.T) {
	account := &models.Account{ID: uuid.New(), Territories: pq.StringArray{"North"}}
	repo := &stubAccountRepo{account: account}
	recorder := &stubRecorder{}
	svc := newTestService(repo, recorder)

	updated, err := svc.ChangeTerritories(context.Background(), account.ID, []string{"South"}, testActor())
	if err != nil {
		t.Fatalf("change territories: %v", err)
	}
	if !repo.territoryCall {
		t.Fatal("expected territory update")
	}
	if len(updated.Territories) != 1 || updated.Territories[0] != "South" {
		t.Fatalf("unexpected territories: %v", updated.Territories)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].action != enums.ActivityTerritoryChanged {
		t.Fatalf("expected territory_changed activity, got %+v", recorder.entries)
	}
}

func TestAddNoteRequiresBody(t *testing.T) {
	svc := newTestService(&stubAccountRepo{account: &models.Account{ID: uuid.New()}}, &stubRecorder{})
	err := svc.AddNote(context.Background(), uuid.New(), "   ", testActor())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddNoteStructuredPath(t *testing.T) {
	account := &models.Account{ID: uuid.New()}
	repo := &stubAccountRepo{account: account}
	recorder := &stubRecorder{}
	svc := newTestService(repo, recorder)

	if err := svc.AddNote(context.Background(), account.ID, "called the buyer", testActor()); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if repo.note == nil || repo.note.Body != "called the buyer" {
		t.Fatalf("expected structured note, got %+v", repo.note)
	}
	if repo.legacyNotes != "" {
		t.Fatal("legacy field must not be touched when the insert succeeds")
	}
	if len(recorder.entries) != 1 || recorder.entries[0].action != enums.ActivityNoteAdded {
		t.Fatalf("expected note_added activity, got %+v", recorder.entries)
	}
}

func TestAddNoteFallsBackToLegacyField(t *testing.T) {
	existing := "old note"
	account := &models.Account{ID: uuid.New(), Notes: &existing}
	repo := &stubAccountRepo{account: account, noteErr: errors.New("relation missing")}
	recorder := &stubRecorder{}
	svc := newTestService(repo, recorder)

	if err := svc.AddNote(context.Background(), account.ID, "called the buyer", testActor()); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if repo.legacyNotes == "" {
		t.Fatal("expected legacy fallback write")
	}
	if want := "old note\n["; len(repo.legacyNotes) < len(want) || repo.legacyNotes[:len(want)] != want {
		t.Fatalf("expected appended legacy note, got %q", repo.legacyNotes)
	}
	if len(recorder.entries) != 1 {
		t.Fatalf("expected note_added activity after fallback, got %+v", recorder.entries)
	}
}

func TestAddNoteFailsWhenBothPathsFail(t *testing.T) {
	account := &models.Account{ID: uuid.New()}
	repo := &stubAccountRepo{
		account:   account,
		noteErr:   errors.New("relation missing"),
		legacyErr: errors.New("db down"),
	}
	svc := newTestService(repo, &stubRecorder{})

	err := svc.AddNote(context.Background(), account.ID, "called the buyer", testActor())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(&stubAccountRepo{}, &stubRecorder{})
	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

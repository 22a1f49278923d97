package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/promopace/promopace-backend/internal/activity"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/types"
)

// Service defines account lifecycle operations.
type Service interface {
	Create(ctx context.Context, params CreateParams, actor types.Actor) (*models.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	ChangeTerritories(ctx context.Context, id uuid.UUID, territories []string, actor types.Actor) (*models.Account, error)
	AddNote(ctx context.Context, accountID uuid.UUID, body string, actor types.Actor) error
	ListNotes(ctx context.Context, accountID uuid.UUID) ([]models.AccountNote, error)
}

// CreateParams describe a new account.
type CreateParams struct {
	Name        string
	ShortCode   *int
	Territories []string
}

type service struct {
	repo     Repository
	recorder activity.Recorder
	logg     *logger.Logger
}

// NewService wires account dependencies.
func NewService(repo Repository, recorder activity.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "accounts repository required")
	}
	if recorder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity recorder required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "accounts logger required")
	}
	return &service{repo: repo, recorder: recorder, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams, actor types.Actor) (*models.Account, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account name is required")
	}

	account := models.Account{
		Name:        name,
		ShortCode:   params.ShortCode,
		Territories: pq.StringArray(types.NormalizeTerritories(params.Territories)),
	}
	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create account")
	}

	s.recorder.Record(ctx, enums.ActivityAccountCreated, actor.RepID, &account.ID,
		fmt.Sprintf("created account %q", account.Name))
	return &account, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find account")
	}
	if account == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	return account, nil
}

func (s *service) List(ctx context.Context) ([]models.Account, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list accounts")
	}
	return rows, nil
}

// ChangeTerritories replaces the account's territory set. Writing the same
// set back is a no-op: no update, no activity entry.
func (s *service) ChangeTerritories(ctx context.Context, id uuid.UUID, territories []string, actor types.Actor) (*models.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := types.NormalizeTerritories(territories)
	if types.TerritoriesEqual(account.Territories, next) {
		return account, nil
	}

	if err := s.repo.UpdateTerritories(ctx, id, pq.StringArray(next)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update territories")
	}
	account.Territories = pq.StringArray(next)

	s.recorder.Record(ctx, enums.ActivityTerritoryChanged, actor.RepID, &account.ID,
		fmt.Sprintf("territories changed to %s", types.JoinTerritories(next)))
	return account, nil
}

// AddNote appends a structured note. When the notes table rejects the write,
// the note is folded into the account's legacy free-text field instead so the
// rep's words are never lost.
func (s *service) AddNote(ctx context.Context, accountID uuid.UUID, body string, actor types.Actor) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "note body is required")
	}

	account, err := s.Get(ctx, accountID)
	if err != nil {
		return err
	}

	note := models.AccountNote{
		AccountID: accountID,
		RepID:     actor.RepID,
		Body:      body,
	}
	if err := s.repo.CreateNote(ctx, &note); err != nil {
		s.logg.Warn(s.logg.WithAccountID(ctx, accountID.String()),
			"structured note insert failed, falling back to legacy field: "+err.Error())
		if fallbackErr := s.appendLegacy(ctx, account, body, actor); fallbackErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, fallbackErr, "append note")
		}
	}

	s.recorder.Record(ctx, enums.ActivityNoteAdded, actor.RepID, &accountID, "note added")
	return nil
}

func (s *service) appendLegacy(ctx context.Context, account *models.Account, body string, actor types.Actor) error {
	stamp := time.Now().UTC().Format("2006-01-02")
	line := fmt.Sprintf("[%s %s] %s", stamp, actor.Name, body)
	if account.Notes != nil && strings.TrimSpace(*account.Notes) != "" {
		line = *account.Notes + "\n" + line
	}
	return s.repo.AppendLegacyNote(ctx, account.ID, line)
}

func (s *service) ListNotes(ctx context.Context, accountID uuid.UUID) ([]models.AccountNote, error) {
	rows, err := s.repo.ListNotes(ctx, accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notes")
	}
	return rows, nil
}

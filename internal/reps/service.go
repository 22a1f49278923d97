package reps

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/promopace/promopace-backend/pkg/db/models"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/security"
	"github.com/promopace/promopace-backend/pkg/types"
)

// Service defines rep provisioning and lookup operations.
type Service interface {
	Provision(ctx context.Context, params ProvisionParams) (*models.Rep, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Rep, error)
	List(ctx context.Context) ([]models.Rep, error)
	SetNotificationPrefs(ctx context.Context, id uuid.UUID, territoryAlerts, weeklySummary bool) error
}

// ProvisionParams describe a new rep.
type ProvisionParams struct {
	Name        string
	Email       string
	Password    string
	IsAdmin     bool
	Territories []string
}

type service struct {
	repo Repository
}

// NewService wires rep dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reps repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Provision(ctx context.Context, params ProvisionParams) (*models.Rep, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rep name and email are required")
	}
	if len(params.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check rep email")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a rep with this email already exists")
	}

	hash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	rep := models.Rep{
		Name:                  name,
		Email:                 email,
		PasswordHash:          hash,
		IsAdmin:               params.IsAdmin,
		Territories:           pq.StringArray(types.NormalizeTerritories(params.Territories)),
		NotifyTerritoryAlerts: true,
		NotifyWeeklySummary:   true,
	}
	if err := s.repo.Create(ctx, &rep); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rep")
	}
	return &rep, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Rep, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find rep")
	}
	if rep == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rep not found")
	}
	return rep, nil
}

func (s *service) List(ctx context.Context) ([]models.Rep, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reps")
	}
	return rows, nil
}

func (s *service) SetNotificationPrefs(ctx context.Context, id uuid.UUID, territoryAlerts, weeklySummary bool) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.repo.Update(ctx, id, map[string]any{
		"notify_territory_alerts": territoryAlerts,
		"notify_weekly_summary":   weeklySummary,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update notification prefs")
	}
	return nil
}

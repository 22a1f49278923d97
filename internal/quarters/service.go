package quarters

import (
	"context"
	"strings"
	"time"

	"github.com/promopace/promopace-backend/pkg/db/models"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
)

// Service defines quarter setup operations. Activation never happens here;
// only the rollover activates a quarter.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Quarter, error)
	List(ctx context.Context) ([]models.Quarter, error)
	Active(ctx context.Context) (*models.Quarter, error)
}

// CreateParams describe a future quarter.
type CreateParams struct {
	Name     string
	StartsOn time.Time
	EndsOn   time.Time
}

type service struct {
	repo Repository
}

// NewService wires quarter dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quarters repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Quarter, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quarter name is required")
	}
	if params.StartsOn.IsZero() || params.EndsOn.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quarter start and end are required")
	}
	if !params.EndsOn.After(params.StartsOn) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quarter end must be after start")
	}

	quarter := models.Quarter{
		Name:     name,
		StartsOn: params.StartsOn,
		EndsOn:   params.EndsOn,
		IsActive: false,
	}
	if err := s.repo.Create(ctx, &quarter); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quarter")
	}
	return &quarter, nil
}

func (s *service) List(ctx context.Context) ([]models.Quarter, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quarters")
	}
	return rows, nil
}

func (s *service) Active(ctx context.Context) (*models.Quarter, error) {
	quarter, err := s.repo.Active(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find active quarter")
	}
	return quarter, nil
}

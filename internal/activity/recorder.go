package activity

import (
	"context"

	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/pagination"
)

// Recorder appends activity entries without ever failing the caller. A lost
// entry costs an audit row, not the operation that produced it.
type Recorder interface {
	Record(ctx context.Context, action enums.ActivityAction, repID uuid.UUID, accountID *uuid.UUID, detail string)
}

// Service is the read/write surface for the activity feed.
type Service interface {
	Recorder
	List(ctx context.Context, params ListParams) ([]models.ActivityLog, *pagination.Cursor, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires activity dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Record(ctx context.Context, action enums.ActivityAction, repID uuid.UUID, accountID *uuid.UUID, detail string) {
	entry := models.ActivityLog{
		Action:    action,
		AccountID: accountID,
		RepID:     repID,
		Detail:    detail,
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		lctx := s.logg.WithRepID(ctx, repID.String())
		lctx = s.logg.WithField(lctx, "action", string(action))
		s.logg.Warn(lctx, "activity entry dropped: "+err.Error())
	}
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.ActivityLog, *pagination.Cursor, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activity")
	}
	return rows, next, nil
}

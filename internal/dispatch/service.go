// Package dispatch sends notification emails and records every attempt in
// the notification log. Nothing here is allowed to fail a primary write;
// callers log returned errors and move on.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/promopace/promopace-backend/internal/progress"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/mailer"
)

// RepSource lists notification recipients.
type RepSource interface {
	List(ctx context.Context) ([]models.Rep, error)
	ListWeeklySummaryOptIns(ctx context.Context) ([]models.Rep, error)
}

// PromoSource resolves promo display names for summary rows.
type PromoSource interface {
	List(ctx context.Context, activeOnly bool) ([]models.Promo, error)
}

// SummarySource produces the per-territory standings overview a weekly
// summary is rendered from.
type SummarySource interface {
	ForTerritories(ctx context.Context, territories []string, now time.Time) (*progress.Overview, error)
}

// Service is the notification dispatcher.
type Service interface {
	// PromoAssigned emails matching territory-alert reps and returns how
	// many sends succeeded.
	PromoAssigned(ctx context.Context, event PromoAssignedEvent) (int, error)
	// WeeklySummary sends one summary per opted-in rep and returns how many
	// sends succeeded.
	WeeklySummary(ctx context.Context) (int, error)
}

type service struct {
	sender    mailer.Sender
	repo      Repository
	reps      RepSource
	promos    PromoSource
	summaries SummarySource
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires dispatcher dependencies.
func NewService(
	sender mailer.Sender,
	repo Repository,
	reps RepSource,
	promos PromoSource,
	summaries SummarySource,
	logg *logger.Logger,
) (Service, error) {
	switch {
	case sender == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail sender required")
	case repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification repository required")
	case reps == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rep source required")
	case promos == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "promo source required")
	case summaries == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "summary source required")
	case logg == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "dispatch logger required")
	}
	return &service{
		sender:    sender,
		repo:      repo,
		reps:      reps,
		promos:    promos,
		summaries: summaries,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// PromoAssigned emails every territory-alert rep whose territories overlap
// the account's. Each attempted send gets its own log row.
func (s *service) PromoAssigned(ctx context.Context, event PromoAssignedEvent) (int, error) {
	repRows, err := s.reps.List(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reps")
	}

	body, err := renderPromoAssigned(event)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render promo-assigned email")
	}
	subject := fmt.Sprintf("Promo assigned: %s for %s", event.PromoName, event.AccountName)

	var errs error
	sent := 0
	for _, rep := range repRows {
		if !rep.NotifyTerritoryAlerts {
			continue
		}
		if len(event.Territories) > 0 && !territoriesOverlap(rep.Territories, event.Territories) {
			continue
		}
		if err := s.deliver(ctx, enums.NotificationPromoAssigned, rep.Email, subject, body, event); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sent++
	}
	if sent == 0 && errs == nil {
		s.logg.Info(ctx, "promo-assigned notification had no recipients")
	}
	return sent, errs
}

func (s *service) WeeklySummary(ctx context.Context) (int, error) {
	repRows, err := s.reps.ListWeeklySummaryOptIns(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list summary recipients")
	}
	promoNames, err := s.promoNames(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	var errs error
	sent := 0
	for _, rep := range repRows {
		event, err := s.buildSummary(ctx, rep, promoNames, now)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		body, err := renderWeeklySummary(*event)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("render summary for %s: %w", rep.Email, err))
			continue
		}
		subject := "Your weekly promo summary"
		if event.QuarterName != "" {
			subject = fmt.Sprintf("Weekly promo summary: %s", event.QuarterName)
		}
		if err := s.deliver(ctx, enums.NotificationWeeklySummary, rep.Email, subject, body, event); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sent++
	}
	return sent, errs
}

func (s *service) buildSummary(ctx context.Context, rep models.Rep, promoNames map[string]string, now time.Time) (*WeeklySummaryEvent, error) {
	overview, err := s.summaries.ForTerritories(ctx, rep.Territories, now)
	if err != nil {
		return nil, fmt.Errorf("standings for %s: %w", rep.Email, err)
	}

	event := &WeeklySummaryEvent{
		RepID:       rep.ID,
		RepName:     rep.Name,
		QuarterName: overview.QuarterName,
		ElapsedPct:  overview.ElapsedPct,
		DaysLeft:    overview.DaysLeft,
	}
	for _, standing := range overview.Standings {
		if standing.Assignment == nil {
			continue
		}
		event.Rows = append(event.Rows, SummaryRow{
			AccountName: standing.Account.Name,
			PromoName:   promoNames[standing.Assignment.PromoID.String()],
			UnitsSold:   standing.Progress.UnitsSold,
			TargetUnits: standing.Assignment.TargetUnits,
			ProgressPct: standing.Progress.ProgressPct,
			Pace:        string(standing.Pace),
			Behind:      standing.Behind,
		})
	}
	return event, nil
}

// deliver sends one email and writes the outcome to the notification log.
// Log-write failures are logged and swallowed; the send outcome wins.
func (s *service) deliver(ctx context.Context, kind enums.NotificationKind, to, subject, body string, payload any) error {
	sendErr := s.sender.Send(ctx, mailer.Message{To: to, Subject: subject, HTMLBody: body})

	entry := models.NotificationLog{
		Kind:      kind,
		Recipient: to,
		Subject:   subject,
		Status:    enums.DeliverySent,
	}
	if sendErr != nil {
		entry.Status = enums.DeliveryFailed
		msg := sendErr.Error()
		entry.Error = &msg
	}
	if raw, err := json.Marshal(payload); err == nil {
		entry.Payload = raw
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logg.Warn(ctx, "notification log write failed: "+err.Error())
	}

	if sendErr != nil {
		return fmt.Errorf("send %s to %s: %w", kind, to, sendErr)
	}
	return nil
}

func (s *service) promoNames(ctx context.Context) (map[string]string, error) {
	promoRows, err := s.promos.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list promos")
	}
	names := make(map[string]string, len(promoRows))
	for _, promo := range promoRows {
		names[promo.ID.String()] = promo.Name
	}
	return names, nil
}

func territoriesOverlap(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// Package rollover implements the archive-then-reset procedure that closes
// a quarter. It is deliberately a two-phase flow: the operator first fetches
// the stats of what is about to be archived, then confirms with an exact
// phrase before anything is touched.
package rollover

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/promopace/promopace-backend/internal/quarters"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
)

// Step names reported when a rollover fails partway through.
const (
	StepArchiveAssignments  = "archive_assignments"
	StepArchiveTransactions = "archive_transactions"
	StepDeleteTransactions  = "delete_transactions"
	StepDeleteAssignments   = "delete_assignments"
	StepDeactivateQuarter   = "deactivate_quarter"
	StepActivateNext        = "activate_next_quarter"
)

// Stats is the phase-one preview of what the rollover will archive.
type Stats struct {
	Assignments   int64  `json:"assignments"`
	Transactions  int64  `json:"transactions"`
	Accounts      int64  `json:"accounts"`
	ActiveQuarter string `json:"active_quarter,omitempty"`
}

// Result reports what a completed rollover did.
type Result struct {
	ArchivedAssignments  int    `json:"archived_assignments"`
	ArchivedTransactions int    `json:"archived_transactions"`
	DeactivatedQuarter   string `json:"deactivated_quarter,omitempty"`
	ActivatedQuarter     string `json:"activated_quarter,omitempty"`
}

// Controller drives the rollover state machine. A single controller instance
// serves the whole process; the mutex serializes operator actions.
type Controller struct {
	mu            sync.Mutex
	state         enums.RolloverState
	failedStep    string
	confirmPhrase string

	repo     Repository
	quarters quarters.Repository
	logg     *logger.Logger
	now      func() time.Time
}

// NewController wires rollover dependencies. Steps are intentionally not
// wrapped in one transaction: a failure must leave the already-archived rows
// in place so the operator can see exactly how far it got.
func NewController(repo Repository, quarterRepo quarters.Repository, confirmPhrase string, logg *logger.Logger) (*Controller, error) {
	switch {
	case repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rollover repository required")
	case quarterRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quarters repository required")
	case logg == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rollover logger required")
	}
	if strings.TrimSpace(confirmPhrase) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "confirm phrase required")
	}
	return &Controller{
		state:         enums.RolloverIdle,
		confirmPhrase: confirmPhrase,
		repo:          repo,
		quarters:      quarterRepo,
		logg:          logg,
		now:           time.Now,
	}, nil
}

// State returns the current machine state and the failed step, if any.
func (c *Controller) State() (enums.RolloverState, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.failedStep
}

// Stats runs phase one: count what would be archived. Allowed from any
// resting state; re-fetching resets a previous DONE or ERROR.
func (c *Controller) Stats(ctx context.Context) (*Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == enums.RolloverExecuting {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "rollover already executing")
	}

	stats := &Stats{}
	var err error
	if stats.Assignments, err = c.repo.CountAssignments(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count assignments")
	}
	if stats.Transactions, err = c.repo.CountTransactions(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count transactions")
	}
	if stats.Accounts, err = c.repo.CountAccounts(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count accounts")
	}
	active, err := c.quarters.Active(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find active quarter")
	}
	if active != nil {
		stats.ActiveQuarter = active.Name
	}

	c.state = enums.RolloverStatsFetched
	c.failedStep = ""
	return stats, nil
}

// Execute runs phase three after checking the operator's confirm phrase.
// Steps run in a fixed order; a failure leaves whatever already committed in
// place and parks the machine in ERROR with the failed step named.
func (c *Controller) Execute(ctx context.Context, confirm string) (*Result, error) {
	c.mu.Lock()
	if c.state != enums.RolloverStatsFetched {
		state := c.state
		c.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "rollover stats must be fetched first").
			WithDetails(map[string]any{"state": state})
	}
	if confirm != c.confirmPhrase {
		c.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "confirmation phrase does not match")
	}
	c.state = enums.RolloverExecuting
	c.mu.Unlock()

	result, step, err := c.execute(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = enums.RolloverError
		c.failedStep = step
		c.logg.Error(ctx, "rollover failed at step "+step, err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "rollover incomplete").
			WithDetails(map[string]any{"step": step})
	}
	c.state = enums.RolloverDone
	c.failedStep = ""
	return result, nil
}

func (c *Controller) execute(ctx context.Context) (*Result, string, error) {
	active, err := c.quarters.Active(ctx)
	if err != nil {
		return nil, StepArchiveAssignments, err
	}
	quarterName := "unscheduled"
	if active != nil {
		quarterName = active.Name
	}

	result := &Result{}
	archivedAt := c.now().UTC()

	// Archive assignments.
	assignmentRows, err := c.repo.ListAssignments(ctx)
	if err != nil {
		return nil, StepArchiveAssignments, err
	}
	assignmentArchive := buildAssignmentArchive(assignmentRows, quarterName, archivedAt)
	if err := c.repo.ArchiveAssignments(ctx, assignmentArchive); err != nil {
		return nil, StepArchiveAssignments, err
	}
	result.ArchivedAssignments = len(assignmentArchive)

	// Archive transactions.
	transactionRows, err := c.repo.ListTransactions(ctx)
	if err != nil {
		return nil, StepArchiveTransactions, err
	}
	transactionArchive := buildTransactionArchive(transactionRows, quarterName, archivedAt)
	if err := c.repo.ArchiveTransactions(ctx, transactionArchive); err != nil {
		return nil, StepArchiveTransactions, err
	}
	result.ArchivedTransactions = len(transactionArchive)

	// Reset live tables, children first.
	if err := c.repo.DeleteAllTransactions(ctx); err != nil {
		return nil, StepDeleteTransactions, err
	}
	if err := c.repo.DeleteAllAssignments(ctx); err != nil {
		return nil, StepDeleteAssignments, err
	}

	// Quarter handover.
	if active != nil {
		if err := c.quarters.SetActive(ctx, active.ID, false); err != nil {
			return nil, StepDeactivateQuarter, err
		}
		result.DeactivatedQuarter = active.Name

		next, err := c.quarters.NextAfter(ctx, active.EndsOn)
		if err != nil {
			return nil, StepActivateNext, err
		}
		if next != nil {
			if err := c.quarters.SetActive(ctx, next.ID, true); err != nil {
				return nil, StepActivateNext, err
			}
			result.ActivatedQuarter = next.Name
		}
	}

	return result, "", nil
}

package enums

// RolloverState tracks the quarter rollover state machine.
type RolloverState string

const (
	RolloverIdle         RolloverState = "idle"
	RolloverStatsFetched RolloverState = "stats_fetched"
	RolloverExecuting    RolloverState = "executing"
	RolloverDone         RolloverState = "done"
	RolloverError        RolloverState = "error"
)

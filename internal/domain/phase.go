package domain

import "fmt"

// Phase is the loading state of a user list
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseInitialLoading Phase = "initial_loading"
	PhaseReady          Phase = "ready"
	PhaseLoadingMore    Phase = "loading_more"
)

// Event moves a user list between phases
type Event string

const (
	EventInitialFetch Event = "initial_fetch"
	EventFetchMore    Event = "fetch_more"
	EventFetchDone    Event = "fetch_done"
	EventFetchFailed  Event = "fetch_failed"
	EventMutated      Event = "mutated"
)

// Transition returns the phase reached from p on ev.
//
//	idle            -> initial_loading -> ready
//	ready           -> loading_more    -> ready
//	any             -> same                       (mutation)
//	initial_loading -> idle                       (failure)
func Transition(p Phase, ev Event) (Phase, error) {
	switch {
	case ev == EventInitialFetch && p == PhaseIdle:
		return PhaseInitialLoading, nil
	case ev == EventFetchMore && p == PhaseReady:
		return PhaseLoadingMore, nil
	case ev == EventFetchDone && (p == PhaseInitialLoading || p == PhaseLoadingMore):
		return PhaseReady, nil
	case ev == EventFetchFailed && p == PhaseInitialLoading:
		return PhaseIdle, nil
	case ev == EventFetchFailed && p == PhaseLoadingMore:
		return PhaseReady, nil
	case ev == EventMutated:
		return p, nil
	}

	if (ev == EventInitialFetch || ev == EventFetchMore) && (p == PhaseInitialLoading || p == PhaseLoadingMore) {
		return p, ErrFetchInFlight
	}
	return p, fmt.Errorf("invalid transition from %s on %s", p, ev)
}

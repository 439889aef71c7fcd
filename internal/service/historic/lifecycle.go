package historic

import (
	"github.com/looplab/fsm"

	"fleet-api/internal/domain"
)

// eventCheckIn is the only lifecycle event: a departed historic arrives.
const eventCheckIn = "check_in"

// newLifecycle builds the historic state machine seeded with the record's
// current status. The machine encodes that arrived is terminal: there is no
// event out of it, so a second check-in fails the transition.
func newLifecycle(current domain.HistoricStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{
				Name: eventCheckIn,
				Src:  []string{string(domain.HistoricStatusDeparted)},
				Dst:  string(domain.HistoricStatusArrived),
			},
		},
		fsm.Callbacks{},
	)
}

package sim

import "fmt"

// scheduleNextArrival draws an interarrival gap and schedules the next tick
// of the arrival generator. The generator has no explicit stop: once the
// next tick lies past the horizon, RunUntil simply never dispatches it.
func (sim *Simulator) scheduleNextArrival() {
	gap := sim.Variates.InterarrivalGap()
	if gap < 0 {
		panic(fmt.Sprintf("scheduleNextArrival: negative interarrival gap %v", gap))
	}
	sim.Schedule(gap, &ArrivalEvent{})
}

package experiment

// State is a stage of a run. Transitions only move forward.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSplitting
	StateBuildingIndex
	StateRetrieving
	StateScoring
	StateAggregating
	StateDone
)

var stateNames = [...]string{
	StateIdle:          "idle",
	StateValidating:    "validating",
	StateSplitting:     "splitting",
	StateBuildingIndex: "building-index",
	StateRetrieving:    "retrieving",
	StateScoring:       "scoring",
	StateAggregating:   "aggregating",
	StateDone:          "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

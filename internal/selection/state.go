package selection

// State is the navigation state of a path.
type State int

const (
	StateEmpty State = iota
	StateDomainSet
	StateRecipientSet
	StateCategorySet
	StateScenarioSet
	StateReadyNoScenario
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateDomainSet:
		return "DOMAIN_SET"
	case StateRecipientSet:
		return "RECIPIENT_SET"
	case StateCategorySet:
		return "CATEGORY_SET"
	case StateScenarioSet:
		return "SCENARIO_SET"
	case StateReadyNoScenario:
		return "READY_NO_SCENARIO"
	default:
		return "UNKNOWN"
	}
}

// Accepting reports whether generation may proceed from s.
func (s State) Accepting() bool {
	return s == StateScenarioSet || s == StateReadyNoScenario
}

// State classifies p against the taxonomy. A category without scenarios is
// READY_NO_SCENARIO; with scenarios it stays CATEGORY_SET until one is chosen.
func (p Path) State(t ChildLookup) (State, error) {
	switch p.n {
	case 0:
		return StateEmpty, nil
	case 1:
		return StateDomainSet, nil
	case 2:
		return StateRecipientSet, nil
	}
	required, err := p.RequiresScenario(t)
	if err != nil {
		return StateEmpty, err
	}
	if !required {
		return StateReadyNoScenario, nil
	}
	if p.n > int(LevelScenario) {
		return StateScenarioSet, nil
	}
	return StateCategorySet, nil
}

package review

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Review flow states.
const (
	StateResolving    = "resolving"
	StateRunningAI    = "running_ai"
	StateRunningRules = "running_rules"
	StateDone         = "done"
)

// Review flow events.
const (
	EventUseAI    = "use_ai"
	EventUseRules = "use_rules"
	EventDegrade  = "degrade"
	EventFinish   = "finish"
)

// FlowContext carries review identity through the state machine.
type FlowContext struct {
	ReviewID string
}

// FlowMachine tracks the provider-selection and fallback path of one review:
// resolving -> running_ai -> done, with degrade routing through
// running_rules, or resolving -> running_rules -> done directly.
type FlowMachine struct {
	interpreter *statekit.Interpreter[FlowContext]
}

// NewFlowMachine builds the review flow machine starting in the resolving
// state.
func NewFlowMachine(reviewID string) (*FlowMachine, error) {
	builder := statekit.NewMachine[FlowContext]("review-flow").
		WithInitial(statekit.StateID(StateResolving)).
		WithContext(FlowContext{ReviewID: reviewID})

	builder.State(StateResolving).
		On(EventUseAI).Target(StateRunningAI).
		On(EventUseRules).Target(StateRunningRules).
		Done()

	builder.State(StateRunningAI).
		On(EventFinish).Target(StateDone).
		On(EventDegrade).Target(StateRunningRules).
		Done()

	builder.State(StateRunningRules).
		On(EventFinish).Target(StateDone).
		Done()

	builder.State(StateDone).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build review flow machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &FlowMachine{interpreter: interpreter}, nil
}

// Transition attempts to advance the review flow. Sending an event that is
// not valid for the current state leaves the state unchanged and returns an
// error.
func (m *FlowMachine) Transition(event string) error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := m.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("event %q is not valid in review state %q", event, before)
}

// Current returns the current review flow state.
func (m *FlowMachine) Current() string {
	return string(m.interpreter.State().Value)
}

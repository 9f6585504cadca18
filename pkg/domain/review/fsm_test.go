package review

import "testing"

func TestFlowMachine_AIPath(t *testing.T) {
	m, err := NewFlowMachine("rev-20260101000000")
	if err != nil {
		t.Fatalf("NewFlowMachine: %v", err)
	}
	if m.Current() != StateResolving {
		t.Fatalf("initial state = %q, want %q", m.Current(), StateResolving)
	}

	if err := m.Transition(EventUseAI); err != nil {
		t.Fatalf("use_ai: %v", err)
	}
	if m.Current() != StateRunningAI {
		t.Errorf("state = %q, want %q", m.Current(), StateRunningAI)
	}

	if err := m.Transition(EventFinish); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if m.Current() != StateDone {
		t.Errorf("state = %q, want %q", m.Current(), StateDone)
	}
}

func TestFlowMachine_DegradePath(t *testing.T) {
	m, err := NewFlowMachine("rev-20260101000000")
	if err != nil {
		t.Fatalf("NewFlowMachine: %v", err)
	}

	steps := []struct {
		event string
		want  string
	}{
		{EventUseAI, StateRunningAI},
		{EventDegrade, StateRunningRules},
		{EventFinish, StateDone},
	}
	for _, s := range steps {
		if err := m.Transition(s.event); err != nil {
			t.Fatalf("%s: %v", s.event, err)
		}
		if m.Current() != s.want {
			t.Errorf("after %s state = %q, want %q", s.event, m.Current(), s.want)
		}
	}
}

func TestFlowMachine_RulesPath(t *testing.T) {
	m, err := NewFlowMachine("rev-20260101000000")
	if err != nil {
		t.Fatalf("NewFlowMachine: %v", err)
	}

	if err := m.Transition(EventUseRules); err != nil {
		t.Fatalf("use_rules: %v", err)
	}
	if err := m.Transition(EventFinish); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if m.Current() != StateDone {
		t.Errorf("state = %q, want %q", m.Current(), StateDone)
	}
}

func TestFlowMachine_InvalidTransition(t *testing.T) {
	m, err := NewFlowMachine("rev-20260101000000")
	if err != nil {
		t.Fatalf("NewFlowMachine: %v", err)
	}

	if err := m.Transition(EventFinish); err == nil {
		t.Error("expected error sending finish from resolving")
	}
	if m.Current() != StateResolving {
		t.Errorf("invalid event must not change state, got %q", m.Current())
	}
}

package hotspot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crimemap/backend/internal/domain"
)

func TestReduce_HoverLeaveIgnoresOtherTarget(t *testing.T) {
	states := []domain.InteractionState{
		{},
		{HoveredID: "a"},
		{HoveredID: "a", SelectedID: "b"},
	}
	for _, s := range states {
		assert.Equal(t, s, Reduce(s, domain.HoverLeave("zzz")))
	}
}

func TestReduce_RapidRehover(t *testing.T) {
	var s domain.InteractionState
	s = Reduce(s, domain.HoverEnter("a"))
	s = Reduce(s, domain.HoverEnter("b"))
	s = Reduce(s, domain.HoverLeave("a"))
	assert.Equal(t, "b", s.HoveredID)

	s = Reduce(s, domain.HoverLeave("b"))
	assert.Empty(t, s.HoveredID)
}

func TestReduce_ClickToggles(t *testing.T) {
	for _, start := range []string{"", "x", "a"} {
		s := domain.InteractionState{SelectedID: start}
		s = Reduce(Reduce(s, domain.Click("a")), domain.Click("a"))
		assert.Equal(t, start, s.SelectedID, "start %q", start)
	}
}

func TestReduce_SingleSelection(t *testing.T) {
	var s domain.InteractionState
	s = Reduce(s, domain.Click("a"))
	s = Reduce(s, domain.Click("b"))
	assert.Equal(t, "b", s.SelectedID)
}

func TestReduce_HoverAndSelectionIndependent(t *testing.T) {
	var s domain.InteractionState
	s = Reduce(s, domain.Click("a"))
	s = Reduce(s, domain.HoverEnter("b"))
	assert.Equal(t, domain.InteractionState{HoveredID: "b", SelectedID: "a"}, s)

	s = Reduce(s, domain.Dismiss())
	assert.Equal(t, domain.InteractionState{HoveredID: "b"}, s)

	s = Reduce(s, domain.Dismiss())
	assert.Equal(t, domain.InteractionState{HoveredID: "b"}, s)
}

func TestApply_StaleReferences(t *testing.T) {
	snap := snapshotOf(input("a", 40.7, -74, 0.5))

	s := Apply(domain.InteractionState{HoveredID: "a"}, domain.HoverEnter("gone"), snap)
	assert.Equal(t, "a", s.HoveredID)

	s = Apply(domain.InteractionState{SelectedID: "a"}, domain.Click("gone"), snap)
	assert.Empty(t, s.SelectedID)
}

func TestReplay_Deterministic(t *testing.T) {
	snap := snapshotOf(input("a", 40.7, -74, 0.5), input("b", 40.8, -74, 0.8))
	events := []domain.Event{
		domain.HoverEnter("a"),
		domain.Click("a"),
		domain.HoverEnter("b"),
		domain.HoverLeave("a"),
		domain.Click("b"),
	}
	want := domain.InteractionState{HoveredID: "b", SelectedID: "b"}
	assert.Equal(t, want, Replay(snap, events...))
	assert.Equal(t, want, Replay(snap, events...))
}

func TestHeal(t *testing.T) {
	snap := snapshotOf(input("a", 40.7, -74, 0.5))
	s := Heal(domain.InteractionState{HoveredID: "x", SelectedID: "a"}, snap)
	assert.Equal(t, domain.InteractionState{SelectedID: "a"}, s)

	s = Heal(domain.InteractionState{HoveredID: "a", SelectedID: "x"}, snap)
	assert.Equal(t, domain.InteractionState{HoveredID: "a"}, s)
}

package clock

import (
	"testing"
	"time"
)

func TestAdvanceMovesForwardByStep(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(start)

	got := c.Advance(10 * time.Second)
	want := start.Add(10 * time.Second)
	if !got.Equal(want) {
		t.Errorf("Advance() = %v, want %v", got, want)
	}
	if !c.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", c.Now(), want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(start)
	clone := c.Clone()

	c.Advance(time.Minute)

	if !clone.Now().Equal(start) {
		t.Errorf("expected clone to stay at %v, got %v", start, clone.Now())
	}
	if c.Now().Equal(start) {
		t.Error("expected original clock to have advanced")
	}
}

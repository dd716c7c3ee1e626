package molecule

import (
	"errors"
	"testing"
)

func TestStateValidate(t *testing.T) {
	good := []State{
		{},
		{J: 2, Ka: 1, Kc: 1, M: 2},
		{J: 3, Ka: -2, Kc: 1, M: 0, Isomer: 4}, // symmetric-top sign on Ka
	}
	for _, s := range good {
		if err := s.Validate(); err != nil {
			t.Fatalf("state %s: unexpected error %v", s.Name(), err)
		}
	}
	bad := []State{
		{J: -1},
		{J: 2, M: 3},
		{J: 2, M: -1},
		{J: 1, M: 0, Isomer: -2},
	}
	for _, s := range bad {
		err := s.Validate()
		if err == nil {
			t.Fatalf("state %+v: expected validation error", s)
		}
		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("state %+v: error %v does not match ErrInvalidState", s, err)
		}
	}
}

func TestStateName(t *testing.T) {
	s := State{J: 2, Ka: 1, Kc: 2, M: 1, Isomer: 0}
	if got := s.Name(); got != "2 1 2 1 0" {
		t.Fatalf("name: got %q", got)
	}
}

func TestStateWeight(t *testing.T) {
	cases := []struct {
		state     State
		forbidden string
		want      int
	}{
		{State{J: 1, Ka: 0, Kc: 1}, "", 1},
		{State{J: 1, Ka: 0, Kc: 1}, "Ka", 1},
		{State{J: 1, Ka: 1, Kc: 0}, "Ka", 0},
		{State{J: 1, Ka: 0, Kc: 1}, "Kb", 0},
		{State{J: 2, Ka: 1, Kc: 1}, "Kb", 1},
		{State{J: 1, Ka: 0, Kc: 1}, "Kc", 0},
		{State{J: 2, Ka: 0, Kc: 2}, "Kc", 1},
		{State{J: 1, Ka: 1, Kc: 1}, "bogus", 1},
		{State{J: 2, Ka: -1, Kc: 0}, "Ka", 0}, // negative odd K still forbidden
	}
	for _, c := range cases {
		if got := c.state.Weight(c.forbidden); got != c.want {
			t.Fatalf("weight(%s, %q): got %d want %d", c.state.Name(), c.forbidden, got, c.want)
		}
	}
}

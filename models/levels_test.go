package models

import "testing"

func TestLevelForXP_Boundaries(t *testing.T) {
	cases := []struct {
		xp   int64
		want string
	}{
		{0, "A1"},
		{499, "A1"},
		{500, "A2"},
		{1499, "A2"},
		{1500, "B1"},
		{3500, "B2"},
		{7000, "C1"},
		{11999, "C1"},
		{12000, "C2"},
		{1000000, "C2"},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Fatalf("LevelForXP(%d) = %s, want %s", c.xp, got, c.want)
		}
	}
}

func TestLevelLadder_Ascending(t *testing.T) {
	if LevelLadder[0].MinXP != 0 {
		t.Fatalf("ladder must start at 0 XP")
	}
	for i := 1; i < len(LevelLadder); i++ {
		if LevelLadder[i].MinXP <= LevelLadder[i-1].MinXP {
			t.Fatalf("ladder not strictly ascending at %d", i)
		}
	}
}

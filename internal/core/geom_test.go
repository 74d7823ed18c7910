package core

import "testing"

func TestLocationOffset(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		expected Location
	}{
		{"up", Up, Loc(1, 0)},
		{"right", Right, Loc(2, 1)},
		{"down", Down, Loc(1, 2)},
		{"left", Left, Loc(0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Loc(1, 1).Offset(tc.dir)
			if got != tc.expected {
				t.Errorf("Offset(%v) = %v, expected %v", tc.dir, got, tc.expected)
			}
		})
	}
}

func TestLocationIn(t *testing.T) {
	tests := []struct {
		loc      Location
		size     int
		expected bool
	}{
		{Loc(0, 0), 4, true},
		{Loc(3, 3), 4, true},
		{Loc(4, 0), 4, false},
		{Loc(0, -1), 4, false},
		{Loc(-1, 2), 4, false},
		{Loc(4, 4), 5, true},
	}

	for _, tc := range tests {
		if got := tc.loc.In(tc.size); got != tc.expected {
			t.Errorf("%v.In(%d) = %v, expected %v", tc.loc, tc.size, got, tc.expected)
		}
	}
}

func TestLocationAsMapKey(t *testing.T) {
	seen := map[Location]int{Loc(1, 2): 8}
	if seen[Location{X: 1, Y: 2}] != 8 {
		t.Error("equal locations should hash to the same key")
	}
}

func TestDirectionInverse(t *testing.T) {
	for _, d := range Directions {
		inv := d.Inverse()
		if inv.Inverse() != d {
			t.Errorf("%v.Inverse().Inverse() = %v", d, inv.Inverse())
		}
		if d.DX()+inv.DX() != 0 || d.DY()+inv.DY() != 0 {
			t.Errorf("%v and %v are not opposite vectors", d, inv)
		}
	}
}

func TestDirectionCodes(t *testing.T) {
	// Codes are part of the external contract.
	expected := map[Direction]int{Up: 0, Right: 1, Down: 2, Left: 3}
	for d, code := range expected {
		if int(d) != code {
			t.Errorf("%v = %d, want %d", d, int(d), code)
		}
	}
	if Direction(4).Valid() || Direction(-1).Valid() {
		t.Error("codes outside 0..3 should be invalid")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", Up, false},
		{"RIGHT", Right, false},
		{"d", Down, false},
		{"l", Left, false},
		{"sideways", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseDirection(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(Empty) != ColorDefault {
		t.Errorf("TileColor(Empty) = %v, want ColorDefault", TileColor(Empty))
	}
	if TileColor(2) != ColorGray {
		t.Errorf("TileColor(2) = %v, want ColorGray", TileColor(2))
	}
	if TileColor(4) != ColorWhite {
		t.Errorf("TileColor(4) = %v, want ColorWhite", TileColor(4))
	}
	if TileColor(1<<20) != ColorBrightMagenta {
		t.Errorf("TileColor(1<<20) = %v, want ColorBrightMagenta", TileColor(1<<20))
	}
	prev := TileColor(2)
	for v := 4; v <= 8192; v *= 2 {
		if TileColor(v) < prev {
			t.Errorf("TileColor(%d) = %v, below TileColor(%d)", v, TileColor(v), v/2)
		}
		prev = TileColor(v)
	}
}

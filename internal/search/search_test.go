package search

import (
	"testing"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/eval"
	"github.com/vovakirdan/auto2048/internal/grid"
)

func gridOf(t *testing.T, rows [][]int) grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

var tileCount = eval.Func(func(g grid.Grid) float64 { return float64(g.Count()) })

func TestBestMoveDepthZeroIsArgmax(t *testing.T) {
	ev := eval.NewSnake(eval.DefaultBase)
	grids := [][][]int{
		{{0, 2, 0, 4}, {8, 0, 8, 0}, {0, 0, 0, 2}, {2, 4, 8, 16}},
		{{2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 128}},
		{{4, 4, 8, 8}, {2, 0, 2, 0}, {0, 16, 0, 16}, {32, 0, 0, 2}},
	}

	for _, rows := range grids {
		g := gridOf(t, rows)
		want := NoMove
		for _, d := range core.Directions {
			if !g.Valid(d) {
				continue
			}
			next, _ := g.Moved(d)
			if s := ev.Evaluate(next); s > want.Score {
				want = Result{Direction: d, Score: s}
			}
		}

		got := BestMove(ev, g, 0, 0, DefaultDecay)
		if got != want {
			t.Errorf("BestMove(\n%v, 0) = %+v, want %+v", g, got, want)
		}
	}
}

func TestBestMoveNoValidDirection(t *testing.T) {
	g := gridOf(t, [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})

	got := BestMove(eval.NewSnake(eval.DefaultBase), g, 3, 3, DefaultDecay)
	if got != NoMove {
		t.Errorf("BestMove on stuck grid = %+v, want %+v", got, NoMove)
	}
	if got.Found() {
		t.Error("Found() = true for the no-move result")
	}
}

func TestBestMoveTiesFavourEnumerationOrder(t *testing.T) {
	g := gridOf(t, [][]int{{2, 0}, {0, 0}})

	// Right and Down both leave one tile; Up and Left are invalid.
	got := BestMove(tileCount, g, 0, 0, DefaultDecay)
	if want := (Result{Direction: core.Right, Score: 1}); got != want {
		t.Errorf("BestMove = %+v, want %+v", got, want)
	}
}

func TestBestMoveNegativeScores(t *testing.T) {
	g := gridOf(t, [][]int{{2, 0}, {0, 0}})
	negative := eval.Func(func(g grid.Grid) float64 { return -5 - float64(g.Count()) })

	for _, depth := range []int{0, 1, 2} {
		got := BestMove(negative, g, depth, depth, DefaultDecay)
		if !got.Found() || !g.Valid(got.Direction) {
			t.Errorf("BestMove(depth %d) = %+v, want a valid direction", depth, got)
		}
	}

	got := BestMove(negative, g, 0, 0, DefaultDecay)
	if want := (Result{Direction: core.Right, Score: -6}); got != want {
		t.Errorf("BestMove = %+v, want %+v", got, want)
	}
}

func TestBestMovePessimisticLookahead(t *testing.T) {
	g := gridOf(t, [][]int{{2, 0}, {0, 0}})

	// Right: 1 tile now, worst 2 lands at (0,0), best reply leaves 2 tiles.
	// Score = 1 + 2*0.5^1. Down scores the same, so Right wins the tie.
	got := BestMove(tileCount, g, 1, 1, 0.5)
	if want := (Result{Direction: core.Right, Score: 2}); got != want {
		t.Errorf("BestMove = %+v, want %+v", got, want)
	}
}

func TestWorstPlacementFirstMinimum(t *testing.T) {
	g := gridOf(t, [][]int{
		{2, 0, 0},
		{0, 4, 0},
		{0, 0, 0},
	})
	var nodes int

	loc, ok := worstPlacement(tileCount, g, &nodes)
	if !ok || loc != core.Loc(1, 0) {
		t.Errorf("worstPlacement = %v, %v; want (1,0), true", loc, ok)
	}
	if nodes != len(g.FreeLocations()) {
		t.Errorf("nodes = %d, want %d", nodes, len(g.FreeLocations()))
	}

	// The snake weights make the far end of the path the cheapest cell.
	loc, _ = worstPlacement(eval.NewSnake(eval.DefaultBase), g, &nodes)
	if loc != core.Loc(2, 2) {
		t.Errorf("worstPlacement(snake) = %v, want (2,2)", loc)
	}
}

func TestSearchLeavesInputUntouched(t *testing.T) {
	g := gridOf(t, [][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 0},
	})
	before := g

	s := NewSearcher(3, eval.DefaultBase, DefaultDecay)
	res, st := s.Search(g)

	if g != before {
		t.Error("Search modified its input grid")
	}
	if !res.Found() || !g.Valid(res.Direction) {
		t.Errorf("Search = %+v, want a valid direction", res)
	}
	if st.Nodes == 0 {
		t.Error("Search reported zero nodes")
	}
}

func TestNewSearcherClampsDepth(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{0, core.MinDepth},
		{4, 4},
		{12, core.MaxDepth},
	}

	for _, tt := range tests {
		if got := NewSearcher(tt.depth, eval.DefaultBase, 0).Depth; got != tt.want {
			t.Errorf("NewSearcher(%d).Depth = %d, want %d", tt.depth, got, tt.want)
		}
	}
	if got := NewSearcher(2, eval.DefaultBase, 0).Decay; got != DefaultDecay {
		t.Errorf("NewSearcher decay = %v, want %v", got, DefaultDecay)
	}
}

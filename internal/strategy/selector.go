package strategy

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/grid"
	"github.com/vovakirdan/auto2048/internal/search"
)

var (
	// ErrNoMoves is returned for a snapshot where no direction changes the
	// grid. The game is over.
	ErrNoMoves = errors.New("strategy: no legal moves")
	// ErrUnreachableState means a strategy found nothing to play on a grid
	// that can still move. It indicates a bug.
	ErrUnreachableState = errors.New("strategy: no direction found on a movable grid")
)

// Chooser produces the next direction for a grid snapshot.
type Chooser interface {
	ChooseDirection(g grid.Grid) (core.Direction, error)
}

// blindCycle is the preference order of the blind style.
var blindCycle = [4]core.Direction{core.Left, core.Down, core.Right, core.Up}

// Options configures a Selector.
type Options struct {
	Style     Style
	Depth     int
	EvalBase  float64
	DecayBase float64
	Seed      int64
	Logger    *log.Logger // optional
}

// Selector implements Chooser for every Style. It keeps the blind cycle
// position and the random source between calls, so use one Selector per
// game and do not share it between goroutines.
type Selector struct {
	style    Style
	rng      *rand.Rand
	blindPos int
	searcher *search.Searcher
	logger   *log.Logger
}

// New creates a selector. An unset style defaults to minimax.
func New(opts Options) (*Selector, error) {
	if opts.Style == 0 {
		opts.Style = DefaultStyle
	}
	if _, ok := styleNames[opts.Style]; !ok {
		return nil, fmt.Errorf("strategy: unknown style %d", int(opts.Style))
	}
	if opts.Depth == 0 {
		opts.Depth = core.DefaultDepth
	}
	if opts.Depth < core.MinDepth || opts.Depth > core.MaxDepth {
		return nil, fmt.Errorf("strategy: depth %d outside %d..%d", opts.Depth, core.MinDepth, core.MaxDepth)
	}
	return &Selector{
		style:    opts.Style,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		searcher: search.NewSearcher(opts.Depth, opts.EvalBase, opts.DecayBase),
		logger:   opts.Logger,
	}, nil
}

// Style returns the configured style.
func (s *Selector) Style() Style {
	return s.style
}

// Depth returns the search depth used by the minimax style.
func (s *Selector) Depth() int {
	return s.searcher.Depth
}

// ChooseDirection returns a direction that changes g.
// It never returns a direction that is invalid for g.
func (s *Selector) ChooseDirection(g grid.Grid) (core.Direction, error) {
	if !g.CanMove() {
		return core.Up, ErrNoMoves
	}

	switch s.style {
	case StyleRandom:
		return s.random(g)
	case StyleBlind:
		return s.blind(g)
	case StyleMinimax:
		return s.minimax(g)
	default:
		panic(fmt.Sprintf("strategy: unhandled style %v", s.style))
	}
}

func (s *Selector) random(g grid.Grid) (core.Direction, error) {
	// CanMove guarantees a valid direction exists, so this terminates.
	for {
		d := core.Directions[s.rng.Intn(len(core.Directions))]
		if g.Valid(d) {
			s.debug("random move", "dir", d)
			return d, nil
		}
	}
}

func (s *Selector) blind(g grid.Grid) (core.Direction, error) {
	for i := range len(blindCycle) {
		pos := (s.blindPos + i) % len(blindCycle)
		d := blindCycle[pos]
		if g.Valid(d) {
			s.blindPos = (pos + 1) % len(blindCycle)
			s.debug("blind move", "dir", d, "next", blindCycle[s.blindPos])
			return d, nil
		}
	}
	return core.Up, fmt.Errorf("%w: blind cycle at %d", ErrUnreachableState, s.blindPos)
}

func (s *Selector) minimax(g grid.Grid) (core.Direction, error) {
	res, st := s.searcher.Search(g)
	if !res.Found() {
		return core.Up, fmt.Errorf("%w: search depth %d", ErrUnreachableState, s.searcher.Depth)
	}
	s.debug("search move",
		"dir", res.Direction,
		"score", res.Score,
		"depth", s.searcher.Depth,
		"nodes", st.Nodes,
		"elapsed", st.Elapsed,
	)
	return res.Direction, nil
}

func (s *Selector) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

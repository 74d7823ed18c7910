// Package game owns the live 2048 board: spawning, scoring, win and
// game-over detection, and the gate that serialises moves.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/grid"
)

var (
	// ErrMoveInProgress is returned when a move is submitted while another
	// one holds the board.
	ErrMoveInProgress = errors.New("game: move in progress")
	// ErrNoMoveReserved is returned by CommitMove without a prior BeginMove.
	ErrNoMoveReserved = errors.New("game: no move reserved")
	// ErrInvalidMove is returned for direction codes outside Up..Left.
	ErrInvalidMove = errors.New("game: invalid move")
	// ErrGameOver is returned for moves after the game has ended.
	ErrGameOver = errors.New("game: game over")
)

// DefaultSpawn4 is the probability that a spawned tile is a 4.
const DefaultSpawn4 = 0.10

// State is the move gate of a Board.
type State int

const (
	Idle State = iota
	MoveInProgress
)

func (s State) String() string {
	if s == MoveInProgress {
		return "move_in_progress"
	}
	return "idle"
}

// Options configures a Board.
type Options struct {
	Size      int     // grid dimension, default core.DefaultSize
	WinTarget int     // tile that wins, default 2048
	StopAtWin bool    // end the game when the target is reached
	Spawn4    float64 // probability of spawning a 4; zero spawns only 2s
	Seed      int64
}

// Status summarises a board for hosts.
type Status struct {
	Score   int
	MaxTile int
	Moves   int
	Won     bool
	Over    bool
	State   State
}

// Board is the single owner of live game state. All methods are safe for
// concurrent use, but callers feeding a strategy should reserve the board
// with BeginMove so no other move lands between snapshot and commit.
type Board struct {
	mu    sync.Mutex
	opts  Options
	rng   *rand.Rand
	grid  grid.Grid
	score int
	moves int
	won   bool
	over  bool
	state State
}

// New creates a board and deals the two opening tiles.
func New(opts Options) (*Board, error) {
	if opts.Size == 0 {
		opts.Size = core.DefaultSize
	}
	if opts.Size < core.MinSize || opts.Size > core.MaxSize {
		return nil, fmt.Errorf("game: grid size %d outside %d..%d", opts.Size, core.MinSize, core.MaxSize)
	}
	if opts.WinTarget == 0 {
		opts.WinTarget = core.WinTargets[0]
	}
	if !core.IsPowerOfTwo(opts.WinTarget) || opts.WinTarget < 8 {
		return nil, fmt.Errorf("game: win target %d is not a power of two >= 8", opts.WinTarget)
	}
	if opts.Spawn4 < 0 || opts.Spawn4 > 1 {
		return nil, fmt.Errorf("game: spawn4 probability %v outside 0..1", opts.Spawn4)
	}

	b := &Board{opts: opts}
	b.rng = rand.New(rand.NewSource(opts.Seed))
	b.reset()
	return b, nil
}

// Reset clears the board and deals two new tiles. A reserved move is
// dropped; its CommitMove will fail with ErrNoMoveReserved.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Board) reset() {
	b.grid = grid.New(b.opts.Size)
	b.score = 0
	b.moves = 0
	b.won = false
	b.over = false
	b.state = Idle

	b.spawnTile()
	b.spawnTile()
}

// spawnTile spawns a new tile (2 or 4) in a random empty cell.
func (b *Board) spawnTile() {
	free := b.grid.FreeLocations()
	if len(free) == 0 {
		return
	}

	loc := free[b.rng.Intn(len(free))]

	value := 2
	if b.rng.Float64() < b.opts.Spawn4 {
		value = 4
	}

	// loc is free, so Place cannot fail.
	_ = b.grid.Place(loc, value)
}

// Size returns the grid dimension.
func (b *Board) Size() int {
	return b.opts.Size
}

// WinTarget returns the tile value that wins the game.
func (b *Board) WinTarget() int {
	return b.opts.WinTarget
}

// Snapshot returns a copy of the live grid.
func (b *Board) Snapshot() grid.Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid
}

// Score returns the current score.
func (b *Board) Score() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.score
}

// Status returns a summary of the board.
func (b *Board) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Status{
		Score:   b.score,
		MaxTile: b.grid.MaxTile(),
		Moves:   b.moves,
		Won:     b.won,
		Over:    b.over,
		State:   b.state,
	}
}

// Finished reports whether the board accepts no more moves.
func (b *Board) Finished() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.finished()
}

func (b *Board) finished() bool {
	return b.over || (b.won && b.opts.StopAtWin)
}

// BeginMove reserves the board for one move. Until CommitMove or
// CancelMove, every other move is rejected with ErrMoveInProgress.
func (b *Board) BeginMove() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.begin()
}

func (b *Board) begin() error {
	if b.state == MoveInProgress {
		return ErrMoveInProgress
	}
	if b.finished() {
		return ErrGameOver
	}
	b.state = MoveInProgress
	return nil
}

// CancelMove releases a reservation without moving.
func (b *Board) CancelMove() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = Idle
}

// CommitMove applies dir under a reservation taken by BeginMove and
// releases it. A direction that changes nothing is not an error: it
// returns a result with Changed false and spawns no tile.
func (b *Board) CommitMove(dir core.Direction) (grid.MoveResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commit(dir)
}

func (b *Board) commit(dir core.Direction) (grid.MoveResult, error) {
	if b.state != MoveInProgress {
		return grid.MoveResult{}, ErrNoMoveReserved
	}
	b.state = Idle

	if !dir.Valid() {
		return grid.MoveResult{}, fmt.Errorf("%w: direction %d", ErrInvalidMove, int(dir))
	}

	res := b.grid.Move(dir)
	if !res.Changed {
		return res, nil
	}

	b.score += res.Points
	b.moves++

	if !b.won && b.grid.MaxTile() >= b.opts.WinTarget {
		b.won = true
	}

	b.spawnTile()

	if !b.grid.CanMove() {
		b.over = true
	}
	return res, nil
}

// ApplyMove moves the live board in dir: it reserves the board, moves,
// adds points to the score, spawns a tile when the grid changed and
// updates the win and game-over flags.
func (b *Board) ApplyMove(dir core.Direction) (grid.MoveResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(); err != nil {
		return grid.MoveResult{}, err
	}
	return b.commit(dir)
}

// Restore replaces the live state with a saved grid and score.
func (b *Board) Restore(g grid.Grid, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == MoveInProgress {
		return ErrMoveInProgress
	}
	if g.Size() != b.opts.Size {
		return fmt.Errorf("game: cannot restore %dx%d grid on a %dx%d board", g.Size(), g.Size(), b.opts.Size, b.opts.Size)
	}
	if score < 0 {
		return fmt.Errorf("game: negative score %d", score)
	}

	b.grid = g
	b.score = score
	b.moves = 0
	b.won = g.MaxTile() >= b.opts.WinTarget
	b.over = !g.CanMove()
	return nil
}

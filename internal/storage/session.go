package storage

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/grid"
)

var (
	// ErrNoSession is returned when restoring a session that was never saved.
	ErrNoSession = errors.New("storage: no saved session")

	// ErrSessionSize is returned when a session was saved on a grid of
	// another size than the one restoring it.
	ErrSessionSize = errors.New("storage: session saved for another grid size")
)

// scoreKey holds the score in an encoded session.
const scoreKey = "score"

// locationKey names the entry of one grid cell.
func locationKey(loc core.Location) string {
	return fmt.Sprintf("Location_%d_%d", loc.X, loc.Y)
}

// EncodeSession flattens a grid and score into key/value pairs: one
// Location_<x>_<y> entry per cell (0 for empty) plus a score entry.
func EncodeSession(g grid.Grid, score int) map[string]string {
	n := g.Size()
	kv := make(map[string]string, n*n+1)
	for y := range n {
		for x := range n {
			loc := core.Loc(x, y)
			kv[locationKey(loc)] = strconv.Itoa(g.At(loc))
		}
	}
	kv[scoreKey] = strconv.Itoa(score)
	return kv
}

// DecodeSession rebuilds a grid of the given size and its score from
// EncodeSession output. Every location entry must be present and none may
// lie outside the grid.
func DecodeSession(size int, kv map[string]string) (grid.Grid, int, error) {
	if size < core.MinSize || size > core.MaxSize {
		return grid.Grid{}, 0, fmt.Errorf("storage: invalid session size %d", size)
	}
	for k := range kv {
		if k == scoreKey {
			continue
		}
		var x, y int
		if _, err := fmt.Sscanf(k, "Location_%d_%d", &x, &y); err != nil || k != locationKey(core.Loc(x, y)) {
			return grid.Grid{}, 0, fmt.Errorf("storage: unknown session key %q", k)
		}
		if !core.Loc(x, y).In(size) {
			return grid.Grid{}, 0, fmt.Errorf("%w: %s outside %dx%d", ErrSessionSize, k, size, size)
		}
	}
	g := grid.New(size)
	for y := range size {
		for x := range size {
			loc := core.Loc(x, y)
			raw, ok := kv[locationKey(loc)]
			if !ok {
				return grid.Grid{}, 0, fmt.Errorf("storage: session lacks %s", locationKey(loc))
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				return grid.Grid{}, 0, fmt.Errorf("storage: bad value at %s: %w", locationKey(loc), err)
			}
			if v == core.Empty {
				continue
			}
			if err := g.Place(loc, v); err != nil {
				return grid.Grid{}, 0, fmt.Errorf("storage: bad value at %s: %w", locationKey(loc), err)
			}
		}
	}

	raw, ok := kv[scoreKey]
	if !ok {
		return grid.Grid{}, 0, fmt.Errorf("storage: session lacks %s", scoreKey)
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return grid.Grid{}, 0, fmt.Errorf("storage: bad score: %w", err)
	}
	return g, score, nil
}

// SaveSession stores a grid and score under name, replacing any earlier
// session with that name.
func (s *Store) SaveSession(name string, g grid.Grid, score int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO sessions (name, key, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for k, v := range EncodeSession(g, score) {
		if _, err := stmt.Exec(name, k, v); err != nil {
			return fmt.Errorf("storage: cannot save session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return nil
}

// RestoreSession loads the session saved under name for a grid of the
// given size. It returns ErrNoSession when nothing was saved.
func (s *Store) RestoreSession(name string, size int) (grid.Grid, int, error) {
	rows, err := s.db.Query("SELECT key, value FROM sessions WHERE name = ?", name)
	if err != nil {
		return grid.Grid{}, 0, fmt.Errorf("storage: cannot query session: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return grid.Grid{}, 0, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return grid.Grid{}, 0, fmt.Errorf("storage: row iteration error: %w", err)
	}

	if len(kv) == 0 {
		return grid.Grid{}, 0, fmt.Errorf("%w: %q", ErrNoSession, name)
	}
	return DecodeSession(size, kv)
}

// DeleteSession removes a saved session. Deleting a missing session is not an error.
func (s *Store) DeleteSession(name string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return nil
}

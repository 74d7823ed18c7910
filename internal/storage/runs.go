package storage

import (
	"fmt"
	"time"
)

// RunRecord is the outcome of one automatically played game.
type RunRecord struct {
	ID        int64
	GameID    string
	Style     string
	Depth     int
	Seed      int64
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
	Duration  time.Duration
	CreatedAt time.Time
}

// StyleStats aggregates runs of one style.
type StyleStats struct {
	Style    string
	Runs     int
	AvgScore float64
	BestTile int
	Wins     int
}

// SaveRun records the outcome of an autoplay game.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	won := 0
	if r.Won {
		won = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, style, depth, seed, score, max_tile, moves, won, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID,
		r.Style,
		r.Depth,
		r.Seed,
		r.Score,
		r.MaxTile,
		r.Moves,
		won,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs for a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, style, depth, seed, score, max_tile, moves, won, duration_ms, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var r RunRecord
		var won int
		var durationMs int64
		var createdAt any

		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Style,
			&r.Depth,
			&r.Seed,
			&r.Score,
			&r.MaxTile,
			&r.Moves,
			&won,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.Won = won != 0
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// RunStats aggregates all runs of a game by style, ordered by style name.
func (s *Store) RunStats(gameID string) ([]StyleStats, error) {
	rows, err := s.db.Query(
		`SELECT style, COUNT(*), AVG(score), MAX(max_tile), SUM(won)
		 FROM runs
		 WHERE game_id = ?
		 GROUP BY style
		 ORDER BY style`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	defer rows.Close()

	var stats []StyleStats
	for rows.Next() {
		var st StyleStats
		if err := rows.Scan(&st.Style, &st.Runs, &st.AvgScore, &st.BestTile, &st.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/battleships/internal/game"
)

const defaultBestLimit = 5

// Result is one game's outcome as stored in the ledger.
type Result struct {
	GameID      string
	Status      game.Status
	Ships       int
	ShipsSunk   int
	GuessBudget int
	Guesses     int
	Rows        int
	Cols        int
	ElapsedMs   int64
	FinishedAt  time.Time
}

// ResultOf captures g's current counters as a ledger row.
func ResultOf(g *game.Game, elapsed time.Duration, at time.Time) Result {
	st := g.State()
	return Result{
		GameID:      g.ID(),
		Status:      st.Status,
		Ships:       st.ShipCount,
		ShipsSunk:   st.ShipsSunk,
		GuessBudget: st.GuessBudget,
		Guesses:     st.GuessesTaken,
		Rows:        g.Codec().Rows(),
		Cols:        g.Codec().Cols(),
		ElapsedMs:   elapsed.Milliseconds(),
		FinishedAt:  at.UTC(),
	}
}

// Summary aggregates every game recorded this run.
type Summary struct {
	Games     int
	Wins      int
	Guesses   int
	ShipsSunk int
}

// WinRate is wins per game, zero when nothing was played.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Accuracy is ships sunk per guess across all games.
func (s Summary) Accuracy() float64 {
	if s.Guesses == 0 {
		return 0
	}
	return float64(s.ShipsSunk) / float64(s.Guesses)
}

// Ledger records results for the lifetime of one process.
type Ledger struct {
	db *sql.DB
}

// Open creates an empty in-memory ledger.
func Open(ctx context.Context) (*Ledger, error) {
	db, err := openDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// Close releases the database; all results are discarded.
func (l *Ledger) Close() error { return l.db.Close() }

// Record stores r. Recording the same game twice keeps the first row.
func (l *Ledger) Record(ctx context.Context, r Result) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (game_id, status, ships, ships_sunk, guess_budget, guesses,
             board_rows, board_cols, elapsed_ms, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, string(r.Status), r.Ships, r.ShipsSunk, r.GuessBudget, r.Guesses,
		r.Rows, r.Cols, r.ElapsedMs, r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Summary aggregates all recorded games.
func (l *Ledger) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := l.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(guesses), 0),
               COALESCE(SUM(ships_sunk), 0)
        FROM results`, string(game.StatusWon),
	).Scan(&s.Games, &s.Wins, &s.Guesses, &s.ShipsSunk)
	return s, err
}

// Best returns the won games with the fewest guesses, then fastest, then
// earliest. A non-positive limit means the default of 5.
func (l *Ledger) Best(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = defaultBestLimit
	}
	rows, err := l.db.QueryContext(ctx, `
        SELECT game_id, status, ships, ships_sunk, guess_budget, guesses,
               board_rows, board_cols, elapsed_ms, finished_at
        FROM results
        WHERE status = ?
        ORDER BY guesses ASC, elapsed_ms ASC, finished_at ASC
        LIMIT ?`, string(game.StatusWon), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r        Result
			status   string
			finished string
		)
		if err := rows.Scan(&r.GameID, &status, &r.Ships, &r.ShipsSunk, &r.GuessBudget, &r.Guesses,
			&r.Rows, &r.Cols, &r.ElapsedMs, &finished); err != nil {
			return nil, err
		}
		r.Status = game.Status(status)
		at, err := time.Parse(time.RFC3339Nano, finished)
		if err != nil {
			return nil, fmt.Errorf("game %s finished_at: %w", r.GameID, err)
		}
		r.FinishedAt = at
		out = append(out, r)
	}
	return out, rows.Err()
}

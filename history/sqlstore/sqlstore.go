// Package sqlstore keeps game history in postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq" // Import pq driver.

	"github.com/battlesnakeio/gridsnake/config"
	"github.com/battlesnakeio/gridsnake/history"
	log "github.com/sirupsen/logrus"
)

const migrations = `
CREATE TABLE IF NOT EXISTS games (
	id VARCHAR(255) PRIMARY KEY,
	value jsonb,
	created timestamp default now()
);
CREATE TABLE IF NOT EXISTS game_frames (
	id VARCHAR(255),
	turn INTEGER,
	value jsonb,
	PRIMARY KEY (id, turn)
);
`

// NewSQLStore returns a new store using a postgres database.
func NewSQLStore(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if err = db.PingContext(ctx); err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, migrations)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Store represents an SQL store.
type Store struct {
	db *sql.DB
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(
	ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			// err is non-nil; don't change it
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit() // err is nil; if Commit returns error update err
		}
	}()
	err = txFunc(tx)
	return err
}

// CreateGame will insert or replace a game.
func (s *Store) CreateGame(ctx context.Context, g *history.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, value) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET value=$2`,
		g.ID, data,
	)
	return err
}

// SetGameStatus is used to set a specific game status. This operation
// should be atomic.
func (s *Store) SetGameStatus(
	ctx context.Context, id string, status history.GameStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET value = jsonb_set(value, '{status}', $2::jsonb) WHERE id = $1`,
		id, string(data),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return history.ErrNotFound
	}
	return nil
}

// PushFrame will push a frame onto the list of frames.
func (s *Store) PushFrame(
	ctx context.Context, id string, f *history.Frame) error {
	return s.transact(ctx, func(tx *sql.Tx) error {
		// Lock the game row so concurrent pushes see each other's turns.
		r := tx.QueryRowContext(ctx, "SELECT id FROM games WHERE id=$1 FOR UPDATE", id)
		var found string
		if err := r.Scan(&found); err != nil {
			if err == sql.ErrNoRows {
				return history.ErrNotFound
			}
			return err
		}

		r = tx.QueryRowContext(
			ctx, "SELECT MAX(turn) FROM game_frames WHERE id=$1", id)
		var last *int
		if err := r.Scan(&last); err != nil && err != sql.ErrNoRows {
			return err
		}
		if last != nil && f.Turn <= *last {
			return history.ErrInvalidSequence
		}

		data, err := json.Marshal(f)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx, `INSERT INTO game_frames (id, turn, value) VALUES ($1, $2, $3)`,
			id, f.Turn, data,
		)
		return err
	})
}

// ListFrames will list frames by an offset and limit, it supports
// negative offset.
func (s *Store) ListFrames(ctx context.Context, id string, limit, offset int) ([]*history.Frame, error) {
	if _, err := s.GetGame(ctx, id); err != nil {
		return nil, err
	}

	var total int
	r := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM game_frames WHERE id=$1", id)
	if err := r.Scan(&total); err != nil {
		return nil, err
	}
	start, end := history.Page(total, limit, offset)
	if start == end {
		return []*history.Frame{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM game_frames WHERE id=$1 ORDER BY turn ASC LIMIT $2 OFFSET $3`,
		id, end-start, start,
	)
	if err != nil {
		return nil, err
	}

	frames := []*history.Frame{}
	defer rows.Close()
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		frame := &history.Frame{}
		if err := json.Unmarshal(data, frame); err != nil {
			return nil, err
		}

		frames = append(frames, frame)
	}

	return frames, rows.Err()
}

// GetGame will fetch the game.
func (s *Store) GetGame(c context.Context, id string) (*history.Game, error) {
	r := s.db.QueryRowContext(c, "SELECT value FROM games WHERE id=$1", id)

	var data []byte
	if err := r.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, history.ErrNotFound
		}
		return nil, err
	}

	g := &history.Game{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Package redisstore keeps game history in redis. Each game is a JSON value
// under game:<id> and its frames are a list under game:<id>:frames.
package redisstore

import (
	"context"
	"encoding/json"

	"github.com/battlesnakeio/gridsnake/history"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

// pushFrameScript appends a frame only if its turn is after the last recorded
// turn. Returns -1 for an unknown game and 0 for an out of order turn.
var pushFrameScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
local last = tonumber(redis.call("GET", KEYS[3]) or "-1")
if tonumber(ARGV[1]) <= last then
	return 0
end
redis.call("SET", KEYS[3], ARGV[1])
redis.call("RPUSH", KEYS[2], ARGV[2])
return 1
`)

// Store is a history.Store backed by redis.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it should not be re-created across "threads"
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
// The underlying redis client will be immediately tested for connectivity, so don't call this until you know redis can connect.
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	err = client.Ping().Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

func gameKey(id string) string     { return "game:" + id }
func framesKey(id string) string   { return "game:" + id + ":frames" }
func lastTurnKey(id string) string { return "game:" + id + ":turn" }

// CreateGame writes the game, replacing any previous value.
func (rs *Store) CreateGame(ctx context.Context, g *history.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return errors.Wrap(rs.client.Set(gameKey(g.ID), data, 0).Err(), "unable to write game")
}

// SetGameStatus updates the status of an existing game.
func (rs *Store) SetGameStatus(ctx context.Context, id string, status history.GameStatus) error {
	g, err := rs.GetGame(ctx, id)
	if err != nil {
		return err
	}
	g.Status = status
	return rs.CreateGame(ctx, g)
}

// PushFrame appends a frame to the game's frame list.
func (rs *Store) PushFrame(ctx context.Context, id string, f *history.Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}

	res, err := pushFrameScript.Run(
		rs.client,
		[]string{gameKey(id), framesKey(id), lastTurnKey(id)},
		f.Turn, data,
	).Result()
	if err != nil {
		return errors.Wrap(err, "unable to push frame")
	}

	switch res {
	case int64(-1):
		return history.ErrNotFound
	case int64(0):
		return history.ErrInvalidSequence
	}
	return nil
}

// ListFrames will list frames by an offset and limit, it supports
// negative offset.
func (rs *Store) ListFrames(ctx context.Context, id string, limit, offset int) ([]*history.Frame, error) {
	n, err := rs.client.Exists(gameKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, history.ErrNotFound
	}

	total, err := rs.client.LLen(framesKey(id)).Result()
	if err != nil {
		return nil, err
	}
	start, end := history.Page(int(total), limit, offset)
	if start == end {
		return []*history.Frame{}, nil
	}

	values, err := rs.client.LRange(framesKey(id), int64(start), int64(end-1)).Result()
	if err != nil {
		return nil, err
	}

	frames := make([]*history.Frame, 0, len(values))
	for _, v := range values {
		f := &history.Frame{}
		if err := json.Unmarshal([]byte(v), f); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// GetGame will fetch the game.
func (rs *Store) GetGame(ctx context.Context, id string) (*history.Game, error) {
	data, err := rs.client.Get(gameKey(id)).Bytes()
	if err == redis.Nil {
		return nil, history.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	g := &history.Game{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Close closes the redis client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

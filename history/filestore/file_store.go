// Package filestore keeps game history as append only JSON lines, one file
// per game.
package filestore

import (
	"context"
	"errors"
	"os/user"
	"path"
	"strings"
	"sync"

	"github.com/battlesnakeio/gridsnake/history"
	log "github.com/sirupsen/logrus"
)

func defaultDir() string {
	return path.Join(homeDir(), ".gridsnake/games")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// New returns a file based store implementation (1 file per game).
func New(directory string) history.Store {
	if directory == "" {
		directory = defaultDir()
	}

	return &fileStore{
		games:     map[string]*history.Game{},
		frames:    map[string][]*history.Frame{},
		writers:   map[string]writer{},
		directory: directory,
	}
}

type fileStore struct {
	games     map[string]*history.Game
	frames    map[string][]*history.Frame
	writers   map[string]writer
	lock      sync.Mutex
	directory string
}

// closeGame removes the game from in-memory cache and closes the handle to its
// file. Should be called when game is complete.
func (fs *fileStore) closeGame(id string) {
	if w, ok := fs.writers[id]; ok {
		err := w.Close()
		if err != nil {
			log.WithError(err).WithField("game", id).Error("error while closing file writer")
		}
	}
	delete(fs.games, id)
	delete(fs.frames, id)
	delete(fs.writers, id)
}

func (fs *fileStore) CreateGame(ctx context.Context, g *history.Game) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	// Pick up frames from an earlier run of the same game.
	if _, err := fs.requireGame(g.ID); err != nil && err != history.ErrNotFound {
		return err
	}

	handle, err := fs.requireHandle(g.ID)
	if err != nil {
		return err
	}
	if err := writeGame(handle, g); err != nil {
		return err
	}

	clone := *g
	fs.games[g.ID] = &clone
	return nil
}

func (fs *fileStore) SetGameStatus(ctx context.Context, id string, status history.GameStatus) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	game, err := fs.requireGame(id)
	if err != nil {
		return err
	}

	handle, err := fs.requireHandle(id)
	if err != nil {
		return err
	}
	updated := *game
	updated.Status = status
	if err := writeGame(handle, &updated); err != nil {
		return err
	}

	fs.games[id] = &updated
	if status != history.GameStatusRunning {
		fs.closeGame(id)
	}
	return nil
}

func (fs *fileStore) PushFrame(ctx context.Context, id string, f *history.Frame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return err
	}

	frames := fs.frames[id]
	if len(frames) > 0 && f.Turn <= frames[len(frames)-1].Turn {
		return history.ErrInvalidSequence
	}

	handle, err := fs.requireHandle(id)
	if err != nil {
		return err
	}
	if err := writeFrame(handle, f); err != nil {
		return err
	}

	fs.frames[id] = append(frames, f.Clone())
	return nil
}

func (fs *fileStore) ListFrames(ctx context.Context, id string, limit, offset int) ([]*history.Frame, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return nil, err
	}

	frames := fs.frames[id]
	start, end := history.Page(len(frames), limit, offset)
	out := make([]*history.Frame, 0, end-start)
	for _, f := range frames[start:end] {
		out = append(out, f.Clone())
	}
	return out, nil
}

func (fs *fileStore) GetGame(ctx context.Context, id string) (*history.Game, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	g, err := fs.requireGame(id)
	if err != nil {
		return nil, err
	}

	// Clone the game, since this could be modified after this is returned
	// and upset internal state inside the store.
	clone := *g
	return &clone, nil
}

// Close closes every open game file.
func (fs *fileStore) Close() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	var first error
	for id, w := range fs.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
		delete(fs.writers, id)
	}
	return first
}

func (fs *fileStore) requireHandle(id string) (writer, error) {
	if w, ok := fs.writers[id]; ok {
		return w, nil
	}

	handle, err := openFileWriter(fs.directory, id)
	if err != nil {
		return nil, err
	}

	fs.writers[id] = handle
	return handle, nil
}

func (fs *fileStore) requireGame(id string) (*history.Game, error) {
	// Do nothing if game already loaded.
	if g, ok := fs.games[id]; ok {
		return g, nil
	}

	// Load game and frames from file.
	g, frames, err := ReadGame(fs.directory, id)
	if err != nil {
		return nil, err
	}

	fs.games[id] = g
	fs.frames[id] = frames
	return g, nil
}

// ErrInvalidID is returned for game ids that can't be used as a file name.
var ErrInvalidID = errors.New("filestore: invalid game id")

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return ErrInvalidID
	}
	return nil
}

func getFilePath(directory string, id string) string {
	return path.Join(directory, id) + ".jsonl"
}

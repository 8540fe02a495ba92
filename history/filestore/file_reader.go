package filestore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/battlesnakeio/gridsnake/history"
)

var openFileReader = readOnlyFileReader

func readOnlyFileReader(directory, id string) (io.ReadCloser, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	f, err := os.Open(getFilePath(directory, id))
	if os.IsNotExist(err) {
		return nil, history.ErrNotFound
	}
	return f, err
}

// readArchive replays a game file. The last game line wins and frames are
// returned in file order.
func readArchive(r io.Reader) (*history.Game, []*history.Frame, error) {
	var (
		game   *history.Game
		frames []*history.Frame
	)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, nil, err
		}

		if len(bytes.TrimSpace(line)) > 0 {
			rec := record{}
			if jErr := json.Unmarshal(line, &rec); jErr != nil {
				return nil, nil, jErr
			}
			if rec.Game != nil {
				game = rec.Game
			}
			if rec.Frame != nil {
				frames = append(frames, rec.Frame)
			}
		}

		if err == io.EOF {
			break
		}
	}

	if game == nil {
		return nil, nil, history.ErrNotFound
	}
	return game, frames, nil
}

// ReadGame loads the game stored in directory with the given id.
func ReadGame(directory, id string) (*history.Game, []*history.Frame, error) {
	r, err := openFileReader(directory, id)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	return readArchive(r)
}

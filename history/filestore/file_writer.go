package filestore

import (
	"encoding/json"
	"os"

	"github.com/battlesnakeio/gridsnake/history"
)

var openFileWriter = appendOnlyFileWriter

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

// record is one line of a game file. Later game lines replace earlier ones.
type record struct {
	Game  *history.Game  `json:"game,omitempty"`
	Frame *history.Frame `json:"frame,omitempty"`
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}

func writeGame(w writer, g *history.Game) error {
	return writeLine(w, &record{Game: g})
}

func writeFrame(w writer, f *history.Frame) error {
	return writeLine(w, &record{Frame: f})
}

func appendOnlyFileWriter(directory, id string) (writer, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(directory, 0775); err != nil {
		return nil, err
	}
	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	return os.OpenFile(getFilePath(directory, id), flags, 0644)
}

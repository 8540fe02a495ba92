package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/battlesnakeio/gridsnake/api"
	"github.com/battlesnakeio/gridsnake/board"
	"github.com/battlesnakeio/gridsnake/move"
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	inspectFile string
	inspectDump bool
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "move request to inspect, - for stdin")
	inspectCmd.Flags().BoolVar(&inspectDump, "dump", false, "dump the decoded snapshot")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "builds the board for a move request and prints it",
	Args: func(c *cobra.Command, args []string) error {
		if len(inspectFile) == 0 {
			return errors.New("file is required")
		}
		return nil
	},
	Run: func(*cobra.Command, []string) {
		r := io.Reader(os.Stdin)
		if inspectFile != "-" {
			f, err := os.Open(inspectFile)
			if err != nil {
				log.WithError(err).WithField("file", inspectFile).Fatal("unable to open move request")
			}
			defer f.Close()
			r = f
		}

		if err := inspect(r, os.Stdout, inspectDump); err != nil {
			log.WithError(err).WithField("file", inspectFile).Error("unable to inspect move request")
		}
	},
}

func inspect(r io.Reader, w io.Writer, dump bool) error {
	req := &api.SnakeRequest{}
	if err := json.NewDecoder(r).Decode(req); err != nil {
		return err
	}

	snapshot := req.Snapshot()
	if dump {
		spew.Fdump(w, snapshot)
	}

	b, err := board.New(&snapshot)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "game %s turn %d (%dx%d)\n", req.Game.ID, req.Turn, b.Width(), b.Height())
	fmt.Fprint(w, b.String())

	counts := b.Count()
	for _, k := range []board.Kind{board.Food, board.Hazard, board.SnakeBody, board.SnakeHead} {
		fmt.Fprintf(w, "%s: %d\n", k, counts[k])
	}
	if req.You.ID != "" {
		d := move.Heading{}.Decide(b, req.You.ID)
		fmt.Fprintf(w, "move: %s\n", d.Move)
	}
	return nil
}

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/battlesnakeio/gridsnake/history"
	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const replayInterval = 200 * time.Millisecond

func init() {
	replayCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to replay")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replays a recorded game in the terminal",
	Args: func(c *cobra.Command, args []string) error {
		if len(gameID) == 0 {
			return errors.New("game id is required")
		}
		return nil
	},
	Run: func(*cobra.Command, []string) {
		if err := replayGame(); err != nil {
			log.WithError(err).WithField("id", gameID).Error("unable to replay game")
		}
	},
}

func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *history.Frame, bool) {
	frameIndex++
	if frameIndex >= frames.count() {
		return frameIndex, nil, true
	}
	return frameIndex, frames.get(frameIndex), false
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *history.Frame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

func socketURL(addr, id string) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: fmt.Sprintf("/socket/%s", id)}
	switch {
	case strings.HasPrefix(addr, "https://"):
		u.Scheme = "wss"
		u.Host = strings.TrimPrefix(addr, "https://")
	case strings.HasPrefix(addr, "http://"):
		u.Host = strings.TrimPrefix(addr, "http://")
	}
	return u.String()
}

func loadGame(addr, id string) (*history.Game, *frameHolder, error) {
	g, err := getStatus(addr, id)
	if err != nil {
		return nil, nil, err
	}

	frames := newFrameHolder()

	u := socketURL(addr, id)
	log.WithField("url", u).Debug("connecting to frame socket")

	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, nil, err
	}

	go readFrames(c, frames)

	return g, frames, nil
}

func readFrames(c *websocket.Conn, frames *frameHolder) {
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Warn("failure to close websocket connection")
		}
	}()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("unable to read frame")
			}
			return
		}

		switch mt {
		case websocket.TextMessage:
			frame := &history.Frame{}
			if err := json.Unmarshal(message, frame); err != nil {
				log.WithError(err).Warn("unable to unmarshal frame")
				return
			}

			frames.append(frame)
		default:
			log.WithField("type", mt).Warn("unhandled message type")
		}
	}
}

func replayGame() error {
	game, frames, err := loadGame(apiAddr, gameID)
	if err != nil {
		return err
	}

	currentFrame, err := getInitialFrame(frames)
	if err != nil {
		return err
	}

	if err = termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	eventQueue := setupEventQueue()

	cycle := time.NewTicker(replayInterval)
	frameIndex := 0
	paused := false
	done := false

	for !done {
		select {
		case ev := <-eventQueue:
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeyEsc:
				done = true
			case termbox.KeySpace:
				paused = !paused
				if paused {
					cycle.Stop()
				} else {
					cycle = time.NewTicker(replayInterval)
				}
			case termbox.KeyArrowLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
				if err = render(game, currentFrame); err != nil {
					return err
				}
			case termbox.KeyArrowRight:
				paused = true
				frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
				if !done {
					if err = render(game, currentFrame); err != nil {
						return err
					}
				}
			}
		case <-cycle.C:
			if paused {
				continue
			}
			if err = render(game, currentFrame); err != nil {
				return err
			}
			frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
		}
	}

	if frameIndex >= frames.count() {
		tbprint(0, 0, defaultColor, defaultColor, "Press any key to exit...")
		if err = termbox.Flush(); err != nil {
			return err
		}
		termbox.PollEvent()
	}
	return nil
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}

func getInitialFrame(frames *frameHolder) (*history.Frame, error) {
	select {
	case f := <-frames.initialFrame():
		return f, nil
	case <-time.After(time.Second):
		return nil, errors.New("unable to find initial frame for game")
	}
}

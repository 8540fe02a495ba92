package api

import (
	"net/http"
	"time"

	"github.com/battlesnakeio/gridsnake/history"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

const socketWriteWait = 10 * time.Second

// handleSocket streams every recorded frame of a game as a JSON text message
// and closes normally once the last one has been sent.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	ctx := r.Context()
	if _, err := s.store.GetGame(ctx, id); err != nil {
		writeStoreError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("game", id).Warn("unable to upgrade connection")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("unable to close websocket")
		}
	}()

	offset := 0
	for {
		frames, err := s.store.ListFrames(ctx, id, defaultFrameLimit, offset)
		if err != nil {
			log.WithError(err).WithField("game", id).Error("unable to list frames")
			closeSocket(conn, websocket.CloseInternalServerErr, "unable to list frames")
			return
		}
		for _, f := range frames {
			if err := writeFrame(conn, f); err != nil {
				log.WithError(err).WithField("game", id).Warn("unable to write frame")
				return
			}
		}
		if len(frames) < defaultFrameLimit {
			break
		}
		offset += len(frames)
	}

	closeSocket(conn, websocket.CloseNormalClosure, "")
}

func writeFrame(conn *websocket.Conn, f *history.Frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(socketWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(f)
}

func closeSocket(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(socketWriteWait))
	if err != nil {
		log.WithError(err).Debug("unable to send close message")
	}
}

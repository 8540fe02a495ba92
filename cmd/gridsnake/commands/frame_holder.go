package commands

import (
	"sync"

	"github.com/battlesnakeio/gridsnake/history"
)

type frameHolder struct {
	sync.RWMutex
	frames []*history.Frame
	ffc    chan *history.Frame
}

func newFrameHolder() *frameHolder {
	return &frameHolder{ffc: make(chan *history.Frame, 1)}
}

func (fh *frameHolder) append(frame *history.Frame) {
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		fh.ffc <- frame
		close(fh.ffc)
	}

	fh.frames = append(fh.frames, frame)
}

func (fh *frameHolder) get(index int) *history.Frame {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}

	return fh.frames[index]
}

func (fh *frameHolder) initialFrame() <-chan *history.Frame {
	return fh.ffc
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}

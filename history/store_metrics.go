package history

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gridsnake",
			Subsystem: "history",
			Name:      "calls",
			Help:      "Calls processed by the history store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return t.ObserveDuration
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) CreateGame(c context.Context, g *Game) error {
	defer instrument("CreateGame")()
	return m.s.CreateGame(c, g)
}

func (m *metrics) SetGameStatus(c context.Context, id string, status GameStatus) error {
	defer instrument("SetGameStatus")()
	return m.s.SetGameStatus(c, id, status)
}

func (m *metrics) PushFrame(c context.Context, id string, f *Frame) error {
	defer instrument("PushFrame")()
	return m.s.PushFrame(c, id, f)
}

func (m *metrics) ListFrames(c context.Context, id string, limit, offset int) ([]*Frame, error) {
	defer instrument("ListFrames")()
	return m.s.ListFrames(c, id, limit, offset)
}

func (m *metrics) GetGame(c context.Context, id string) (*Game, error) {
	defer instrument("GetGame")()
	return m.s.GetGame(c, id)
}

// Close closes the wrapped store if it holds resources.
func (m *metrics) Close() error {
	if c, ok := m.s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

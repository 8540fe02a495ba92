package api

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsHistogramMetric = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gridsnake",
			Subsystem: "api",
			Name:      "requests_duration",
			Help:      "Requests served by the snake api.",
		},
		[]string{"route", "code"},
	)
	boardBuildHistogramMetric = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gridsnake",
			Subsystem: "board",
			Name:      "build_duration",
			Help:      "Time spent building the board state for a move.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
	boardErrorsMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridsnake",
			Subsystem: "board",
			Name:      "errors_total",
			Help:      "Snapshots that could not be built into a board.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(requestsHistogramMetric, boardBuildHistogramMetric, boardErrorsMetric)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func statusClass(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "5xx"
	case statusCode >= 400:
		return "4xx"
	case statusCode >= 300:
		return "3xx"
	case statusCode >= 200:
		return "2xx"
	}
	return "err"
}

func instrument(route string, h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		h(rec, r, ps)
		requestsHistogramMetric.WithLabelValues(route, statusClass(rec.status)).Observe(
			time.Since(start).Seconds(),
		)
	}
}

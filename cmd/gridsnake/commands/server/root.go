package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/battlesnakeio/gridsnake/api"
	"github.com/battlesnakeio/gridsnake/history"
	"github.com/battlesnakeio/gridsnake/move"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	listen      = ":8080"
	backend     = "inmem"
	backendArgs = ""
	promEnable  = true
	promListen  = ":9000"
)

// RootCmd provides the root run command.
var RootCmd = &cobra.Command{
	Use:    "server",
	Short:  "serve the snake",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		store, err := openStore(backend, backendArgs)
		if err != nil {
			log.WithError(err).
				WithField("backend", backend).
				Fatal("unable to start up history store")
		}
		defer closeStore(store)

		s := api.New(listen, history.InstrumentStore(store), move.Heading{})
		go shutdownOnSignal(s)
		if err := s.WaitForExit(); err != nil {
			log.WithError(err).
				WithField("listen", listen).
				Error("snake server failed")
		}
	},
}

func init() {
	RootCmd.Flags().StringVarP(&listen, "listen", "l", listen, "address for the snake to listen on")
	RootCmd.Flags().StringVarP(&backend, "backend", "b", backend, "history backend, as one of: [inmem, file, redis, sql]")
	RootCmd.Flags().StringVarP(&backendArgs, "backend-args", "a", backendArgs, "options to pass to the backend being used")
	RootCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	RootCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
}

func shutdownOnSignal(s *api.Server) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	log.WithField("signal", <-sig).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("unable to shut down cleanly")
	}
}

func closeStore(store history.Store) {
	if c, ok := store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.WithError(err).Error("unable to close store")
		}
	}
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}

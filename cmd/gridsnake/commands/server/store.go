package server

import (
	"fmt"

	"github.com/battlesnakeio/gridsnake/history"
	"github.com/battlesnakeio/gridsnake/history/filestore"
	"github.com/battlesnakeio/gridsnake/history/redisstore"
	"github.com/battlesnakeio/gridsnake/history/sqlstore"
)

func openStore(backend, args string) (history.Store, error) {
	switch backend {
	case "inmem":
		return history.InMemStore(), nil
	case "file":
		return filestore.New(args), nil
	case "redis":
		return redisstore.NewStore(args)
	case "sql":
		return sqlstore.NewSQLStore(args)
	}
	return nil, fmt.Errorf("invalid backend %q", backend)
}

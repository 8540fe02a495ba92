// Package config holds settings read from the environment. These aren't user
// facing but are useful for tuning the snake without a rebuild.
package config

import (
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

// Configuration variables.
var (
	MaxOpenConns = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns = getEnvInt("MAX_IDLE_CONNS", 20)
	MoveRate     = rate.Limit(getEnvInt("MOVE_RPS", 100))
	MoveBurst    = getEnvInt("MOVE_BURST", 20)
	MaxBoardSize = getEnvInt("MAX_BOARD_SIZE", 100)
)

// Appearance of the snake, returned from the index endpoint.
var (
	Author = getEnvString("SNAKE_AUTHOR", "")
	Color  = getEnvString("SNAKE_COLOR", "#ffffff")
	Head   = getEnvString("SNAKE_HEAD", "default")
	Tail   = getEnvString("SNAKE_TAIL", "default")
)

// Logging.
var (
	LogLevel  = getEnvString("LOG_LEVEL", "info")
	LogFormat = getEnvString("LOG_FORMAT", "text")
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvString(varName string, defaults string) string {
	if val, ok := os.LookupEnv(varName); ok {
		return val
	}
	return defaults
}

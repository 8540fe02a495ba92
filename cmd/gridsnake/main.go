package main

import (
	"math/rand"
	"time"

	"github.com/battlesnakeio/gridsnake/cmd/gridsnake/commands"
)

func main() {
	rand.Seed(time.Now().UnixNano())
	commands.Execute()
}

package main

import (
	"os"

	"event-planner/cmd/event-planner/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"spark/cmd/spark/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

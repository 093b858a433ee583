package main

import (
	"os"

	"asempv/cmd/asempv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

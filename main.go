// main is the entry point for the graveyard CLI.
package main

import (
	"github.com/huangsam/graveyard/cmd"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/history"
)

func main() {
	defer history.CloseHistory()

	cmd.SetHistoryManager(history.Manager)

	if err := cmd.Execute(); err != nil {
		// LogFatal exits before deferred calls run, so close the store first.
		history.CloseHistory()
		contract.LogFatal("Command failed", err)
	}
}

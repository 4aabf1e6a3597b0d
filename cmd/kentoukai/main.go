// Package main provides the kentoukai CLI: it post-processes recorded
// Othello games, finds blunders with an external Edax evaluator and files
// each one as an Anki flashcard.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

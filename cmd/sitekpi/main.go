package main

import (
	"os"

	"github.com/logpilot/sitekpi/cmd/sitekpi/commands"
)

// main is the entry point for the sitekpi CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/sitekpi [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

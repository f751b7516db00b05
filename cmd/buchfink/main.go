package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/buchfink-dev/buchfink/internal/commands"
)

func main() {
	// Optional .env for BUCHFINK_* overrides; a missing file is fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dialogkit/topiclint/internal/cli"
)

func main() {
	// Optional .env for TOPICLINT_* defaults; absence is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"padeltime/internal/cli"
)

func main() {
	// Optional .env for local runs; real environment variables win.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

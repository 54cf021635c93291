package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/alanpramil7/underdog/cmd"
	"github.com/alanpramil7/underdog/internal/output"
)

var version = "dev"

func main() {
	printer := output.NewPrinter(os.Stdout, os.Stderr, true)

	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		printer.Warning("could not load .env file: %v", err)
	}

	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		printer.Error("%v", err)
		os.Exit(1)
	}
}

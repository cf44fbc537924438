// main is the entry point of the timezone-buddy CLI.
//
// STARTUP SEQUENCE:
//  1. Load a .env file into the environment, if there is one
//  2. Hand over to the cobra command tree, which loads the config,
//     sets up the logger and opens storage for the chosen command
//  3. Exit non-zero if the command failed
//
// RUNNING:
//
//	go run ./cmd/timezone-buddy list
//	go run ./cmd/timezone-buddy --config=config/local.yaml serve
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/timezone-buddy serve
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	// Embedded tz database, so zones resolve on hosts without zoneinfo.
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/aanand-mishra/timezone-buddy/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error: load .env:", err)
		os.Exit(1)
	}

	os.Exit(cli.Execute())
}

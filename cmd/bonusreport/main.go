package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/godilite/bonus-report/internal/config"
	"github.com/godilite/bonus-report/internal/repository"
	"github.com/godilite/bonus-report/internal/service"
	"github.com/godilite/bonus-report/internal/weights"
	"github.com/joho/godotenv"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0
	ExitError       = 1 // Runtime error
	ExitConfigError = 2 // Configuration, weight file or input layout error
)

func main() {
	_ = godotenv.Load(".env")

	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	for _, target := range []error{
		config.ErrInvalidConfig,
		weights.ErrLoadWeights,
		weights.ErrRoleNotFound,
		weights.ErrInvalidWeight,
		service.ErrMissingColumns,
		repository.ErrWorkbookNotFound,
		repository.ErrSheetNotFound,
	} {
		if errors.Is(err, target) {
			return ExitConfigError
		}
	}
	return ExitError
}

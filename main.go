package main

import (
	"os"

	"github.com/ledgewood/gitpick/cmd"
	"github.com/ledgewood/gitpick/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}

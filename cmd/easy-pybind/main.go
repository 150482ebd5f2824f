package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hyhieu/easy-pybind/internal/commands"
	apperrors "github.com/hyhieu/easy-pybind/internal/errors"
	"github.com/hyhieu/easy-pybind/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewApp().ExecuteContext(ctx); err != nil {
		code := apperrors.ExitCodeFor(err)
		output.SetWriter(os.Stderr)
		output.Error(err.Error())
		output.Debug("exiting", "code", code, "reason", apperrors.ExitCodeName(code))
		stop()
		os.Exit(code)
	}
}

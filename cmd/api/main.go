package main

import (
	"log/slog"
	"os"

	"github.com/ahernandez25/CS166-Phase3/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error(err.Error())
		os.Exit(1)
	}
}

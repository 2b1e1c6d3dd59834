// Package main is the entry point for the vtk-catalog-build command.
package main

import (
	"os"

	"github.com/vinotek/catalog-builder/cmd/vtk-catalog-build/app"
	"github.com/vinotek/catalog-builder/internal/logger"
)

func main() {
	logger.Initialize(true)
	defer logger.Sync()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aleister1102/screendiff/internal/capture"
	"github.com/aleister1102/screendiff/internal/comparator"
	"github.com/aleister1102/screendiff/internal/composer"
	"github.com/aleister1102/screendiff/internal/config"
	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/aleister1102/screendiff/internal/filemanager"
	"github.com/aleister1102/screendiff/internal/imageset"
	"github.com/aleister1102/screendiff/internal/logger"
	"github.com/aleister1102/screendiff/internal/pixeldiff"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	// Flags take precedence over the config file
	gCfg.Mode = flags.Mode
	if flags.BaselineDir != "" {
		gCfg.CompareConfig.BaselineDir = flags.BaselineDir
	}
	if flags.NewDir != "" {
		gCfg.CompareConfig.NewDir = flags.NewDir
	}
	if flags.DiffDir != "" {
		gCfg.CompareConfig.DiffDir = flags.DiffDir
	}

	runID := uuid.New().String()
	zLogger, err := logger.NewWithRunID(gCfg.LogConfig, runID)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Str("run_id", runID).Str("mode", gCfg.Mode).Msg("screendiff starting")

	ctx := context.Background()

	switch gCfg.Mode {
	case "compare":
		if err := runCompare(ctx, gCfg, zLogger); err != nil {
			zLogger.Fatal().Err(err).Msg("Comparison run failed")
		}
	case "capture":
		if err := runCapture(ctx, gCfg, zLogger); err != nil {
			zLogger.Fatal().Err(err).Msg("Capture run failed")
		}
	default:
		zLogger.Fatal().Str("mode", gCfg.Mode).Msg("Unknown mode, expected compare or capture")
	}
}

func runCompare(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) error {
	fm := filemanager.NewFileManager(zLogger)
	lister := imageset.NewLister(zLogger)
	matcher := imageset.NewMatcher(lister, zLogger)
	differ := pixeldiff.NewPixelmatchDiffer(zLogger)
	comp := composer.NewComposer(zLogger)

	imageComparator := comparator.NewImageComparator(gCfg.ComparatorConfig, differ, comp, fm, zLogger)
	batch := comparator.NewBatchComparator(matcher, imageComparator, fm, zLogger)

	outcome, err := batch.CompareImages(ctx, gCfg.CompareConfig)
	if err != nil {
		return err
	}

	for _, failed := range outcome.Failed {
		fmt.Printf("FAIL  %s  %.4f%% pixels differ  -> %s\n", failed.TestedImage, failed.DiffPercentage, failed.DiffImagePath)
	}
	for _, passed := range outcome.Passed {
		fmt.Printf("PASS  %s\n", passed.TestedImage)
	}
	for _, name := range outcome.Missing {
		fmt.Printf("MISSING (no baseline)  %s\n", name)
	}
	for _, name := range outcome.Outdated {
		fmt.Printf("OUTDATED (no new capture)  %s\n", name)
	}

	if len(outcome.Failed) > 0 {
		os.Exit(1)
	}
	return nil
}

func runCapture(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) error {
	fm := filemanager.NewFileManager(zLogger)

	capturer := capture.NewRodCapturer(gCfg.CaptureConfig.Browser, fm, zLogger)
	if err := capturer.Start(); err != nil {
		return err
	}
	defer capturer.Stop()

	orchestrator := capture.NewOrchestrator(capturer, capture.NewGopsutilProbe(), zLogger)

	results, err := orchestrator.GenerateImages(ctx, gCfg.CaptureConfig)

	for _, result := range results {
		fmt.Printf("CAPTURED  %s  -> %s\n", result.Name, result.Path)
	}

	var aggregate *errorwrapper.AggregateError
	if errors.As(err, &aggregate) {
		for _, jobErr := range aggregate.Errors {
			fmt.Fprintf(os.Stderr, "FAILED  %v\n", jobErr)
		}
	}

	return err
}

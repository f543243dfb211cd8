// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/docsift"
	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/report"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docsift",
		Usage: "Persona-driven relevance analysis for PDF document collections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Rank document sections against a persona and job-to-be-done",
				Action: analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input-dir",
						Aliases:  []string{"i"},
						Usage:    "Directory containing the input PDF documents",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the JSON query configuration (persona, job, documents)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the JSON report",
						Value:   "output.json",
					},
					&cli.IntFlag{
						Name:  "top-sections",
						Usage: "Number of top-ranked sections to keep",
						Value: 15,
					},
					&cli.IntFlag{
						Name:  "top-subsections",
						Usage: "Number of refined sub-passages per section",
						Value: 3,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to an on-disk embedding cache directory (disabled when empty)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Extraction worker pool size (0 = half the CPU count)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	// Load and validate query configuration first so bad input fails fast.
	config, err := report.ReadQueryConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load query configuration: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	topK := c.Int("top-sections")
	topP := c.Int("top-subsections")
	if topK <= 0 {
		return fmt.Errorf("top-sections must be greater than 0")
	}
	if topP <= 0 {
		return fmt.Errorf("top-subsections must be greater than 0")
	}

	// Resolve configured filenames against the input directory. Missing
	// documents are warned about and skipped during extraction, but stay
	// in the list so the report metadata reflects the configured set.
	inputDir := c.String("input-dir")
	paths := make([]string, 0, len(config.Filenames()))
	found := 0
	for _, name := range config.Filenames() {
		path := filepath.Join(inputDir, name)
		if _, statErr := os.Stat(path); statErr != nil {
			slog.Warn("configured document not found", "path", path)
		} else {
			found++
		}
		paths = append(paths, path)
	}
	if found == 0 {
		return fmt.Errorf("none of the configured documents exist in %s", inputDir)
	}

	engineOpts := []docsift.EngineOption{
		docsift.WithAIConfig(aiConfig),
		docsift.WithProgress(os.Stderr),
	}
	if cachePath := c.String("cache"); cachePath != "" {
		engineOpts = append(engineOpts, docsift.WithCachePath(cachePath))
	}
	if poolSize := c.Int("pool-size"); poolSize > 0 {
		engineOpts = append(engineOpts, docsift.WithPoolSize(poolSize))
	}

	engine, err := docsift.NewEngine(engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	fmt.Fprintf(os.Stderr, "Input directory: %s\n", inputDir)
	fmt.Fprintf(os.Stderr, "Documents: %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	rpt, err := engine.Analyze(ctx, config.Query(), paths, topK, topP)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	outputPath := c.String("output")
	if err := report.WriteReport(outputPath, rpt); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	stats := rpt.Metadata.ProcessingStats
	fmt.Fprintf(os.Stderr, "Sections extracted: %d\n", stats.TotalSectionsExtracted)
	fmt.Fprintf(os.Stderr, "Sections selected: %d\n", stats.TopSectionsSelected)
	fmt.Fprintf(os.Stderr, "Processing time: %.2fs\n", stats.TotalProcessingTimeSeconds)
	fmt.Fprintf(os.Stderr, "Report written to %s\n", outputPath)

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

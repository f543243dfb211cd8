package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func analyzeTestApp() *cli.App {
	return &cli.App{
		Name: "docsift",
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
				},
			},
		},
	}
}

func TestAnalyzeCommandFlags(t *testing.T) {
	app := analyzeTestApp()

	t.Run("input-dir is required", func(t *testing.T) {
		args := []string{"docsift", "analyze", "--config", "/tmp/config.json"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input-dir")
	})

	t.Run("config is required", func(t *testing.T) {
		args := []string{"docsift", "analyze", "--input-dir", "/tmp/docs"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config")
	})

	t.Run("output has default value", func(t *testing.T) {
		cmd := app.Commands[0]
		var outputFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "output" {
				outputFlag = f
				break
			}
		}
		require.NotNil(t, outputFlag)
		assert.Equal(t, "output.json", outputFlag.Value)
	})

	t.Run("top-sections has default value of 15", func(t *testing.T) {
		cmd := app.Commands[0]
		var topFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "top-sections" {
				topFlag = f
				break
			}
		}
		require.NotNil(t, topFlag)
		assert.Equal(t, 15, topFlag.Value)
	})

	t.Run("top-subsections has default value of 3", func(t *testing.T) {
		cmd := app.Commands[0]
		var topFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "top-subsections" {
				topFlag = f
				break
			}
		}
		require.NotNil(t, topFlag)
		assert.Equal(t, 3, topFlag.Value)
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		cmd := app.Commands[0]
		var hostFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "embedding-host" {
				hostFlag = f
				break
			}
		}
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("embedding-model has default value", func(t *testing.T) {
		cmd := app.Commands[0]
		var modelFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "embedding-model" {
				modelFlag = f
				break
			}
		}
		require.NotNil(t, modelFlag)
		assert.Equal(t, "embeddinggemma", modelFlag.Value)
	})
}

func TestAnalyzeCommandValidation(t *testing.T) {
	app := analyzeTestApp()

	t.Run("missing config file fails", func(t *testing.T) {
		args := []string{"docsift", "analyze",
			"--input-dir", t.TempDir(),
			"--config", "/nonexistent/config.json"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query configuration")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level fails", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

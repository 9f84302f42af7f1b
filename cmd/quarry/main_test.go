package main

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newAddApp() *cli.App {
	return &cli.App{
		Name: "quarry",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Required: true,
					},
				},
			},
		},
	}
}

func TestAddCommandFlags(t *testing.T) {
	app := newAddApp()

	t.Run("db is required", func(t *testing.T) {
		args := []string{"quarry", "add", "--title", "Note", "content"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("title is required", func(t *testing.T) {
		args := []string{"quarry", "add", "--db", t.TempDir(), "content"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("content argument is required", func(t *testing.T) {
		args := []string{"quarry", "add", "--db", t.TempDir(), "--title", "Note"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content")
	})
}

func TestRecordCommandArgs(t *testing.T) {
	app := &cli.App{
		Name: "quarry",
		Commands: []*cli.Command{
			{
				Name:   "record",
				Action: recordCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Required: true,
					},
				},
			},
		},
	}

	t.Run("query and item id are required", func(t *testing.T) {
		args := []string{"quarry", "record", "--db", t.TempDir(), "only-query"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "item id")
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
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
	}

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
				err := newApp().Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default log level is info", func(t *testing.T) {
		app := newApp()
		app.Action = func(c *cli.Context) error {
			if got := c.String("log-level"); got != "info" {
				return fmt.Errorf("unexpected default level %q", got)
			}
			return nil
		}
		err := app.Run([]string{"test"})
		require.NoError(t, err)
	})
}

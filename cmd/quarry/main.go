// Copyright 2025 Quarry Authors
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
	"strings"

	"github.com/quarry-app/quarry"
	"github.com/quarry-app/quarry/ai"
	"github.com/quarry-app/quarry/core"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
	aiFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "Text-completion service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Text-completion model name",
			Value: "qwen2.5:3b",
		},
	}

	app := &cli.App{
		Name:  "quarry",
		Usage: "Personal knowledge base with personalized search",
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
				Name:      "add",
				Usage:     "Add a knowledge item",
				Action:    addCommand,
				ArgsUsage: "CONTENT",
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Item title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "summary",
						Usage: "Short abstract of the content",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Tag to attach (repeatable)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Item category",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source type (manual, note, ai_analysis)",
						Value: core.SourceManual,
					},
					&cli.IntFlag{
						Name:  "importance",
						Usage: "Importance from 0 to 10",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List all knowledge items",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag},
			},
			{
				Name:      "search",
				Usage:     "Search the knowledge base",
				Action:    searchCommand,
				ArgsUsage: "QUERY",
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "user",
						Usage: "User id for personalization",
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results to print",
						Value: 10,
					},
				}, aiFlags...),
			},
			{
				Name:      "record",
				Usage:     "Record that a search result was acted on",
				Action:    recordCommand,
				ArgsUsage: "QUERY ITEM_ID",
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "user",
						Usage: "User id the interaction belongs to",
					},
				},
			},
			{
				Name:   "prefs",
				Usage:  "Show the preference profile derived from behavior",
				Action: prefsCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "user",
						Usage: "User id to aggregate preferences for",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openKnowledgeBase(c *cli.Context) (*quarry.KnowledgeBase, error) {
	opts := []quarry.KnowledgeBaseOption{}
	if c.IsSet("ai-host") || c.IsSet("ai-model") {
		opts = append(opts, quarry.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithModel(c.String("ai-model")),
		)))
	}
	kb, err := quarry.Open(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	return kb, nil
}

func addCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("content argument is required")
	}

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	item := &core.KnowledgeItem{
		Title:      c.String("title"),
		Content:    strings.Join(c.Args().Slice(), " "),
		Summary:    c.String("summary"),
		Tags:       c.StringSlice("tag"),
		Category:   c.String("category"),
		SourceType: c.String("source"),
		Importance: c.Int("importance"),
	}

	added, err := kb.ItemRepository().AddKnowledgeItems(context.Background(), item)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	fmt.Printf("Added %s: %s\n", added[0].Id, added[0].Title)
	return nil
}

func listCommand(c *cli.Context) error {
	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	items, err := kb.ItemRepository().ListKnowledgeItems(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	for _, item := range items {
		fmt.Printf("%s  %-30s  tags=%s  accessed=%d\n",
			item.Id, item.Title, strings.Join(item.Tags, ","), item.AccessCount)
	}
	fmt.Printf("%d items\n", len(items))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("query argument is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	engine, err := kb.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	recorder, err := kb.NewRecorder()
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}
	defer recorder.Close()

	ctx := context.Background()
	items, err := kb.ItemRepository().ListKnowledgeItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	prefs := recorder.UserPreferences(ctx, c.String("user"))
	result := engine.Search(ctx, query, items, prefs)

	fmt.Printf("Interpreted as: keywords=%v operator=%s mode=%s\n",
		result.Query.Keywords, result.Query.Operator, result.Query.Mode)
	fmt.Printf("Found %d hits\n", result.TotalCount)

	maxHits := c.Int("max-hits")
	for i, hit := range result.Results {
		if i >= maxHits {
			break
		}
		fmt.Printf("%d: %s '%s' [%d]\n", i, hit.Item.Id, hit.Item.Title, hit.Relevance)
	}
	return nil
}

func recordCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("query and item id arguments are required")
	}

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	recorder, err := kb.NewRecorder()
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}
	defer recorder.Close()

	recorder.Record(context.Background(), c.Args().Get(0), core.ID(c.Args().Get(1)), c.String("user"))
	return nil
}

func prefsCommand(c *cli.Context) error {
	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	recorder, err := kb.NewRecorder()
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}
	defer recorder.Close()

	prefs := recorder.UserPreferences(context.Background(), c.String("user"))
	fmt.Printf("Favor frequently accessed: %t\n", prefs.FavorFrequentlyAccessed)
	fmt.Printf("Favor recently accessed:   %t\n", prefs.FavorRecent)
	fmt.Printf("Favorite tags:             %s\n", strings.Join(prefs.FavoriteTags, ", "))
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

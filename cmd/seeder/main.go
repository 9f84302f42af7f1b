package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/quarry-app/quarry"
	"github.com/quarry-app/quarry/core"
	"github.com/quarry-app/quarry/storage"
)

var samples = []*core.KnowledgeItem{
	{
		Title:      "Morning routine",
		Content:    "Wake at six, stretch, twenty minutes of exercise, then a cold shower before breakfast.",
		Summary:    "Daily health and exercise routine",
		Tags:       []string{"health", "routine"},
		SourceType: core.SourceNote,
		Importance: 6,
	},
	{
		Title:      "Project plan",
		Content:    "Work deadlines for the quarter: design review in week two, feature freeze in week six.",
		Summary:    "Quarterly work deadlines",
		Tags:       []string{"work", "planning"},
		SourceType: core.SourceManual,
		Importance: 8,
	},
	{
		Title:      "Budget review notes",
		Content:    "Monthly spending is up twelve percent. Cut subscriptions and revisit the grocery budget.",
		Tags:       []string{"finance", "budget"},
		SourceType: core.SourceNote,
		Importance: 7,
	},
	{
		Title:      "Standup follow-ups",
		Content:    "Ask about the migration timeline, confirm the meeting room booking for Thursday.",
		Tags:       []string{"work", "meeting"},
		SourceType: core.SourceNote,
		Importance: 4,
	},
	{
		Title:      "Reading list",
		Content:    "Finish the distributed systems book, start the one on sleep research.",
		Tags:       []string{"learning", "books"},
		SourceType: core.SourceManual,
		Importance: 3,
	},
	{
		Title:      "Garden ideas",
		Content:    "Tomatoes along the south fence, herbs by the kitchen door, wildflowers in the back strip.",
		Tags:       []string{"home", "garden"},
		SourceType: core.SourceNote,
		Importance: 2,
	},
	{
		Title:      "Workout progression",
		Content:    "Add five kilos to the deadlift every two weeks while the form holds.",
		Summary:    "Strength training plan",
		Tags:       []string{"health", "fitness"},
		SourceType: core.SourceManual,
		Importance: 5,
	},
	{
		Title:      "Tax checklist",
		Content:    "Collect invoices, export the yearly bank statement, book an hour with the accountant.",
		Tags:       []string{"finance", "deadline"},
		SourceType: core.SourceManual,
		Importance: 9,
	},
}

var (
	seedFileName = flag.String("src", "", "file of seed data, one item per line as title<TAB>content<TAB>tag,tag")
	dbPath       = flag.String("db", "./quarry_db", "path to the database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// itemsFromFile returns an iterator over items parsed from a tab-separated
// file. Lines without a title and content are skipped.
func itemsFromFile(filename string) (iter.Seq[*core.KnowledgeItem], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(*core.KnowledgeItem) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			fields := strings.SplitN(scanner.Text(), "\t", 3)
			if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
				continue
			}
			item := &core.KnowledgeItem{
				Title:      fields[0],
				Content:    fields[1],
				SourceType: core.SourceManual,
			}
			if len(fields) == 3 && fields[2] != "" {
				item.Tags = strings.Split(fields[2], ",")
			}
			if !yield(item) {
				return
			}
		}
	}, nil
}

// itemsFromSlice returns an iterator over a slice of items.
func itemsFromSlice(items []*core.KnowledgeItem) iter.Seq[*core.KnowledgeItem] {
	return func(yield func(*core.KnowledgeItem) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// seedBatched reads from a source iterator and adds items in batches.
func seedBatched(ctx context.Context, repo storage.ItemRepository, source iter.Seq[*core.KnowledgeItem], batchSize int) error {
	batch := make([]*core.KnowledgeItem, 0, batchSize)

	for item := range source {
		batch = append(batch, item)
		if len(batch) == batchSize {
			if _, err := repo.AddKnowledgeItems(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining items
	if len(batch) > 0 {
		if _, err := repo.AddKnowledgeItems(ctx, batch...); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	kb, err := quarry.Open(*dbPath)
	if err != nil {
		panic(err)
	}
	defer kb.Close()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[*core.KnowledgeItem]
	if seedFileName != nil && *seedFileName != "" {
		source, err = itemsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = itemsFromSlice(samples)
	}

	// Add in batches of 5
	if err := seedBatched(ctx, kb.ItemRepository(), source, 5); err != nil {
		panic(err)
	}
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"puzzle-leaderboard/core/config"
	"puzzle-leaderboard/feature/leaderboard"
	"puzzle-leaderboard/feature/leaderboard/scrape"

	"go.uber.org/zap"
)

// Parses a saved leaderboard page, or fetches the live one when no file is given, and
// prints what the scraper sees.
func main() {
	var page []byte
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		page = data
	} else {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Fetching", cfg.Puzzle.URL)
		data, err := scrape.NewClient(cfg.Puzzle, nil, zap.NewNop()).FetchRaw(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		page = data
	}

	snap, err := scrape.Parse(bytes.NewReader(page))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Date: %s\n", snap.Date().Format("2006-01-02"))
	fmt.Printf("Participants: %d, complete: %v\n\n", snap.Len(), snap.Complete())
	for _, s := range snap.Scores() {
		if s.Time == nil {
			fmt.Printf("  %-24s (not finished)\n", s.Name)
			continue
		}
		fmt.Printf("  %-24s %s\n", s.Name, s.Time)
	}

	fmt.Println()
	fmt.Println(leaderboard.Render(snap.Date(), snap.Scores()))
}

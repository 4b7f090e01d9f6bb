package scrape

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"puzzle-leaderboard/core/utils"
	"puzzle-leaderboard/feature/leaderboard/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	dateClass  = ".lbd-type__date"
	boardClass = ".lbd-board__items"
	rowClass   = ".lbd-score"
	nameClass  = ".lbd-score__name"
	timeClass  = ".lbd-score__time"
)

// ErrMarkup is returned when the page does not have the expected leaderboard structure.
var ErrMarkup = errors.New("unexpected leaderboard markup")

// Parse reads a leaderboard page into a snapshot.
func Parse(r io.Reader) (*models.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	dateSel := doc.Find(dateClass).First()
	if dateSel.Length() == 0 {
		return nil, fmt.Errorf("%w: no %s element", ErrMarkup, dateClass)
	}
	dateText := strings.TrimSpace(firstText(dateSel))
	date, err := models.ParseDate(dateText)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q: %w", ErrMarkup, dateText, err)
	}

	board := doc.Find(boardClass).First()
	if board.Length() == 0 {
		return nil, fmt.Errorf("%w: no %s element", ErrMarkup, boardClass)
	}

	var scores []models.ScoreRecord
	var rowErr error
	board.Find(rowClass).EachWithBreak(func(i int, row *goquery.Selection) bool {
		nameSel := row.Find(nameClass).First()
		name := strings.TrimSpace(firstText(nameSel))
		if name == "" {
			rowErr = fmt.Errorf("%w: row %d has no name", ErrMarkup, i+1)
			return false
		}
		scores = append(scores, models.ScoreRecord{
			Name: name,
			Time: parseTime(row.Find(timeClass).First()),
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return models.NewSnapshot(date, scores), nil
}

// firstText returns the text of the first child node of sel, ignoring nested markup
// that follows it (badges, "you" markers).
func firstText(sel *goquery.Selection) string {
	return sel.Contents().First().Text()
}

func parseTime(sel *goquery.Selection) *time.Duration {
	if sel.Length() == 0 {
		return nil
	}
	d, err := utils.ParseClock(firstText(sel))
	if err != nil {
		return nil
	}
	return &d
}

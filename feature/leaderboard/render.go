package leaderboard

import (
	"fmt"
	"strconv"
	"time"

	"puzzle-leaderboard/core/utils"
	"puzzle-leaderboard/feature/leaderboard/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Render formats the leaderboard message for date. Scores are expected in rank order;
// rank is the 1-based position in the slice. The output depends only on its inputs.
func Render(date time.Time, scores []models.ScoreRecord) string {
	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{strconv.Itoa(i + 1), s.Name, formatTime(s.Time)}
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style { return cell }).
		Headers("Rank", "Name", "Time").
		Rows(rows...)

	return fmt.Sprintf("Mini results for %s 👀\n```\n%s\n```", models.FormatDate(date), t.String())
}

func formatTime(d *time.Duration) string {
	if d == nil {
		return "N/A"
	}
	return utils.FormatClock(*d)
}

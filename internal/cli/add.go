package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kyohei682474/1day1growth/internal/timeline"
)

var (
	addEffort int
	addTags   []string
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	streakStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Log one growth entry for today",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().IntVarP(&addEffort, "effort", "e", 0, "effort rating from 1 (easy) to 5 (hard)")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "tag for the entry (repeatable)")
	addCmd.MarkFlagRequired("effort")
}

func runAdd(cmd *cobra.Command, args []string) error {
	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	text := strings.Join(args, " ")
	entry, err := db.CreateEntry(text, addEffort, addTags)
	if err != nil {
		return err
	}

	fmt.Println(okStyle.Render(fmt.Sprintf("✓ logged entry %s", entry.ID)))

	streak, err := timeline.CurrentStreak(db, cfg.Timeline.PageSize, time.Now())
	if err != nil {
		return fmt.Errorf("compute streak: %w", err)
	}
	fmt.Println(streakStyle.Render(fmt.Sprintf("  streak: %d day(s)", streak)))
	return nil
}

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kyohei682474/1day1growth/internal/tui"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Browse the timeline interactively",
	RunE:  runTimeline,
}

func runTimeline(cmd *cobra.Command, args []string) error {
	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	model := tui.NewTimelineModel(db, cfg.Timeline.PageSize)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("timeline ui: %w", err)
	}
	return nil
}

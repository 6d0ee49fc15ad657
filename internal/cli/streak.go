package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kyohei682474/1day1growth/internal/timeline"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current consecutive-day streak",
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	streak, err := timeline.CurrentStreak(db, cfg.Timeline.PageSize, time.Now())
	if err != nil {
		return err
	}

	switch streak {
	case 0:
		fmt.Println("no streak — log something today with `growth add`")
	case 1:
		fmt.Println(streakStyle.Render("streak: 1 day"))
	default:
		fmt.Println(streakStyle.Render(fmt.Sprintf("streak: %d days", streak)))
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kyohei682474/1day1growth/internal/store"
	"github.com/kyohei682474/1day1growth/internal/timeline"
)

var (
	listLimit  int
	listCursor string
	listAll    bool
)

var (
	dateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries newest first, one page at a time",
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "page size (default from config)")
	listCmd.Flags().StringVarP(&listCursor, "cursor", "c", "", "continuation cursor from a previous page")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "page through the entire timeline")
}

func runList(cmd *cobra.Command, args []string) error {
	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	limit := listLimit
	if limit < 1 {
		limit = cfg.Timeline.PageSize
	}

	if listAll {
		return listEverything(db, limit)
	}

	entries, next, err := db.ListEntries(listCursor, limit)
	if err != nil {
		return err
	}
	printEntries(entries)
	if next != "" {
		fmt.Printf("\nmore available: growth list --cursor %s\n", next)
	}
	return nil
}

func listEverything(db *store.DB, pageSize int) error {
	sess := timeline.NewSession(db, pageSize)
	for sess.HasMore() {
		if _, err := sess.LoadMore(); err != nil {
			return err
		}
	}
	printEntries(sess.Entries())
	fmt.Println(streakStyle.Render(fmt.Sprintf("\nstreak: %d day(s)", sess.Streak(time.Now()))))
	return nil
}

func printEntries(entries []store.Entry) {
	if len(entries) == 0 {
		fmt.Println("no entries")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s [%d/5] %s",
			dateStyle.Render(e.CreatedTime().Format("2006-01-02 15:04")),
			e.Effort,
			e.Text,
		)
		if len(e.Tags) > 0 {
			line += " " + tagStyle.Render("#"+strings.Join(e.Tags, " #"))
		}
		fmt.Println(line)
	}
}

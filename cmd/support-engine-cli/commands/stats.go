package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hantec-labs/support-engine/cmd/support-engine-cli/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded interaction statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Storage.Driver == "none" || cfg.Storage.Driver == "" {
		return fmt.Errorf("interaction recording is disabled (storage.driver is %q)", cfg.Storage.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recorder, err := newRecorder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer recorder.Close()

	stats, err := recorder.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	if stats.TotalInteractions == 0 {
		ui.Warning("No interactions recorded yet")
		return nil
	}

	ui.Section("Recorded Interactions")
	ui.Info("Total: %d", stats.TotalInteractions)
	ui.Info("Average duration: %.0fms", stats.AvgDurationMs)

	if len(stats.ByCategory) > 0 {
		fmt.Println()
		ui.Table([]string{"Category", "Count"}, countRows(stats.ByCategory))
	}
	if len(stats.ByConfidence) > 0 {
		fmt.Println()
		ui.Table([]string{"Confidence", "Count"}, countRows(stats.ByConfidence))
	}
	return nil
}

func countRows(counts map[string]int64) [][]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(counts))
	for _, key := range keys {
		rows = append(rows, []string{key, strconv.FormatInt(counts[key], 10)})
	}
	return rows
}

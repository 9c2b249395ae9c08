package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hantec-labs/support-engine/cmd/support-engine-cli/ui"
	"github.com/hantec-labs/support-engine/internal/ingest"
)

var (
	ingestDir       string
	ingestShowFacts bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Clean and inspect the scraped knowledge base",
	Long: `Runs every scraped .txt page through the cleaning pipeline and reports
what would be indexed: category, word count, and how much of each page
survives noise removal.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "knowledge directory (defaults to config)")
	ingestCmd.Flags().BoolVar(&ingestShowFacts, "facts", false, "show extracted key facts per page")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir := ingestDir
	if dir == "" {
		dir = cfg.Knowledge.Dir
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("list knowledge files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .txt files found in %s", dir)
	}
	sort.Strings(paths)

	ui.Section("Knowledge Base Ingestion")
	ui.Info("Directory: %s", dir)
	ui.Info("Pages: %d", len(paths))
	fmt.Println()

	bar := ui.NewProgressBar(len(paths), "Cleaning pages")

	var docs []*ingest.CleanedDocument
	var skipped []string
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		filename := filepath.Base(path)
		doc := ingest.ProcessFile(filename, string(raw))
		if doc == nil {
			skipped = append(skipped, filename)
		} else {
			docs = append(docs, doc)
		}
		_ = bar.Add(1)
	}

	rows := make([][]string, 0, len(docs))
	byCategory := make(map[string]int)
	for _, doc := range docs {
		byCategory[doc.Category]++
		rows = append(rows, []string{
			doc.Filename,
			doc.Category,
			strconv.Itoa(doc.Metadata.WordCount),
			fmt.Sprintf("%.0f%%", doc.Retention*100),
		})
	}

	fmt.Println()
	ui.Table([]string{"Page", "Category", "Words", "Kept"}, rows)

	if ingestShowFacts {
		ui.Section("Key Facts")
		for _, doc := range docs {
			facts := formatFacts(doc.Facts)
			if facts == "" {
				continue
			}
			fmt.Printf("%s\n%s\n", doc.Filename, facts)
		}
	}

	fmt.Println()
	for _, category := range sortedKeys(byCategory) {
		ui.Info("%-12s %d pages", category, byCategory[category])
	}
	for _, name := range skipped {
		ui.Warning("Skipped %s (too short after cleaning)", name)
	}
	ui.Success("Cleaned %d of %d pages", len(docs), len(paths))
	return nil
}

func formatFacts(facts ingest.KeyFacts) string {
	var b strings.Builder
	writeFact := func(label string, values []string) {
		if len(values) > 0 {
			fmt.Fprintf(&b, "  %s: %s\n", label, strings.Join(values, ", "))
		}
	}
	writeFact("Leverage", facts.Leverage)
	writeFact("Spreads", facts.Spreads)
	writeFact("Commissions", facts.Commissions)
	writeFact("Min deposits", facts.MinimumDeposits)
	writeFact("Regulators", facts.Regulations)
	writeFact("Accounts", facts.AccountTypes)
	writeFact("Platforms", facts.Platforms)
	writeFact("Instruments", facts.Instruments)
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

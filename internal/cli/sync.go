package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sjha2048/worthkeeping.app/internal/github"
)

var (
	syncUser  string
	syncSince string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import merged GitHub pull requests",
	Long: `Import your merged GitHub pull requests as journal entries.

Each merged PR becomes one entry with the merge time as its capture time.
Already-imported PRs are skipped, so syncing is safe to repeat.

Requires GITHUB_TOKEN for private repositories and to avoid rate limits.

Examples:
  worthkeeping sync --user octocat
  worthkeeping sync --user octocat --since 90d
  worthkeeping sync --user octocat --since 2026-01-01`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncUser, "user", "", "GitHub username (default from config)")
	syncCmd.Flags().StringVar(&syncSince, "since", "30d", "look-back window: 7d, 30d, 90d or a YYYY-MM-DD date")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	user := syncUser
	if user == "" {
		user = cfg.GitHubUser
	}
	if user == "" {
		return fmt.Errorf("no GitHub user: pass --user or set WORTHKEEPING_GITHUB_USER")
	}

	since, err := parseSince(syncSince)
	if err != nil {
		return err
	}

	client := github.NewClient(cfg.GitHubToken)
	syncer := github.NewSyncer(client, dbClient, stats)

	fmt.Printf("Importing merged PRs for %s since %s...\n", user, since.Format("2006-01-02"))

	result, err := syncer.Sync(ctx, user, since)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	fmt.Printf("Fetched %d merged PRs: %d imported, %d already present\n",
		result.Fetched, result.Imported, result.Skipped)
	if result.Imported > 0 {
		fmt.Println("Run 'worthkeeping embed' to embed the imported entries.")
	}

	return nil
}

// parseSince accepts day-suffixed windows ("30d"), Go durations ("72h") or
// a plain date.
func parseSince(s string) (time.Time, error) {
	if n := len(s); n > 1 && s[n-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil && days > 0 {
			return time.Now().AddDate(0, 0, -days), nil
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return time.Now().Add(-d), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --since value: %s", s)
}

package main

import (
	"context"
	"fmt"
	"io"

	"perfgate/internal/compare"
	"perfgate/internal/history"
	"perfgate/internal/notify"
	"perfgate/internal/report"
	"perfgate/internal/timing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultRepo = "returntocorp/semgrep"

var (
	compareJSON    bool
	compareHistory string
)

// prCommenter is the seam command tests use to avoid real API calls.
type prCommenter interface {
	PostComment(ctx context.Context, req notify.CommentRequest) error
}

var newCommenterFunc = func(ctx context.Context, token, apiURL string) (prCommenter, error) {
	return notify.NewCommenter(ctx, token, apiURL)
}

var postSlackFunc = notify.PostSlackWebhook

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare BASELINE1 BASELINE2 LATEST1 LATEST2 TOKEN [PR_NUMBER]",
		Short: "Compare two benchmark timing runs and gate on regressions",
		Long: `Reads four whitespace-separated timing files (two stability samples per
run), keeps the faster time of each sample pair, and compares latest
against baseline benchmark by benchmark.

A benchmark blocks the run when it is both 20% slower and more than 5
seconds slower than baseline. The run also fails when the mean relative
duration is 6% or more over baseline, even if no single benchmark
blocked. When a pull request number is given and anything is worth
reporting, the report is posted as a PR comment (printed locally first,
so the CI log always has it).`,
		Args: cobra.RangeArgs(5, 6),
		RunE: runCompare,
	}
	bindCompareFlags(cmd.Flags())
	return cmd
}

func bindCompareFlags(fs *pflag.FlagSet) {
	fs.String("repo", defaultRepo, "owner/name slug for the PR comment endpoint")
	fs.String("event-path", "", "CI event payload JSON (default $GITHUB_EVENT_PATH)")
	fs.String("api-url", "", "GitHub API base URL override")
	fs.BoolVar(&compareJSON, "json", false, "also print the report as JSON")
	fs.StringVar(&compareHistory, "history", "", "append the aggregate outcome to this JSON history file")
	fs.String("slack-webhook", "", "mirror the report to this Slack incoming webhook")

	viper.BindPFlag("repo", fs.Lookup("repo"))
	viper.BindPFlag("event_path", fs.Lookup("event-path"))
	viper.BindPFlag("api_url", fs.Lookup("api-url"))
	viper.BindPFlag("notifications.slack.webhook", fs.Lookup("slack-webhook"))
}

func init() {
	rootCmd.AddCommand(newCompareCmd())
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	token := args[4]
	prNumber := ""
	if len(args) == 6 {
		prNumber = args[5]
	}

	baseline, err := loadReduced(out, args[0], args[1])
	if err != nil {
		return err
	}
	latest, err := loadReduced(out, args[2], args[3])
	if err != nil {
		return err
	}

	records, err := compare.Compare(baseline, latest)
	if err != nil {
		return err
	}
	findings := compare.Classify(records)
	agg, err := compare.Fold(records, findings)
	if err != nil {
		return err
	}

	report.Print(out, records, agg)
	if compareJSON {
		if err := report.WriteJSON(out, records, findings, agg); err != nil {
			return err
		}
	}

	verdict := compare.Verdict(agg)

	// The report is printed before any delivery attempt: the CI log
	// must have it even when the network step fails.
	if body := report.Body(findings, agg); body != "" {
		fmt.Fprintf(out, "Sending warnings and errors as a PR comment:\n%s\n", body)

		if prNumber != "" {
			commenter, err := newCommenterFunc(ctx, token, viper.GetString("api_url"))
			if err != nil {
				return err
			}
			req := notify.CommentRequest{
				Repo:      viper.GetString("repo"),
				Number:    prNumber,
				Body:      body,
				EventPath: viper.GetString("event_path"),
			}
			if err := commenter.PostComment(ctx, req); err != nil {
				return err
			}
		}

		if url := viper.GetString("notifications.slack.webhook"); url != "" {
			if err := postSlackFunc(ctx, url, body); err != nil {
				return err
			}
		}
	}

	if compareHistory != "" {
		if err := appendHistory(agg, verdict != nil); err != nil {
			return err
		}
	}

	return verdict
}

func loadReduced(out io.Writer, path1, path2 string) (timing.Sequence, error) {
	fmt.Fprintf(out, "Reading %s\n", path1)
	fmt.Fprintf(out, "Reading %s\n", path2)
	return timing.LoadReduced(path1, path2)
}

func appendHistory(agg compare.Aggregate, failed bool) error {
	store, err := history.NewFileStore(compareHistory)
	if err != nil {
		return err
	}

	// Commit hash is best effort: outside pull requests there is no
	// event payload to read it from.
	commitSHA := ""
	if sha, err := notify.HeadSHA(viper.GetString("event_path")); err == nil {
		commitSHA = sha
	}

	return store.Append(history.NewEntry(agg, commitSHA, failed))
}

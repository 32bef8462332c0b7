package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"datagroom/pkg/pipeline"
)

var (
	batchFormat  string
	batchMaxRows int
	batchMetrics bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Clean many datasets concurrently",
	Long: `Batch expands the given paths (globs allowed), cleans every matched file
on a worker pool, and prints a per-file and aggregate summary. Database
DSNs are not accepted here; use clean for those.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		jobs := make([]pipeline.Job, 0, len(files))
		for _, path := range files {
			job := pipeline.NewJob(path).WithFormat(batchFormat)
			if batchMaxRows > 0 {
				job = job.WithMaxRows(batchMaxRows)
			} else if cfg.MaxRows > 0 {
				job = job.WithMaxRows(cfg.MaxRows)
			}
			jobs = append(jobs, job)
		}

		runner, err := pipeline.NewRunner(cfg, logger)
		if err != nil {
			return err
		}

		batch, err := runner.RunBatch(cmd.Context(), jobs)
		if err != nil {
			return err
		}

		fmt.Printf("Batch complete: %d/%d jobs succeeded (%.1f%%) in %s\n",
			len(batch.SuccessfulJobs), batch.TotalJobs,
			batch.SuccessRate(), batch.Duration.Round(time.Millisecond))
		fmt.Printf("  rows: %d -> %d, %d cleaning actions\n",
			batch.TotalRowsIn, batch.TotalRowsOut, batch.TotalActions)

		failed := make([]string, 0, len(batch.FailedJobs))
		for source := range batch.FailedJobs {
			failed = append(failed, source)
		}
		sort.Strings(failed)
		for _, source := range failed {
			fmt.Printf("  FAILED %s: %v\n", source, batch.FailedJobs[source])
		}

		if batchMetrics {
			fmt.Println(runner.Report())
		}

		if len(failed) > 0 {
			return fmt.Errorf("%d of %d jobs failed", len(failed), batch.TotalJobs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchFormat, "format", "csv", "output format: csv, tsv, json or xlsx")
	batchCmd.Flags().IntVar(&batchMaxRows, "max-rows", 0, "cap on rows loaded per file (0 = unlimited)")
	batchCmd.Flags().BoolVar(&batchMetrics, "metrics", false, "print the worker metrics report after the run")
}

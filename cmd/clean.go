package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"datagroom/pkg/pipeline"
)

var (
	cleanTable   string
	cleanQuery   string
	cleanMaxRows int
	cleanFormat  string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <path-or-dsn>",
	Short: "Clean a single dataset and write the results",
	Long: `Clean loads one dataset from a file (csv, tsv, json, xlsx) or a database
DSN (postgres://, snowflake://), runs the cleaning pipeline over it, and
writes the cleaned dataset, a JSON summary and an HTML report to the
output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := pipeline.NewRunner(cfg, logger)
		if err != nil {
			return err
		}

		job := pipeline.NewJob(args[0]).
			WithTable(cleanTable).
			WithQuery(cleanQuery).
			WithFormat(cleanFormat)
		if cleanMaxRows > 0 {
			job = job.WithMaxRows(cleanMaxRows)
		} else if cfg.MaxRows > 0 {
			job = job.WithMaxRows(cfg.MaxRows)
		}

		result, err := runner.Run(cmd.Context(), job)
		if err != nil {
			return err
		}

		if !result.Success {
			for _, rec := range result.Errors {
				fmt.Println(rec.String())
			}
			return fmt.Errorf("cleaning failed for %s", job.Source)
		}

		fmt.Printf("Cleaned %s: %dx%d -> %dx%d in %s\n",
			result.Source,
			result.RawRows, result.RawColumns,
			result.CleanRows, result.CleanColumns,
			result.Duration.Round(time.Millisecond))
		for _, action := range result.Actions {
			fmt.Printf("  - %s\n", action.Message)
		}
		for _, warning := range result.Warnings {
			fmt.Printf("  ! %s\n", warning)
		}
		fmt.Printf("Wrote %s\n", result.OutputPath)
		fmt.Printf("Wrote %s\n", result.SummaryPath)
		if result.ReportPath != "" {
			fmt.Printf("Wrote %s\n", result.ReportPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&cleanTable, "table", "", "table to read for database sources")
	cleanCmd.Flags().StringVar(&cleanQuery, "query", "", "query overriding --table for database sources")
	cleanCmd.Flags().IntVar(&cleanMaxRows, "max-rows", 0, "cap on rows loaded (0 = unlimited)")
	cleanCmd.Flags().StringVar(&cleanFormat, "format", "csv", "output format: csv, tsv, json or xlsx")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"datagroom/pkg/analyzer"
	"datagroom/pkg/source"
)

var (
	profileTable   string
	profileQuery   string
	profileMaxRows int
	profileJSON    bool
	profileOut     string
)

var profileCmd = &cobra.Command{
	Use:   "profile <path-or-dsn>",
	Short: "Summarize a dataset without cleaning it",
	Long: `Profile loads a dataset and prints a summary of its shape, column types,
missing values, numeric statistics, categorical frequencies and outlier
counts. The dataset is not modified and nothing is written unless
--json-out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := source.Options{
			Table:   profileTable,
			Query:   profileQuery,
			MaxRows: profileMaxRows,
		}
		if opts.MaxRows == 0 {
			opts.MaxRows = cfg.MaxRows
		}

		src, err := source.New(args[0], cfg, opts)
		if err != nil {
			return err
		}
		ds, err := src.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", src.Name(), err)
		}

		profiler, err := analyzer.NewAnalyzer(logger)
		if err != nil {
			return err
		}
		summary := profiler.Analyze(ds)

		if profileJSON || profileOut != "" {
			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode summary: %w", err)
			}
			if profileOut != "" {
				if err := os.WriteFile(profileOut, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", profileOut, err)
				}
				fmt.Printf("Wrote %s\n", profileOut)
				return nil
			}
			fmt.Println(string(data))
			return nil
		}

		printSummary(src.Name(), summary)
		return nil
	},
}

func printSummary(name string, s analyzer.Summary) {
	fmt.Printf("%s: %d rows x %d columns (%s)\n",
		name, s.BasicInfo.Rows, s.BasicInfo.Columns, s.BasicInfo.MemoryUsage)
	fmt.Printf("  numeric: %d  categorical: %d  missing cells: %d\n",
		s.BasicInfo.NumericColumns, s.BasicInfo.CategoricalColumns, s.BasicInfo.TotalMissing)

	for _, col := range s.Columns {
		missing := s.MissingData[col]
		fmt.Printf("  %-24s %-12s missing %d (%.1f%%)",
			col, s.DataTypes[col], missing.Count, missing.Percentage)
		if facts, ok := s.NumericSummary[col]; ok {
			fmt.Printf("  mean %.6g  min %.6g  max %.6g", facts.Mean, facts.Min, facts.Max)
			if outliers, ok := s.OutlierAnalysis[col]; ok && outliers.Count > 0 {
				fmt.Printf("  outliers %d", outliers.Count)
			}
		} else if facts, ok := s.CategoricalSummary[col]; ok {
			fmt.Printf("  unique %d  top %q", facts.UniqueCount, facts.MostFrequent)
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileTable, "table", "", "table to read for database sources")
	profileCmd.Flags().StringVar(&profileQuery, "query", "", "query overriding --table for database sources")
	profileCmd.Flags().IntVar(&profileMaxRows, "max-rows", 0, "cap on rows loaded (0 = unlimited)")
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "print the summary as JSON")
	profileCmd.Flags().StringVar(&profileOut, "json-out", "", "write the JSON summary to a file")
}

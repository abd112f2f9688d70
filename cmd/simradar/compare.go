package main

import (
	"fmt"
	"os"

	"github.com/AobaIwaki123/simradar/internal/similarity"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	var fromFiles bool
	var metricName string

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Score the similarity of two snippets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := args[0], args[1]
			if fromFiles {
				var err error
				if a, err = readSnippet(a); err != nil {
					return err
				}
				if b, err = readSnippet(b); err != nil {
					return err
				}
			}

			if metricName != "" {
				m, err := similarity.ParseMetric(metricName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", similarity.Score(m, a, b))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderScores(similarity.Compare(a, b)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&fromFiles, "file", "f", false, "Treat arguments as file paths")
	cmd.Flags().StringVarP(&metricName, "metric", "m", "", "Print only this metric (tf_cosine, jaccard, levenshtein)")
	return cmd
}

func readSnippet(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read snippet: %w", err)
	}
	return string(data), nil
}

func renderScores(s similarity.Scores) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Score"})
	for _, m := range similarity.Metrics {
		tw.AppendRow(table.Row{string(m), fmt.Sprintf("%.4f", s.Get(m))})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

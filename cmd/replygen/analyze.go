package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/IvanM-GM/replygen"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	a, err := deps.Analyzer.Analyze(deps.Ctx, c.URL, c.Count)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", replygen.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if err := writeJSON(deps.Stdout, a); err != nil {
			return err
		}
	} else {
		printAnalysis(deps.Stdout, a)
	}

	if deps.Reports != nil {
		path, err := deps.Reports.WriteReport(deps.Ctx, a)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing report: %s\n", err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "Report written to %s\n", path)
	}

	return nil
}

func printAnalysis(w io.Writer, a *replygen.Analysis) {
	fmt.Fprintf(w, "Post by %s\n", orUnknown(a.Post.Author))
	fmt.Fprintf(w, "%s\n\n", a.Post.Text)

	for i, c := range a.Comments {
		fmt.Fprintf(w, "%d. %s\n", i+1, c)
	}

	fmt.Fprintf(w, "\nTone: %s  Sentiment: %s  Engagement: %s",
		a.Analysis.Tone, a.Analysis.Sentiment, a.Analysis.EngagementPotential)
	if len(a.Analysis.Topics) > 0 {
		fmt.Fprintf(w, "  Topics: %s", strings.Join(a.Analysis.Topics, ", "))
	}
	fmt.Fprintf(w, "\nProcessing time: %.2fs\n", replygen.RoundSeconds(a.Elapsed))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}

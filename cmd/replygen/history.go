package main

import (
	"fmt"

	"github.com/IvanM-GM/replygen"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := replygen.AnalysisFilter{Limit: c.Limit}
	if c.Author != "" {
		filter.Author = &c.Author
	}

	recs, err := deps.Analyses.FindAnalyses(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", replygen.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No analyses recorded. Use 'replygen analyze' with --db to record one.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s  %d comments\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.ID,
			orUnknown(r.Author),
			r.PostURL,
			r.Analysis.Sentiment,
			len(r.Comments),
		)
	}
	return nil
}

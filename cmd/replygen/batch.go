package main

import (
	"fmt"

	"github.com/IvanM-GM/replygen"
	"golang.org/x/sync/errgroup"
)

// batchResult is one entry of the batch output.
type batchResult struct {
	URL      string             `json:"url"`
	Status   string             `json:"status"`
	Analysis *replygen.Analysis `json:"analysis,omitempty"`
	Code     string             `json:"code,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Run executes the batch command. Every URL is analyzed independently;
// one failure does not cancel the others.
func (c *BatchCmd) Run(deps *Dependencies) error {
	results := make([]batchResult, len(c.URLs))

	g := new(errgroup.Group)
	g.SetLimit(max(c.Concurrency, 1))
	for i, url := range c.URLs {
		g.Go(func() error {
			a, err := deps.Analyzer.Analyze(deps.Ctx, url, c.Count)
			if err != nil {
				results[i] = batchResult{
					URL:    url,
					Status: "error",
					Code:   replygen.ErrorCode(err),
					Error:  replygen.ErrorMessage(err),
				}
				return nil
			}
			results[i] = batchResult{URL: url, Status: "success", Analysis: a}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Status == "error" {
			failed++
		}
	}

	if c.JSON {
		if err := writeJSON(deps.Stdout, results); err != nil {
			return err
		}
	} else {
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "== %s ==\n", r.URL)
			if r.Analysis == nil {
				fmt.Fprintf(deps.Stdout, "error: %s\n", r.Error)
				continue
			}
			printAnalysis(deps.Stdout, r.Analysis)
		}
	}

	if failed > 0 {
		fmt.Fprintf(deps.Stderr, "error: %d of %d analyses failed\n", failed, len(results))
		return fmt.Errorf("%d of %d analyses failed", failed, len(results))
	}
	return nil
}

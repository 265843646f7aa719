package main

import (
	"fmt"
	"strings"

	"github.com/IvanM-GM/replygen"
)

// Run executes the sentiment command.
func (c *SentimentCmd) Run(deps *Dependencies) error {
	if strings.TrimSpace(c.Text) == "" {
		fmt.Fprintln(deps.Stderr, "error: text required")
		return replygen.Errorf(replygen.EINVALID, "text required")
	}

	r := deps.Analyzer.Sentiment(deps.Ctx, c.Text)

	fmt.Fprintf(deps.Stdout, "Sentiment:  %s\n", r.Sentiment)
	fmt.Fprintf(deps.Stdout, "Confidence: %.2f\n", r.Confidence)
	fmt.Fprintf(deps.Stdout, "Tone:       %s\n", r.Tone)
	if len(r.Topics) > 0 {
		fmt.Fprintf(deps.Stdout, "Topics:     %s\n", strings.Join(r.Topics, ", "))
	}
	return nil
}

package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/IvanM-GM/replygen"
)

var postIDRe = regexp.MustCompile(`^\d+$`)

// Run executes the post command.
func (c *PostCmd) Run(deps *Dependencies) error {
	url := strings.TrimSpace(c.Target)
	if postIDRe.MatchString(url) {
		url = replygen.PermalinkForID(url)
	}

	post, err := deps.Analyzer.Post(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", replygen.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, post)
	}

	fmt.Fprintf(deps.Stdout, "URL:    %s\n", post.URL)
	fmt.Fprintf(deps.Stdout, "Author: %s\n", orUnknown(post.Author))
	fmt.Fprintf(deps.Stdout, "Text:   %s\n", post.Text)
	for _, img := range post.Images {
		fmt.Fprintf(deps.Stdout, "Image:  %s\n", img)
	}
	if post.VideoURL != nil {
		fmt.Fprintf(deps.Stdout, "Video:  %s\n", *post.VideoURL)
	}
	if line := engagementLine(post.Engagement()); line != "" {
		fmt.Fprintf(deps.Stdout, "Engagement: %s\n", line)
	}
	return nil
}

func engagementLine(e replygen.Engagement) string {
	var parts []string
	if e.Likes != nil {
		parts = append(parts, fmt.Sprintf("%d likes", *e.Likes))
	}
	if e.Retweets != nil {
		parts = append(parts, fmt.Sprintf("%d retweets", *e.Retweets))
	}
	if e.Replies != nil {
		parts = append(parts, fmt.Sprintf("%d replies", *e.Replies))
	}
	return strings.Join(parts, ", ")
}

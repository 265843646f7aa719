// Package fs writes analysis reports to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanM-GM/replygen"
	"gopkg.in/yaml.v3"
)

// ReportPath returns the relative path of the report for post.
// Example: https://twitter.com/alice/status/123 → alice/123.md
func ReportPath(post *replygen.Post) (string, error) {
	if post == nil {
		return "", replygen.Errorf(replygen.EINVALID, "report requires a post")
	}
	id, ok := replygen.PostIDFromURL(post.URL)
	if !ok {
		return "", replygen.Errorf(replygen.EINVALIDURL, "no post ID in %s", post.URL)
	}

	author := sanitize(strings.TrimPrefix(post.Author, "@"))
	if author == "" {
		author = "unknown"
	}
	return filepath.Join(author, id+".md"), nil
}

// sanitize keeps the characters allowed in a handle.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return -1
	}, s)
}

// frontmatter is the YAML header of a report.
type frontmatter struct {
	Source         string   `yaml:"source"`
	Author         string   `yaml:"author"`
	Tone           string   `yaml:"tone"`
	Sentiment      string   `yaml:"sentiment"`
	Engagement     string   `yaml:"engagement"`
	Topics         []string `yaml:"topics,omitempty,flow"`
	Generated      string   `yaml:"generated"`
	ProcessingTime float64  `yaml:"processing_time"`
}

// FormatReport renders a as markdown with YAML frontmatter.
func FormatReport(a *replygen.Analysis) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:         a.Post.URL,
		Author:         a.Post.Author,
		Tone:           a.Analysis.Tone,
		Sentiment:      a.Analysis.Sentiment,
		Engagement:     a.Analysis.EngagementPotential,
		Topics:         a.Analysis.Topics,
		Generated:      a.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		ProcessingTime: replygen.RoundSeconds(a.Elapsed),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")

	b.WriteString("# Post by ")
	b.WriteString(a.Post.Author)
	b.WriteString("\n\n")
	for _, line := range strings.Split(a.Post.Text, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, img := range a.Post.Images {
		fmt.Fprintf(&b, "\n![image](%s)", img)
	}
	if len(a.Post.Images) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n## Comments\n\n")
	for i, c := range a.Comments {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	return b.String(), nil
}

// Ensure Writer implements replygen.ReportWriter at compile time.
var _ replygen.ReportWriter = (*Writer)(nil)

// Writer writes analysis reports as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteReport writes a to disk and returns the file path.
// The file is written to a temporary name first and renamed into place,
// so readers never see a partial report.
func (w *Writer) WriteReport(ctx context.Context, a *replygen.Analysis) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	relPath, err := ReportPath(a.Post)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	content, err := FormatReport(a)
	if err != nil {
		return "", err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return fullPath, nil
}

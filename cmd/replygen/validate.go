package main

import (
	"fmt"

	"github.com/IvanM-GM/replygen"
)

// Run executes the validate command. An invalid URL is reported as an error
// so the exit status can be used in scripts.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	id, ok := replygen.PostIDFromURL(c.URL)
	if !ok || !replygen.ValidatePostURL(c.URL) {
		fmt.Fprintln(deps.Stdout, "invalid")
		return replygen.Errorf(replygen.EINVALIDURL, "Invalid Twitter/X URL")
	}

	fmt.Fprintf(deps.Stdout, "valid (post %s)\n", id)
	return nil
}

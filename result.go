// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

// Result describes what a run produced
type Result struct {
	// Slug is the identifier derived from the target directory basename
	Slug string
	// DisplayName is the human readable name derived from the slug
	DisplayName string
	// Target is the absolute path of the target directory
	Target string
	// CopiedFiles holds the slash separated source relative path of every copied file
	CopiedFiles []string
	// Rewrites holds the outcome of each target file rewrite
	Rewrites []Rewrite
	// PostErrors holds failures from post-processing commands
	PostErrors []string
	// Warnings holds every non fatal problem encountered during the run
	Warnings []string
}

// Failed reports if any non fatal step recorded an error, target files that
// were simply absent count as warnings and not as failures
func (r *Result) Failed() bool {
	for _, rewrite := range r.Rewrites {
		if rewrite.Err != nil {
			return true
		}
	}

	return len(r.PostErrors) > 0
}

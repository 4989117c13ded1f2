// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RewriteStatus describes the outcome of rewriting a single target file
type RewriteStatus string

const (
	// RewriteDone indicates placeholders were replaced and the file written back
	RewriteDone RewriteStatus = "rewritten"
	// RewriteNoop indicates the file held no placeholders and was left alone
	RewriteNoop RewriteStatus = "unchanged"
	// RewriteMissing indicates the file was not present after the copy
	RewriteMissing RewriteStatus = "missing"
	// RewriteFailed indicates reading or writing the file failed
	RewriteFailed RewriteStatus = "failed"
)

// Rewrite records the outcome of rewriting one target file
type Rewrite struct {
	File         string
	Status       RewriteStatus
	Replacements int
	Err          error
}

// rewriteTargets replaces placeholder tokens in each configured target file
// below the target directory. A missing file or a failed substitution is
// recorded on the result as a warning, it never aborts the run.
func (s *Stamp) rewriteTargets(result *Result) {
	for _, name := range s.cfg.TargetFiles {
		result.Rewrites = append(result.Rewrites, s.rewriteFile(result, name))
	}
}

// rewriteFile performs the generic slug substitution and, in the app
// manifest, a second substitution of the template bundle identifier. The
// bundle identifier token is the prefix joined with the hyphen stripped slug
// placeholder, so the generic pass leaves it intact and the passes compose.
func (s *Stamp) rewriteFile(result *Result, name string) Rewrite {
	path := filepath.Join(s.cfg.TargetDirectory, filepath.FromSlash(name))

	nfo, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		s.infof("Skipping %s, not present in target", name)
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s not found in target, skipped", name))

		return Rewrite{File: name, Status: RewriteMissing}

	case err != nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not rewrite %s: %v", name, err))

		return Rewrite{File: name, Status: RewriteFailed, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not rewrite %s: %v", name, err))

		return Rewrite{File: name, Status: RewriteFailed, Err: err}
	}

	content, generic := replaceAll(string(data), s.cfg.SlugPlaceholder, s.slug)

	var bundle int
	if name == s.cfg.AppManifest {
		token := s.cfg.BundleIDPrefix + strings.ReplaceAll(s.cfg.SlugPlaceholder, "-", "")
		content, bundle = replaceAll(content, token, s.cfg.BundleIDPrefix+s.slug)
	}

	if generic+bundle == 0 {
		s.debugf("No placeholders found in %s", name)

		return Rewrite{File: name, Status: RewriteNoop}
	}

	err = os.WriteFile(path, []byte(content), nfo.Mode().Perm())
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not rewrite %s: %v", name, err))

		return Rewrite{File: name, Status: RewriteFailed, Err: err}
	}

	s.infof("Rewrote %s with %d replacements", name, generic+bundle)

	return Rewrite{File: name, Status: RewriteDone, Replacements: generic + bundle}
}

// replaceAll substitutes every literal occurrence of token in content and
// reports how many were replaced
func replaceAll(content string, token string, replacement string) (string, int) {
	n := strings.Count(content, token)
	if n == 0 {
		return content, 0
	}

	return strings.ReplaceAll(content, token, replacement), n
}

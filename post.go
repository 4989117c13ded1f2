// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

// postProcess runs the configured post-processing commands over every file
// the run produced, the copied files plus any pre-existing target file the
// rewrite step changed. Command failures are recorded on the result and the
// remaining files are still processed.
func (s *Stamp) postProcess(result *Result) {
	if len(s.cfg.Post) == 0 {
		return
	}

	seen := map[string]bool{}
	var files []string

	for _, f := range result.CopiedFiles {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	for _, rewrite := range result.Rewrites {
		if rewrite.Status == RewriteDone && !seen[rewrite.File] {
			seen[rewrite.File] = true
			files = append(files, rewrite.File)
		}
	}

	for _, f := range files {
		err := s.postFile(filepath.Join(s.cfg.TargetDirectory, filepath.FromSlash(f)))
		if err != nil {
			result.PostErrors = append(result.PostErrors, err.Error())
		}
	}
}

// postFile runs every post-processing command whose glob matches the file
// base name. The command string is split using shell quoting rules, any "{}"
// in an argument is replaced with the file path and without a placeholder the
// path becomes the final argument.
func (s *Stamp) postFile(f string) error {
	for _, entry := range s.cfg.Post {
		for glob, command := range entry {
			matched, err := filepath.Match(glob, filepath.Base(f))
			if err != nil {
				return err
			}

			if !matched {
				continue
			}

			parts, err := shellquote.Split(command)
			if err != nil {
				return err
			}
			if len(parts) == 0 {
				return fmt.Errorf("empty post-processing command for %q", glob)
			}

			cmd := parts[0]
			var args []string
			hasPlaceholder := false
			for _, part := range parts[1:] {
				if strings.Contains(part, "{}") {
					args = append(args, strings.ReplaceAll(part, "{}", f))
					hasPlaceholder = true
				} else {
					args = append(args, part)
				}
			}

			if !hasPlaceholder {
				args = append(args, f)
			}

			s.infof("Post processing using: %s %s", cmd, strings.Join(args, " "))

			out, err := exec.Command(cmd, args...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("post processing %s failed: %w, output: %q", f, err, out)
			}
		}
	}

	return nil
}

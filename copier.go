// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"io/fs"
	"os"
	"path/filepath"
)

// copyTree copies the template tree below the source directory into the
// target directory, skipping excluded entries. Directories are created with
// mode 0755, regular files keep the mode and modification time of their
// source. Anything that is neither a directory nor a regular file is skipped.
//
// The walk never descends into the target itself so a target nested inside
// the template does not copy into itself.
func (s *Stamp) copyTree(result *Result) error {
	source := s.cfg.SourceDirectory
	target := s.cfg.TargetDirectory

	return filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == source {
			return nil
		}

		if d.IsDir() && (path == target || path == s.planSkip) {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}

		if s.excluded(rel, d.Name()) {
			s.debugf("Skipping excluded entry %s", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		out := filepath.Join(target, rel)

		switch {
		case d.IsDir():
			err = os.MkdirAll(out, 0755)
			if err != nil {
				return err
			}

		case d.Type().IsRegular():
			err = s.copyFile(path, out)
			if err != nil {
				return err
			}

			s.debugf("Copied %s", rel)
			result.CopiedFiles = append(result.CopiedFiles, filepath.ToSlash(rel))

		default:
			s.debugf("Skipping %s, not a regular file", rel)
		}

		return nil
	})
}

// excluded reports if an entry matches any exclude pattern. Patterns are
// matched against the entry name and against the slash separated path
// relative to the source, so "node_modules" excludes the directory at any
// depth while "docs/internal" excludes only that path.
func (s *Stamp) excluded(rel string, name string) bool {
	relSlash := filepath.ToSlash(rel)

	for _, pattern := range s.cfg.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, relSlash); ok {
			return true
		}
	}

	return false
}

func (s *Stamp) copyFile(src string, dst string) error {
	nfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	err = os.WriteFile(dst, data, nfo.Mode().Perm())
	if err != nil {
		return err
	}

	// WriteFile applies the umask and leaves the mode of existing files alone
	err = os.Chmod(dst, nfo.Mode().Perm())
	if err != nil {
		return err
	}

	return os.Chtimes(dst, nfo.ModTime(), nfo.ModTime())
}

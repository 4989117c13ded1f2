// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package stamp creates new projects from mobile app template directories.
//
// A template is an ordinary project tree, typically an Expo application shell,
// that carries placeholder tokens in its manifest files. Stamp copies the tree
// into a destination directory, derives a slug and a display name from the
// destination basename and rewrites the placeholder tokens with the derived
// slug. Every substitution is a literal string replacement, templates are
// never parsed or rendered.
package stamp

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Defaults used when the equivalent Config fields are left unset. They match
// the layout of the lenmie Expo template this tool grew out of.
var (
	// DefaultExclude holds the entries that are never copied into the target
	DefaultExclude = []string{".git", ".gitignore", "android", "ios", "node_modules", "stamp.yaml", "stamp", "README.md"}
	// DefaultTargetFiles holds the files that undergo placeholder rewriting
	DefaultTargetFiles = []string{"app.json", "package.json"}
)

const (
	// DefaultAppManifest is the target file that also receives the bundle identifier substitution
	DefaultAppManifest = "app.json"
	// DefaultSlugPlaceholder is the literal token the template uses where the project slug belongs
	DefaultSlugPlaceholder = "lenmie-expo-template"
	// DefaultBundleIDPrefix is the reverse domain prefix of the template bundle identifier
	DefaultBundleIDPrefix = "com.javiso."
)

// Config configures a scaffolding operation
type Config struct {
	// TargetDirectory is where the template copy and the rewritten files are placed
	TargetDirectory string `yaml:"target"`
	// SourceDirectory is the template root to copy from, defaults to the current directory
	SourceDirectory string `yaml:"source_directory"`
	// Exclude holds glob patterns for entries that are never copied, matched
	// against both the entry name and its path relative to the source
	Exclude []string `yaml:"exclude"`
	// TargetFiles are the files below the target that undergo placeholder rewriting
	TargetFiles []string `yaml:"target_files"`
	// AppManifest names the target file that additionally receives the bundle identifier substitution
	AppManifest string `yaml:"app_manifest"`
	// SlugPlaceholder is the literal token replaced by the derived slug
	SlugPlaceholder string `yaml:"slug_placeholder"`
	// BundleIDPrefix is the reverse domain prefix of the template bundle identifier
	BundleIDPrefix string `yaml:"bundle_id_prefix"`
	// Post configures post-processing of produced files using filepath globs
	Post []map[string]string `yaml:"post"`
	// Force reuses an existing target directory without asking for confirmation
	Force bool `yaml:"-"`
}

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
}

// ErrAborted is returned by Run when the operator declines to reuse an
// existing target directory. No files are copied or changed in that case.
var ErrAborted = errors.New("aborted by operator")

type Stamp struct {
	cfg        *Config
	log        Logger
	surveyor   surveyor
	isTerminal func() bool
	slug       string
	name       string

	// set while Plan runs so the walk also skips the real target directory
	planSkip string
}

// New creates a new stamp instance
func New(cfg Config, opts ...option) (*Stamp, error) {
	err := validateConfig(&cfg)
	if err != nil {
		return nil, err
	}

	s := &Stamp{
		cfg:        &cfg,
		surveyor:   &defaultSurveyor{},
		isTerminal: isTerminal,
		slug:       Slugify(filepath.Base(cfg.TargetDirectory)),
	}
	s.name = DisplayName(s.slug)

	for _, o := range opts {
		o(s)
	}

	return s, nil
}

func validateConfig(cfg *Config) error {
	if cfg.TargetDirectory == "" {
		return fmt.Errorf("target is required")
	}

	var err error
	cfg.TargetDirectory, err = filepath.Abs(cfg.TargetDirectory)
	if err != nil {
		return fmt.Errorf("invalid target %s: %v", cfg.TargetDirectory, err)
	}

	if Slugify(filepath.Base(cfg.TargetDirectory)) == "" {
		return fmt.Errorf("cannot derive a slug from %q", filepath.Base(cfg.TargetDirectory))
	}

	if cfg.SourceDirectory == "" {
		cfg.SourceDirectory = "."
	}
	cfg.SourceDirectory, err = filepath.Abs(cfg.SourceDirectory)
	if err != nil {
		return fmt.Errorf("invalid source %s: %v", cfg.SourceDirectory, err)
	}

	nfo, err := os.Stat(cfg.SourceDirectory)
	if err != nil {
		return fmt.Errorf("cannot read source directory: %w", err)
	}
	if !nfo.IsDir() {
		return fmt.Errorf("source %s is not a directory", cfg.SourceDirectory)
	}

	if cfg.SourceDirectory == cfg.TargetDirectory {
		return fmt.Errorf("target and source are the same directory")
	}
	if containedInDir(cfg.SourceDirectory, cfg.TargetDirectory) {
		return fmt.Errorf("target %s contains the template source", cfg.TargetDirectory)
	}

	if len(cfg.Exclude) == 0 {
		cfg.Exclude = append([]string{}, DefaultExclude...)
	}
	for _, pattern := range cfg.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %v", pattern, err)
		}
	}
	if len(cfg.TargetFiles) == 0 {
		cfg.TargetFiles = append([]string{}, DefaultTargetFiles...)
	}
	for _, name := range cfg.TargetFiles {
		out := filepath.Join(cfg.TargetDirectory, filepath.FromSlash(name))
		if !containedInDir(out, cfg.TargetDirectory) {
			return fmt.Errorf("target file %s is not in target directory %s", name, cfg.TargetDirectory)
		}
	}
	if cfg.AppManifest == "" {
		cfg.AppManifest = DefaultAppManifest
	}
	if cfg.SlugPlaceholder == "" {
		cfg.SlugPlaceholder = DefaultSlugPlaceholder
	}
	if cfg.BundleIDPrefix == "" {
		cfg.BundleIDPrefix = DefaultBundleIDPrefix
	}

	return nil
}

// Logger configures a logger to use, no logging is done without this
func (s *Stamp) Logger(log Logger) {
	s.log = log
}

// Slug returns the identifier derived from the target directory basename.
func (s *Stamp) Slug() string {
	return s.slug
}

// DisplayName returns the human readable project name derived from the slug.
func (s *Stamp) DisplayName() string {
	return s.name
}

func (s *Stamp) debugf(format string, v ...any) {
	if s.log != nil {
		s.log.Debugf(format, v...)
	}
}

func (s *Stamp) infof(format string, v ...any) {
	if s.log != nil {
		s.log.Infof(format, v...)
	}
}

// Run executes the scaffolding pipeline: resolve the target directory, copy
// the template tree into it, rewrite the placeholder tokens in the target
// files and post-process the produced files.
//
// The copy step is fatal on error and runs to completion before any rewrite
// so that rewriting never operates on a partially copied tree. Rewrite and
// post-processing failures are recorded on the Result instead, callers that
// care about them should consult Result.Failed.
func (s *Stamp) Run() (*Result, error) {
	result := &Result{
		Slug:        s.slug,
		DisplayName: s.name,
		Target:      s.cfg.TargetDirectory,
	}

	err := s.resolveTarget()
	if err != nil {
		return nil, err
	}

	err = s.copyTree(result)
	if err != nil {
		return nil, fmt.Errorf("copying template failed: %w", err)
	}

	s.rewriteTargets(result)
	s.postProcess(result)

	return result, nil
}

// resolveTarget ensures the target directory exists. A pre-existing directory
// needs operator confirmation unless Force is set, anything but an explicit
// yes aborts with ErrAborted before any side effect.
func (s *Stamp) resolveTarget() error {
	nfo, err := os.Stat(s.cfg.TargetDirectory)
	switch {
	case err == nil:
		if !nfo.IsDir() {
			return fmt.Errorf("target %s exists and is not a directory", s.cfg.TargetDirectory)
		}

		if s.cfg.Force {
			s.debugf("Reusing existing target %s without confirmation", s.cfg.TargetDirectory)
			return nil
		}

		if !s.isTerminal() {
			return fmt.Errorf("target %s exists and confirming needs a terminal, set Force to continue", s.cfg.TargetDirectory)
		}

		ok, err := s.confirm(fmt.Sprintf("Directory %s exists, continue into it", s.cfg.TargetDirectory))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}

		return nil

	case os.IsNotExist(err):
		err = os.MkdirAll(s.cfg.TargetDirectory, 0755)
		if err != nil {
			return fmt.Errorf("cannot create target %s: %w", s.cfg.TargetDirectory, err)
		}

		s.debugf("Created target directory %s", s.cfg.TargetDirectory)

		return nil

	default:
		return err
	}
}

// FileAction represents the type of change a file would undergo during a run
type FileAction string

const (
	FileActionAdd    FileAction = "add"
	FileActionUpdate FileAction = "update"
	FileActionEqual  FileAction = "equal"
)

// PlannedFile represents a file and the action a run would take on it
type PlannedFile struct {
	Path   string
	Action FileAction
}

// Plan performs a full run into a temporary directory and compares the result
// against the real target directory. It returns the files a run would place,
// each with its action (add, update, equal), without modifying the real
// target and without prompting. Files already below the target that the
// template does not provide are left alone by Run and are not reported.
func (s *Stamp) Plan() ([]PlannedFile, error) {
	origTarget := s.cfg.TargetDirectory
	origForce := s.cfg.Force

	tmpBase, err := os.MkdirTemp("", "stamp-plan-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpBase)

	tmpTarget := filepath.Join(tmpBase, "target")
	s.cfg.TargetDirectory = tmpTarget
	s.cfg.Force = true
	s.planSkip = origTarget

	_, runErr := s.Run()

	s.cfg.TargetDirectory = origTarget
	s.cfg.Force = origForce
	s.planSkip = ""

	if runErr != nil {
		return nil, runErr
	}

	var result []PlannedFile
	err = filepath.WalkDir(tmpTarget, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(tmpTarget, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		realPath := filepath.Join(origTarget, filepath.FromSlash(rel))
		_, statErr := os.Stat(realPath)
		switch {
		case os.IsNotExist(statErr):
			result = append(result, PlannedFile{Path: rel, Action: FileActionAdd})
		case statErr != nil:
			return statErr
		default:
			tmpHash, err := sha256File(path)
			if err != nil {
				return err
			}
			realHash, err := sha256File(realPath)
			if err != nil {
				return err
			}
			if tmpHash == realHash {
				result = append(result, PlannedFile{Path: rel, Action: FileActionEqual})
			} else {
				result = append(result, PlannedFile{Path: rel, Action: FileActionUpdate})
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result, nil
}

func containedInDir(path string, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

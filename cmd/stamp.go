// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/choria-io/fisk"
	"github.com/javiso/stamp"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kballard/go-shellquote"
)

var (
	target     string
	source     string
	configFile string
	name       string
	force      bool
	verbose    bool
	noColor    bool
	post       map[string]string
	version    string
)

func main() {
	post = map[string]string{}

	app := fisk.New("stamp", "Creates projects from mobile app templates")
	app.Version(version)

	app.Help = `
Copies a template project tree into a new directory, derives a slug and a
display name from the directory basename and rewrites the placeholder tokens
in the app manifest and package file.
`

	app.Flag("verbose", "Logs progress while running").Short('v').BoolVar(&verbose)
	app.Flag("no-color", "Disables color output").BoolVar(&noColor)

	create := app.Command("new", "Creates a project from a template").Default().Action(newAction)
	create.Arg("target", "The directory to create the project in").Required().StringVar(&target)
	create.Flag("source", "The template directory to copy from").PlaceHolder("DIR").ExistingDirVar(&source)
	create.Flag("config", "Reads settings from a template manifest").PlaceHolder("FILE").ExistingFileVar(&configFile)
	create.Flag("force", "Reuses an existing target directory without confirmation").BoolVar(&force)
	create.Flag("post", "Post processing steps").PlaceHolder("PATTERN=TOOL").StringMapVar(&post)

	plan := app.Command("plan", "Shows what a run would change without writing").Action(planAction)
	plan.Arg("target", "The directory the project would be created in").Required().StringVar(&target)
	plan.Flag("source", "The template directory to copy from").PlaceHolder("DIR").ExistingDirVar(&source)
	plan.Flag("config", "Reads settings from a template manifest").PlaceHolder("FILE").ExistingFileVar(&configFile)

	slug := app.Command("slug", "Shows the identifiers a directory name derives to").Action(slugAction)
	slug.Arg("name", "The name to derive identifiers from").Required().StringVar(&name)

	app.MustParseWithUsage(os.Args[1:])
}

// loadConfig builds the configuration from an explicit manifest, a
// stamp.yaml found in the template directory or flag values only. Flags
// override what a manifest sets.
func loadConfig() (*stamp.Config, error) {
	var cfg *stamp.Config
	var err error

	switch {
	case configFile != "":
		cfg, err = stamp.LoadConfig(configFile)

	default:
		dir := source
		if dir == "" {
			dir = "."
		}

		manifest := filepath.Join(dir, stamp.DefaultConfigFile)
		if _, serr := os.Stat(manifest); serr == nil {
			cfg, err = stamp.LoadConfig(manifest)
		} else {
			cfg = &stamp.Config{}
		}
	}
	if err != nil {
		return nil, err
	}

	if source != "" {
		cfg.SourceDirectory = source
	}

	return cfg, nil
}

func newAction(_ *fisk.ParseContext) error {
	if noColor {
		text.DisableColors()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg.TargetDirectory = target
	cfg.Force = force
	for k, v := range post {
		cfg.Post = append(cfg.Post, map[string]string{k: v})
	}

	s, err := stamp.New(*cfg)
	if err != nil {
		return err
	}

	if verbose {
		s.Logger(&consoleLogger{})
	}

	result, err := s.Run()
	if err != nil {
		if errors.Is(err, stamp.ErrAborted) {
			return fmt.Errorf("aborted, %s was left untouched", target)
		}

		return err
	}

	report(result)

	if result.Failed() {
		return fmt.Errorf("completed with failures")
	}

	return nil
}

func planAction(_ *fisk.ParseContext) error {
	if noColor {
		text.DisableColors()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.TargetDirectory = target

	s, err := stamp.New(*cfg)
	if err != nil {
		return err
	}

	if verbose {
		s.Logger(&consoleLogger{})
	}

	files, err := s.Plan()
	if err != nil {
		return err
	}

	for _, f := range files {
		action := string(f.Action)
		switch f.Action {
		case stamp.FileActionAdd:
			action = text.Colors{text.FgGreen}.Sprint(f.Action)
		case stamp.FileActionUpdate:
			action = text.Colors{text.FgYellow}.Sprint(f.Action)
		}

		fmt.Printf("%s: %s\n", action, filepath.Join(target, f.Path))
	}

	return nil
}

func slugAction(_ *fisk.ParseContext) error {
	derived := stamp.Slugify(name)
	if derived == "" {
		return fmt.Errorf("cannot derive a slug from %q", name)
	}

	fmt.Printf("        Slug: %s\n", derived)
	fmt.Printf("Display Name: %s\n", stamp.DisplayName(derived))

	return nil
}

func report(result *stamp.Result) {
	fmt.Printf("Created %s in %s\n\n", result.DisplayName, result.Target)
	fmt.Printf("         Slug: %s\n", result.Slug)
	fmt.Printf(" Display Name: %s\n", result.DisplayName)
	fmt.Printf(" Copied Files: %d\n\n", len(result.CopiedFiles))

	for _, rewrite := range result.Rewrites {
		switch rewrite.Status {
		case stamp.RewriteDone:
			fmt.Printf("%s: %s (%d replacements)\n", text.Colors{text.FgGreen}.Sprint(rewrite.Status), rewrite.File, rewrite.Replacements)
		case stamp.RewriteFailed:
			fmt.Printf("%s: %s (%v)\n", text.Colors{text.FgRed}.Sprint(rewrite.Status), rewrite.File, rewrite.Err)
		default:
			fmt.Printf("%s: %s\n", rewrite.Status, rewrite.File)
		}
	}

	for _, warning := range result.Warnings {
		fmt.Printf("%s: %s\n", text.Colors{text.FgYellow}.Sprint("warning"), warning)
	}
	for _, failure := range result.PostErrors {
		fmt.Printf("%s: %s\n", text.Colors{text.FgRed}.Sprint("post error"), failure)
	}

	if result.Failed() {
		fmt.Println()
		fmt.Println(text.Colors{text.FgRed}.Sprint("Completed with failures"))

		return
	}

	fmt.Println()
	fmt.Println(text.Colors{text.FgGreen}.Sprint("Project created successfully!"))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", shellquote.Join(result.Target))
	fmt.Println("  npm install")
	fmt.Println("  npm start")
}

type consoleLogger struct{}

func (l *consoleLogger) Debugf(format string, v ...any) {
	fmt.Printf(format+"\n", v...)
}

func (l *consoleLogger) Infof(format string, v ...any) {
	fmt.Printf(format+"\n", v...)
}

// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	terminal "golang.org/x/term"
)

// surveyor abstracts the survey library for testability.
type surveyor interface {
	AskOne(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

type defaultSurveyor struct{}

func (d *defaultSurveyor) AskOne(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(p, response, opts...)
}

type option func(*Stamp)

func withSurveyor(sv surveyor) option {
	return func(s *Stamp) {
		s.surveyor = sv
	}
}

func withIsTerminal(f func() bool) option {
	return func(s *Stamp) {
		s.isTerminal = f
	}
}

// confirm asks the operator a yes/no question, anything except an explicit
// yes answers false
func (s *Stamp) confirm(prompt string) (bool, error) {
	ans := false

	err := s.surveyor.AskOne(&survey.Confirm{
		Message: prompt,
		Default: false,
	}, &ans)

	return ans, err
}

func isTerminal() bool {
	return terminal.IsTerminal(int(os.Stdin.Fd())) && terminal.IsTerminal(int(os.Stdout.Fd()))
}

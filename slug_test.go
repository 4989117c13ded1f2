// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Slugify", func() {
	DescribeTable("Derivation",
		func(name string, expected string) {
			Expect(Slugify(name)).To(Equal(expected))
		},
		Entry("already a slug", "new-awesome-app", "new-awesome-app"),
		Entry("mixed case with punctuation", "My_Cool App!!", "my-cool-app"),
		Entry("upper case", "TACO", "taco"),
		Entry("digits", "app2go", "app2go"),
		Entry("runs of separators collapse", "my...cool___app", "my-cool-app"),
		Entry("leading and trailing junk", "--taco app--", "taco-app"),
		Entry("unicode characters", "café app", "caf-app"),
		Entry("nothing usable", "___", ""),
		Entry("empty input", "", ""),
	)

	It("Should be idempotent on its own output", func() {
		for _, name := range []string{"new-awesome-app", "My_Cool App!!", "--taco app--", "app2go"} {
			slug := Slugify(name)
			Expect(Slugify(slug)).To(Equal(slug))
		}
	})

	It("Should never produce leading or trailing hyphens", func() {
		for _, name := range []string{"!start", "end?", "!!both!!", "-a-"} {
			slug := Slugify(name)
			Expect(strings.HasPrefix(slug, "-")).To(BeFalse())
			Expect(strings.HasSuffix(slug, "-")).To(BeFalse())
		}
	})
})

var _ = Describe("DisplayName", func() {
	DescribeTable("Derivation",
		func(slug string, expected string) {
			Expect(DisplayName(slug)).To(Equal(expected))
		},
		Entry("multiple words", "my-cool-app", "My Cool App"),
		Entry("single word", "taco", "Taco"),
		Entry("digit led word", "2fast-2furious", "2fast 2furious"),
		Entry("empty slug", "", ""),
	)

	It("Should contain no hyphens", func() {
		Expect(DisplayName(Slugify("My_Cool App!!"))).ToNot(ContainSubstring("-"))
	})
})

// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"regexp"
	"strings"
)

var notSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a project slug from a directory name. The name is lower
// cased, every run of characters outside a-z and 0-9 collapses into a single
// hyphen and leading or trailing hyphens are removed.
//
// A name without any usable characters yields the empty string, callers have
// to treat that as invalid.
func Slugify(name string) string {
	slug := notSlug.ReplaceAllString(strings.ToLower(name), "-")

	return strings.Trim(slug, "-")
}

// DisplayName derives a human readable name from a slug by capitalising each
// hyphen separated word and joining them with spaces, "my-cool-app" becomes
// "My Cool App".
func DisplayName(slug string) string {
	var words []string

	for _, word := range strings.Split(slug, "-") {
		if word == "" {
			continue
		}
		words = append(words, strings.ToUpper(word[:1])+word[1:])
	}

	return strings.Join(words, " ")
}

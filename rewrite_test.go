// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("replaceAll", func() {
	DescribeTable("Substitution",
		func(content string, token string, replacement string, expected string, count int) {
			result, n := replaceAll(content, token, replacement)
			Expect(result).To(Equal(expected))
			Expect(n).To(Equal(count))
		},
		Entry("no occurrences", "hello world", "taco", "burrito", "hello world", 0),
		Entry("single occurrence", `"slug": "old"`, "old", "new", `"slug": "new"`, 1),
		Entry("multiple occurrences", "a old b old c", "old", "new", "a new b new c", 2),
		Entry("overlapping content", "aaa", "aa", "b", "ba", 1),
		Entry("replacement containing the token", "x", "x", "xx", "xx", 1),
	)
})

var _ = Describe("rewriteTargets", func() {
	var source, targetDir string

	BeforeEach(func() {
		source = GinkgoT().TempDir()
		targetDir = filepath.Join(GinkgoT().TempDir(), "taco-app")
	})

	write := func(rel string, content string) {
		Expect(os.WriteFile(filepath.Join(source, rel), []byte(content), 0644)).To(Succeed())
	}

	run := func(cfg Config) *Result {
		cfg.SourceDirectory = source
		cfg.TargetDirectory = targetDir

		s, err := New(cfg)
		Expect(err).ToNot(HaveOccurred())

		result, err := s.Run()
		Expect(err).ToNot(HaveOccurred())

		return result
	}

	It("Should layer the bundle substitution over the slug substitution", func() {
		write("app.json", `{
  "slug": "lenmie-expo-template",
  "ios": {"bundleIdentifier": "com.javiso.lenmieexpotemplate"}
}`)

		run(Config{})

		content, err := os.ReadFile(filepath.Join(targetDir, "app.json"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(Equal(`{
  "slug": "taco-app",
  "ios": {"bundleIdentifier": "com.javiso.taco-app"}
}`))
	})

	It("Should only rewrite the bundle identifier in the app manifest", func() {
		write("app.json", `{"id": "com.javiso.lenmieexpotemplate"}`)
		write("package.json", `{"id": "com.javiso.lenmieexpotemplate"}`)

		run(Config{})

		content, err := os.ReadFile(filepath.Join(targetDir, "app.json"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("com.javiso.taco-app"))

		content, err = os.ReadFile(filepath.Join(targetDir, "package.json"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("com.javiso.lenmieexpotemplate"))
	})

	It("Should leave files without placeholders untouched", func() {
		write("app.json", `{"name": "plain"}`)
		write("package.json", `{"name": "plain"}`)

		result := run(Config{})

		Expect(result.Rewrites[0].Status).To(Equal(RewriteNoop))
		Expect(result.Rewrites[1].Status).To(Equal(RewriteNoop))
		Expect(result.Warnings).To(BeEmpty())
	})

	It("Should preserve the mode of rewritten files", func() {
		Expect(os.WriteFile(filepath.Join(source, "app.json"), []byte(`{"slug": "lenmie-expo-template"}`), 0600)).To(Succeed())

		run(Config{})

		nfo, err := os.Stat(filepath.Join(targetDir, "app.json"))
		Expect(err).ToNot(HaveOccurred())
		Expect(nfo.Mode().Perm()).To(Equal(os.FileMode(0600)))
	})

	It("Should rewrite files the template never provided", func() {
		// a target file already present in a reused target directory is
		// still rewritten even when the template does not carry it
		write("app.json", `{"slug": "lenmie-expo-template"}`)
		Expect(os.MkdirAll(targetDir, 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(targetDir, "package.json"), []byte(`{"name": "lenmie-expo-template"}`), 0644)).To(Succeed())

		result := run(Config{Force: true})

		Expect(result.Rewrites[1].Status).To(Equal(RewriteDone))

		content, err := os.ReadFile(filepath.Join(targetDir, "package.json"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(ContainSubstring(`"name": "taco-app"`))
	})

	It("Should record unreadable target files as failures without aborting", func() {
		write("app.json", `{"slug": "lenmie-expo-template"}`)

		// a directory shadowing a target file makes the read fail
		Expect(os.MkdirAll(filepath.Join(targetDir, "package.json"), 0755)).To(Succeed())

		result := run(Config{Force: true})

		Expect(result.Rewrites[0].Status).To(Equal(RewriteDone))
		Expect(result.Rewrites[1].Status).To(Equal(RewriteFailed))
		Expect(result.Rewrites[1].Err).To(HaveOccurred())
		Expect(result.Failed()).To(BeTrue())
		Expect(result.Warnings).To(ContainElement(ContainSubstring("package.json")))
	})

	It("Should rewrite nested target files", func() {
		Expect(os.MkdirAll(filepath.Join(source, "config"), 0755)).To(Succeed())
		write("config/app.json", `{"slug": "lenmie-expo-template"}`)

		result := run(Config{TargetFiles: []string{"config/app.json"}})

		Expect(result.Rewrites).To(HaveLen(1))
		Expect(result.Rewrites[0].Status).To(Equal(RewriteDone))

		content, err := os.ReadFile(filepath.Join(targetDir, "config", "app.json"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(ContainSubstring(`"slug": "taco-app"`))
	})

	It("Should honor custom placeholders", func() {
		write("app.json", `{"slug": "my-starter", "id": "org.example.mystarter"}`)

		run(Config{
			SlugPlaceholder: "my-starter",
			BundleIDPrefix:  "org.example.",
		})

		content, err := os.ReadFile(filepath.Join(targetDir, "app.json"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(Equal(`{"slug": "taco-app", "id": "org.example.taco-app"}`))
	})
})

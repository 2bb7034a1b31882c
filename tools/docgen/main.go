// Package main writes the mpc command reference as markdown, one page per
// command, for the docs site.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/marketplace-client/cmd/mpc/cmd"
)

func main() {
	dir := flag.String("output", "docs/cli", "directory for the mpc command reference pages")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o750); err != nil {
		log.Fatalf("creating %s: %v", *dir, err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTreeCustom(root, *dir, frontMatter, pageLink); err != nil {
		log.Fatalf("writing mpc reference: %v", err)
	}

	fmt.Printf("wrote %d mpc command pages to %s/\n", countCommands(root), *dir)
}

// frontMatter titles each page after its command, e.g. "mpc favorites mark".
func frontMatter(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return fmt.Sprintf("---\ntitle: %q\n---\n\n", strings.ReplaceAll(name, "_", " "))
}

func pageLink(name string) string {
	return name
}

func countCommands(c *cobra.Command) int {
	n := 1
	for _, sub := range c.Commands() {
		if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
			continue
		}
		n += countCommands(sub)
	}
	return n
}

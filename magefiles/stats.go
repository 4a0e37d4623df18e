//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
)

// pkgStats holds line counts for one package directory.
type pkgStats struct {
	prod, test int
}

// Stats prints Go lines of code per package, the test-to-production
// ratio, and the word count of the Markdown docs at the repo root.
func Stats() error {
	byPkg := map[string]*pkgStats{}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "_examples", "magefiles", binaryDir:
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		dir := filepath.Dir(path)
		ps, ok := byPkg[dir]
		if !ok {
			ps = &pkgStats{}
			byPkg[dir] = ps
		}
		n := bytes.Count(data, []byte("\n"))
		if strings.HasSuffix(path, "_test.go") {
			ps.test += n
		} else {
			ps.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(byPkg))
	for dir := range byPkg {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)

	var total pkgStats
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "PACKAGE\tPROD\tTEST\t")
	for _, dir := range dirs {
		ps := byPkg[dir]
		total.prod += ps.prod
		total.test += ps.test
		fmt.Fprintf(w, "%s\t%d\t%d\t\n", dir, ps.prod, ps.test)
	}
	fmt.Fprintf(w, "total\t%d\t%d\t\n", total.prod, total.test)
	if err := w.Flush(); err != nil {
		return err
	}

	if total.prod > 0 {
		fmt.Printf("Test/prod ratio: %.2f\n", float64(total.test)/float64(total.prod))
	}

	words, err := markdownWords("*.md")
	if err != nil {
		return err
	}
	fmt.Printf("Words (Markdown): %d\n", words)
	return nil
}

// markdownWords counts whitespace-separated words in files matching
// pattern.
func markdownWords(pattern string) (int, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		total += len(bytes.Fields(data))
	}
	return total, nil
}

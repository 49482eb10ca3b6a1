package cli

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/phylogo/sdag"
	"github.com/phylogo/sdag/tree"
)

// readTrees parses a newick file, one tree per line. Blank lines and
// lines starting with # are skipped.
func readTrees(path string) ([]*tree.Labeled, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var trees []*tree.Labeled
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parsed, err := tree.ParseNewick(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		trees = append(trees, parsed)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("%s: no trees found", path)
	}
	return trees, nil
}

// taxaOf returns the sorted union of leaf labels across all trees.
func taxaOf(trees []*tree.Labeled) []string {
	seen := make(map[string]struct{})
	var taxa []string
	for _, t := range trees {
		for _, label := range t.Leaves() {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			taxa = append(taxa, label)
		}
	}
	slices.Sort(taxa)
	return taxa
}

// loadSpace builds a tree space from a newick file. The taxon set is
// derived from the file, so a tree that misses taxa other trees have
// is rejected as incomplete.
func (c *CLI) loadSpace(path string) (*sdag.Space, error) {
	labeled, err := readTrees(path)
	if err != nil {
		return nil, err
	}
	taxa := taxaOf(labeled)

	space, err := sdag.NewSpace(taxa, sdag.WithLogger(c.logger()))
	if err != nil {
		return nil, err
	}
	for i, l := range labeled {
		top, err := l.Binary(taxa)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i+1, err)
		}
		if err := space.AddTree(top); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i+1, err)
		}
	}
	return space, nil
}

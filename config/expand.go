package config

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

const globMeta = "*?[{"

// ExpandPaths resolves command-line file arguments. Arguments without glob
// syntax are kept as given, even when the file does not exist. Patterns are
// matched with '/' as separator, so "*" stays within a directory and "**"
// crosses directories. Duplicates are dropped, keeping the first occurrence.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, globMeta) {
			add(arg)
			continue
		}
		matches, err := matchPattern(arg)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func matchPattern(pattern string) ([]string, error) {
	clean := path.Clean(filepath.ToSlash(pattern))
	g, err := glob.Compile(clean, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	root := staticPrefix(clean)
	var matches []string
	err = filepath.WalkDir(filepath.FromSlash(root), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if g.Match(filepath.ToSlash(p)) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// staticPrefix returns the directory part of pattern before the first
// segment holding glob syntax.
func staticPrefix(pattern string) string {
	segs := strings.Split(pattern, "/")
	var fixed []string
	for _, s := range segs[:len(segs)-1] {
		if strings.ContainsAny(s, globMeta) {
			break
		}
		fixed = append(fixed, s)
	}
	if len(fixed) == 0 {
		if strings.HasPrefix(pattern, "/") {
			return "/"
		}
		return "."
	}
	if fixed[0] == "" {
		return "/" + strings.Join(fixed[1:], "/")
	}
	return strings.Join(fixed, "/")
}

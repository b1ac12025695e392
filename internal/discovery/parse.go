package discovery

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Line exclusions for path files. Statement lines are executed by the
// interpreter's own descriptor handling, never treated as paths.
const (
	commentPrefix = "#"
	importPrefix  = "import "
	importTabPfx  = "import\t"
)

// parseLinkFile extracts the single source path from a legacy link
// file: the first non-empty line, with any metadata lines after it
// ignored. Returns at most one validated path.
func parseLinkFile(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if resolved, ok := resolveLine(line, filepath.Dir(file)); ok {
			return []string{resolved}, nil
		}
		return nil, nil
	}

	return nil, scanner.Err()
}

// parsePathFile extracts candidate paths from a marker or plain path
// file, one per line. Blank lines, comments, and statement lines are
// skipped; relative paths resolve against the descriptor's directory;
// only existing directories survive.
func parsePathFile(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var paths []string
	dir := filepath.Dir(file)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if strings.HasPrefix(line, importPrefix) || strings.HasPrefix(line, importTabPfx) {
			continue
		}
		if resolved, ok := resolveLine(line, dir); ok {
			paths = append(paths, resolved)
		}
	}
	if err := scanner.Err(); err != nil {
		return paths, err
	}

	return paths, nil
}

// resolveLine turns one descriptor line into a validated absolute
// directory path. Relative lines resolve against the descriptor's
// containing directory. Paths that do not exist, or exist but are not
// directories, are rejected.
func resolveLine(line, baseDir string) (string, bool) {
	p := line
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	p = filepath.Clean(p)

	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return p, true
}

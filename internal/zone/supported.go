package zone

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// DefaultZoneInfoDir is where most Unix hosts keep the tz database.
const DefaultZoneInfoDir = "/usr/share/zoneinfo"

// skipped holds zoneinfo entries that load but are not zones a person
// lives in, or that duplicate the whole tree.
var skipped = map[string]bool{
	"posix":      true,
	"right":      true,
	"posixrules": true,
	"localtime":  true,
	"Factory":    true,
}

// isSkipped reports whether name, or the tree it sits in, is one of the
// skipped entries.
func isSkipped(name string) bool {
	return skipped[name] || skipped[strings.SplitN(name, "/", 2)[0]]
}

// Supported lists the timezone identifiers found under root on fsys
// that time.LoadLocation accepts, sorted.
//
// fsys only supplies names; the rules themselves come from the time
// package, so a name is listed only if it can also be displayed.
func Supported(fsys afero.Fs, root string) ([]string, error) {
	if _, err := fsys.Stat(root); err != nil {
		return nil, fmt.Errorf("zone.Supported: %w", err)
	}

	var zones []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if isSkipped(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		// Data files (zone.tab, tzdata.zi, leapseconds, ...) are lower
		// case or carry an extension; zone names never do.
		if strings.Contains(filepath.Base(rel), ".") || !startsUpper(rel) {
			return nil
		}
		if _, err := time.LoadLocation(rel); err == nil {
			zones = append(zones, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("zone.Supported: walk %s: %w", root, err)
	}

	sort.Strings(zones)
	return zones, nil
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

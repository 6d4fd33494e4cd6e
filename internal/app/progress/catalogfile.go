package progress

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/daybreak-app/daybreak/internal/domain"
)

// ParseCatalog parses a milestone catalog file.
// One MILESTONE directive per line:
//
//	MILESTONE <days> "<label>" [icon]
//
// Blank lines and # comments are skipped. The parsed catalog is
// normalized (sorted, deduplicated) before it is returned.
func ParseCatalog(r io.Reader) ([]domain.Milestone, error) {
	var catalog []domain.Milestone

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		if len(parts) < 2 {
			continue // Ignore malformed lines
		}

		directive := strings.ToUpper(parts[0])
		value := strings.TrimSpace(parts[1])

		switch directive {
		case "MILESTONE":
			m, ok := parseMilestone(value)
			if ok {
				catalog = append(catalog, m)
			}

		default:
			// Unknown directives are silently ignored for forward compatibility
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	if len(catalog) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	return NormalizeCatalog(catalog), nil
}

// LoadCatalogFile reads a milestone catalog from disk. A missing file
// surfaces as os.ErrNotExist so callers can fall back to the built-in
// catalog.
func LoadCatalogFile(path string) ([]domain.Milestone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	catalog, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// parseMilestone parses `<days> "<label>" [icon]` from a MILESTONE
// directive.
func parseMilestone(value string) (domain.Milestone, bool) {
	parts := strings.SplitN(value, " ", 2)
	days, err := strconv.Atoi(parts[0])
	if err != nil || days < 1 {
		return domain.Milestone{}, false
	}

	m := domain.Milestone{ThresholdDays: days}
	if len(parts) == 2 {
		rest := strings.TrimSpace(parts[1])
		m.Label, rest = takeLabel(rest)
		m.Icon = strings.TrimSpace(rest)
	}
	if m.Label == "" {
		m.Label = fmt.Sprintf("%d Days", days)
	}
	return m, true
}

// takeLabel consumes a quoted label, or the first word when unquoted.
func takeLabel(s string) (label, rest string) {
	if strings.HasPrefix(s, `"`) {
		if end := strings.Index(s[1:], `"`); end >= 0 {
			return s[1 : end+1], s[end+2:]
		}
		return strings.TrimPrefix(s, `"`), ""
	}
	parts := strings.SplitN(s, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/prowlers/logtracker/internal/catalog"
)

// Resolver maps text matched in a log back to catalog data.
type Resolver interface {
	IDForName(name string) (uint32, bool)
}

var _ Resolver = (*catalog.Catalog)(nil)

// Rules holds the compiled patterns applied to session log lines. Build it
// once with NewRules and share it; it is safe for concurrent use.
type Rules struct {
	summary     *regexp.Regexp
	displayName *regexp.Regexp
	levelChange *regexp.Regexp
}

// NewRules compiles the session log patterns.
func NewRules() *Rules {
	return &Rules{
		summary:     regexp.MustCompile(`Logs Read: \d+ / \d+ \| IDs: \[([^\]]*)\]\s*$`),
		displayName: regexp.MustCompile(`[A-Z0-9]{3,4}-[A-Z0-9]{3,6}(?:-[A-Z0-9]{3})?`),
		levelChange: regexp.MustCompile(`SelectActiveExpedition.*(Local_\d+,\d,\d)`),
	}
}

// SummaryIDs returns the ids listed on a "Logs Read" summary line. The bool
// reports whether the line was a summary at all; non-numeric entries are
// skipped.
func (r *Rules) SummaryIDs(line string) ([]uint32, bool) {
	m := r.summary.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return parseIDList(m[1]), true
}

// DisplayName returns the first terminal display code on the line.
func (r *Rules) DisplayName(line string) (string, bool) {
	m := r.displayName.FindString(line)
	return m, m != ""
}

// LevelToken returns the expedition token of a level selection line.
func (r *Rules) LevelToken(line string) (string, bool) {
	m := r.levelChange.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseIDList(list string) []uint32 {
	var ids []uint32
	for _, tok := range strings.Split(list, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint32(id))
	}
	return ids
}

package extract

import "github.com/prowlers/logtracker/internal/catalog"

// HistoryScan accumulates every read id found in a log: the ids of summary
// lines plus each display name that resolves. Feed it lines with Line.
type HistoryScan struct {
	rules    *Rules
	resolver Resolver
	ids      []uint32
}

// NewHistoryScan starts a one-shot historical scan.
func (r *Rules) NewHistoryScan(resolver Resolver) *HistoryScan {
	return &HistoryScan{rules: r, resolver: resolver}
}

// Line applies the summary and display name rules to one line.
func (h *HistoryScan) Line(line string) {
	if ids, ok := h.rules.SummaryIDs(line); ok {
		h.ids = append(h.ids, ids...)
	}
	if name, ok := h.rules.DisplayName(line); ok {
		if id, ok := h.resolver.IDForName(name); ok {
			h.ids = append(h.ids, id)
		}
	}
}

// IDs returns the ids in the order found. Duplicates are kept.
func (h *HistoryScan) IDs() []uint32 {
	return h.ids
}

// Latest is the most recent read id and level found in one pass over a file.
type Latest struct {
	ID    uint32
	HasID bool
	Level string
}

// LatestScan tracks the last resolvable display name and level selection.
type LatestScan struct {
	rules    *Rules
	resolver Resolver
	latest   Latest
}

// NewLatestScan starts a pass that keeps only the last matches.
func (r *Rules) NewLatestScan(resolver Resolver) *LatestScan {
	return &LatestScan{rules: r, resolver: resolver}
}

// Line applies the display name and level change rules to one line.
func (s *LatestScan) Line(line string) {
	if name, ok := s.rules.DisplayName(line); ok {
		if id, ok := s.resolver.IDForName(name); ok {
			s.latest.ID = id
			s.latest.HasID = true
		}
	}
	if token, ok := s.rules.LevelToken(line); ok {
		if code, ok := catalog.LevelCode(token); ok {
			s.latest.Level = code
		}
	}
}

// Result returns the last matches seen so far.
func (s *LatestScan) Result() Latest {
	return s.latest
}

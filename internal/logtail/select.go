package logtail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// FallbackName is the log Unity writes when no session logs exist.
const FallbackName = "Player.log"

const timestampLayout = "2006.01.02.15.04.05"

// ErrNoLogSource reports a directory with neither session logs nor Player.log.
var ErrNoLogSource = errors.New("no log source found")

var (
	sessionFileRE = regexp.MustCompile(`^GTFO\.(\d{4}\.\d{2}\.\d{2}\.\d{2}\.\d{2}\.\d{2})_.*\.txt$`)
	sessionLogRE  = regexp.MustCompile(`GTFO\.\d{4}\.\d{2}\.\d{2}\.\d{2}\.\d{2}\.\d{2}`)
)

// Kind is the role tag the game appends to a session log name.
type Kind string

const (
	KindClient    Kind = "CLIENT"
	KindMaster    Kind = "MASTER"
	KindNetStatus Kind = "NETSTATUS"
	KindUnknown   Kind = ""
)

// Candidate is a timestamped session log found in a directory.
type Candidate struct {
	Path      string
	Timestamp time.Time
}

// ParseFileName extracts the session start time from a session log file name.
// Names that do not match, or carry an impossible date, return false.
func ParseFileName(name string) (time.Time, bool) {
	m := sessionFileRE.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// IsSessionLog reports whether the watcher should scan a file with this name.
// Any name containing the prefix and a full dotted timestamp qualifies.
func IsSessionLog(name string) bool {
	return sessionLogRE.MatchString(name)
}

// SessionKind returns the role tag of a session log name.
func SessionKind(name string) Kind {
	base := strings.TrimSuffix(strings.ToUpper(name), ".TXT")
	for _, k := range []Kind{KindNetStatus, KindClient, KindMaster} {
		if strings.HasSuffix(base, "_"+string(k)) {
			return k
		}
	}
	return KindUnknown
}

// Candidates lists the timestamped session logs in dir in directory order.
func Candidates(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}
	var out []Candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, ok := ParseFileName(e.Name())
		if !ok {
			continue
		}
		out = append(out, Candidate{Path: filepath.Join(dir, e.Name()), Timestamp: ts})
	}
	return out, nil
}

// SelectLogFile returns the most recent session log in dir, falling back to
// Player.log when no session log exists.
func SelectLogFile(dir string) (string, error) {
	candidates, err := Candidates(dir)
	if err != nil {
		return "", err
	}
	if best, ok := latest(candidates); ok {
		return best.Path, nil
	}

	fallback := filepath.Join(dir, FallbackName)
	if info, err := os.Stat(fallback); err == nil && !info.IsDir() {
		return fallback, nil
	}
	return "", fmt.Errorf("%w in %q", ErrNoLogSource, dir)
}

// latest keeps the first candidate on equal timestamps.
func latest(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Timestamp.After(best.Timestamp) {
			best = c
		}
	}
	return best, true
}

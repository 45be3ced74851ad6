package watcher

import "fmt"

// Kind distinguishes watcher events.
type Kind int

const (
	LogRead Kind = iota + 1
	LevelSelected
)

// Event is one change detected in a session log.
type Event struct {
	Kind  Kind
	ID    uint32 // LogRead
	Level string // LevelSelected
	File  string
}

func (e Event) String() string {
	switch e.Kind {
	case LogRead:
		return fmt.Sprintf("LogRead(%d)", e.ID)
	case LevelSelected:
		return fmt.Sprintf("LevelSelected(%s)", e.Level)
	default:
		return "Event(?)"
	}
}

package steam

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// AppID is GTFO's Steam application id.
const AppID = 493520

// ErrNoTicket reports that no auth ticket can be produced.
var ErrNoTicket = errors.New("steam auth ticket unavailable")

// Ticket is an auth session ticket and the handle needed to cancel it.
type Ticket struct {
	Handle uint32
	Data   []byte
}

// TicketSource issues and cancels Steam auth session tickets. Every ticket
// returned by AuthSessionTicket must be passed to CancelAuthTicket once.
type TicketSource interface {
	AuthSessionTicket(ctx context.Context) (Ticket, error)
	CancelAuthTicket(ticket Ticket)
}

// HexTicketSource serves a ticket captured outside the tracker, hex encoded.
type HexTicketSource struct {
	Hex string

	mu        sync.Mutex
	next      uint32
	cancelled map[uint32]bool
}

var _ TicketSource = (*HexTicketSource)(nil)

// AuthSessionTicket decodes the configured ticket.
func (s *HexTicketSource) AuthSessionTicket(ctx context.Context) (Ticket, error) {
	if err := ctx.Err(); err != nil {
		return Ticket{}, err
	}
	raw := strings.TrimSpace(s.Hex)
	if raw == "" {
		return Ticket{}, ErrNoTicket
	}
	data, err := hex.DecodeString(raw)
	if err != nil {
		return Ticket{}, fmt.Errorf("decode steam ticket: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return Ticket{Handle: s.next, Data: data}, nil
}

// CancelAuthTicket marks the ticket handle as released.
func (s *HexTicketSource) CancelAuthTicket(ticket Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled == nil {
		s.cancelled = make(map[uint32]bool)
	}
	s.cancelled[ticket.Handle] = true
}

// Cancelled reports whether the handle has been released.
func (s *HexTicketSource) Cancelled(handle uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled[handle]
}

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/prowlers/logtracker/internal/playfab"
	"github.com/prowlers/logtracker/internal/state"
	"github.com/prowlers/logtracker/internal/steam"
)

// ErrRemoteFetch wraps every failure of the remote read id fetch.
var ErrRemoteFetch = errors.New("remote fetch failed")

const (
	defaultRoundTripTimeout = 10 * time.Second
	defaultAttempts         = 3
	defaultInitialBackoff   = 500 * time.Millisecond
)

// PlayFabAPI is the part of the PlayFab client the remote fetch uses.
type PlayFabAPI interface {
	Login(ctx context.Context, steamTicket []byte) (playfab.SessionTicket, error)
	GetUserData(ctx context.Context, ticket playfab.SessionTicket) (playfab.UserData, error)
}

var _ PlayFabAPI = (*playfab.Client)(nil)

// RemoteFetcher reads the player's persisted read ids from PlayFab.
type RemoteFetcher struct {
	Tickets steam.TicketSource
	API     PlayFabAPI
	// Timeout bounds each round trip; zero uses 10s.
	Timeout time.Duration
	// Attempts bounds tries per round trip; zero uses 3.
	Attempts uint
	// Backoff is the first retry delay; zero uses 500ms.
	Backoff time.Duration
	Logger  *slog.Logger
}

// FetchReadIDs logs in with a Steam ticket and fetches the read id list. The
// ticket is cancelled exactly once on every path.
func (f *RemoteFetcher) FetchReadIDs(ctx context.Context) (state.ReadSet, error) {
	logger := loggerOrDefault(f.Logger)
	if f.Tickets == nil || f.API == nil {
		return nil, fmt.Errorf("%w: remote source not configured", ErrRemoteFetch)
	}

	logger.Debug("requesting steam auth session ticket")
	ticket, err := f.Tickets.AuthSessionTicket(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}
	defer func() {
		logger.Debug("cancelling steam auth session ticket", "handle", ticket.Handle)
		f.Tickets.CancelAuthTicket(ticket)
	}()

	session, err := roundTrip(ctx, f, func(ctx context.Context) (playfab.SessionTicket, error) {
		return f.API.Login(ctx, ticket.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	data, err := roundTrip(ctx, f, func(ctx context.Context) (playfab.UserData, error) {
		return f.API.GetUserData(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	read := state.NewReadSet(data.ReadLogs.Value...)
	logger.Info("read logs from playfab", "count", read.Len())
	return read, nil
}

// roundTrip runs op with a per-attempt timeout, retrying transport failures
// with exponential backoff. API errors are retried only when throttled or
// failing server side.
func roundTrip[T any](ctx context.Context, f *RemoteFetcher, op func(context.Context) (T, error)) (T, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultRoundTripTimeout
	}
	attempts := f.Attempts
	if attempts == 0 {
		attempts = defaultAttempts
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = defaultInitialBackoff
	if f.Backoff > 0 {
		policy.InitialInterval = f.Backoff
	}

	return backoff.Retry[T](ctx, func() (T, error) {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		v, err := op(callCtx)
		var apiErr *playfab.APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(attempts))
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

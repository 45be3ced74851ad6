package reconcile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prowlers/logtracker/internal/playfab"
	"github.com/prowlers/logtracker/internal/steam"
)

type countingTickets struct {
	err       error
	issued    int
	cancelled int
}

func (c *countingTickets) AuthSessionTicket(context.Context) (steam.Ticket, error) {
	if c.err != nil {
		return steam.Ticket{}, c.err
	}
	c.issued++
	return steam.Ticket{Handle: uint32(c.issued), Data: []byte{0xde, 0xad}}, nil
}

func (c *countingTickets) CancelAuthTicket(steam.Ticket) {
	c.cancelled++
}

type stubAPI struct {
	loginErr  error
	dataErr   error
	data      playfab.UserData
	loginHits int
	dataHits  int
}

func (s *stubAPI) Login(context.Context, []byte) (playfab.SessionTicket, error) {
	s.loginHits++
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return "session", nil
}

func (s *stubAPI) GetUserData(_ context.Context, ticket playfab.SessionTicket) (playfab.UserData, error) {
	s.dataHits++
	if ticket != "session" {
		return playfab.UserData{}, errors.New("wrong ticket")
	}
	if s.dataErr != nil {
		return playfab.UserData{}, s.dataErr
	}
	return s.data, nil
}

func newFetcher(tickets steam.TicketSource, api PlayFabAPI) *RemoteFetcher {
	return &RemoteFetcher{
		Tickets:  tickets,
		API:      api,
		Timeout:  time.Second,
		Attempts: 3,
		Backoff:  time.Millisecond,
		Logger:   quietLogger(),
	}
}

func TestFetchReadIDs_Success(t *testing.T) {
	tickets := &countingTickets{}
	api := &stubAPI{data: playfab.UserData{ReadLogs: playfab.ReadLogs{Value: playfab.IDList{3, 1, 3}}}}

	got, err := newFetcher(tickets, api).FetchReadIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, got.IDs())
	assert.Equal(t, 1, tickets.cancelled)
}

func TestFetchReadIDs_CancelsTicketOnEveryFailure(t *testing.T) {
	tests := []struct {
		name string
		api  *stubAPI
	}{
		{"login fails", &stubAPI{loginErr: errors.New("dial tcp: refused")}},
		{"user data fails", &stubAPI{dataErr: errors.New("connection reset")}},
		{"api error", &stubAPI{loginErr: &playfab.APIError{Code: 400, Err: "InvalidSteamTicket"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := &countingTickets{}
			_, err := newFetcher(tickets, tt.api).FetchReadIDs(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRemoteFetch))
			assert.Equal(t, 1, tickets.issued)
			assert.Equal(t, 1, tickets.cancelled)
		})
	}
}

func TestFetchReadIDs_TicketFailure(t *testing.T) {
	tickets := &countingTickets{err: steam.ErrNoTicket}
	api := &stubAPI{}

	_, err := newFetcher(tickets, api).FetchReadIDs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteFetch))
	assert.True(t, errors.Is(err, steam.ErrNoTicket))
	assert.Zero(t, tickets.cancelled)
	assert.Zero(t, api.loginHits)
}

func TestFetchReadIDs_RetriesTransportButNotAPIErrors(t *testing.T) {
	transport := &stubAPI{loginErr: errors.New("timeout")}
	_, err := newFetcher(&countingTickets{}, transport).FetchReadIDs(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, transport.loginHits)

	api := &stubAPI{loginErr: &playfab.APIError{Code: 401}}
	_, err = newFetcher(&countingTickets{}, api).FetchReadIDs(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, api.loginHits)

	var apiErr *playfab.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestFetchReadIDs_RetriesServiceUnavailable(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":503,"status":"ServiceUnavailable","error":"ServiceUnavailable","errorCode":1123,"errorMessage":"try again"}`))
	}))
	t.Cleanup(server.Close)

	client, err := playfab.NewClientWithBaseURL(server.URL, "8f9")
	require.NoError(t, err)

	tickets := &countingTickets{}
	_, err = newFetcher(tickets, client).FetchReadIDs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteFetch))
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, 1, tickets.cancelled)

	var apiErr *playfab.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.Code)
}

func TestFetchReadIDs_RecoversAfterThrottling(t *testing.T) {
	api := &flakyAPI{failures: 2, err: &playfab.APIError{Code: 429, Status: "TooManyRequests"}}

	got, err := newFetcher(&countingTickets{}, api).FetchReadIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint32{7}, got.IDs())
	assert.Equal(t, 3, api.loginHits)
}

type flakyAPI struct {
	failures  int
	err       error
	loginHits int
}

func (f *flakyAPI) Login(context.Context, []byte) (playfab.SessionTicket, error) {
	f.loginHits++
	if f.loginHits <= f.failures {
		return "", f.err
	}
	return "session", nil
}

func (f *flakyAPI) GetUserData(context.Context, playfab.SessionTicket) (playfab.UserData, error) {
	return playfab.UserData{ReadLogs: playfab.ReadLogs{Value: playfab.IDList{7}}}, nil
}

func TestFetchReadIDs_TimesOutSlowRoundTrips(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	client, err := playfab.NewClientWithBaseURL(server.URL, "8f9")
	require.NoError(t, err)

	tickets := &countingTickets{}
	f := newFetcher(tickets, client)
	f.Timeout = 50 * time.Millisecond
	f.Attempts = 2

	start := time.Now()
	_, err = f.FetchReadIDs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteFetch))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 1, tickets.cancelled)
}

func TestFetchReadIDs_NotConfigured(t *testing.T) {
	_, err := (&RemoteFetcher{}).FetchReadIDs(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteFetch))
}

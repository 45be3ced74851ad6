package playfab

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// envelope is the wrapper PlayFab puts around every response.
type envelope struct {
	Code         int             `json:"code"`
	Status       string          `json:"status"`
	Data         json.RawMessage `json:"data"`
	Error        string          `json:"error"`
	ErrorCode    json.RawMessage `json:"errorCode"`
	ErrorDetails json.RawMessage `json:"errorDetails"`
	ErrorMessage string          `json:"errorMessage"`
}

// APIError is an error response returned by the PlayFab API.
type APIError struct {
	Code         int
	Status       string
	Err          string
	ErrorCode    string
	ErrorDetails string
	ErrorMessage string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP: %d - %s { error: %s, error_code: %s, error_details: %s, error_message: %s }",
		e.Code, e.Status, e.Err, e.ErrorCode, e.ErrorDetails, e.ErrorMessage)
}

// Retryable reports whether the request may succeed if sent again: throttling
// and server side failures.
func (e *APIError) Retryable() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

func (env envelope) apiError() *APIError {
	return &APIError{
		Code:         env.Code,
		Status:       env.Status,
		Err:          env.Error,
		ErrorCode:    rawText(env.ErrorCode),
		ErrorDetails: rawText(env.ErrorDetails),
		ErrorMessage: env.ErrorMessage,
	}
}

// rawText renders a JSON scalar or object as plain text.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

type loginRequest struct {
	TitleID                 string `json:"TitleId"`
	CreateAccount           bool   `json:"CreateAccount"`
	SteamTicket             string `json:"SteamTicket"`
	TicketIsServiceSpecific bool   `json:"TicketIsServiceSpecific"`
}

type loginResponse struct {
	SessionTicket string `json:"SessionTicket"`
}

// SessionTicket authenticates client API calls after login.
type SessionTicket string

type userDataResponse struct {
	Data UserData `json:"Data"`
}

// UserData is the subset of the player's title data the tracker reads.
type UserData struct {
	ReadLogs ReadLogs `json:"readlogs"`
}

// ReadLogs holds the player's persisted read ids.
type ReadLogs struct {
	Value IDList `json:"Value"`
}

// IDList decodes the read id string PlayFab stores, e.g. "[1,2,3]".
type IDList []uint32

// UnmarshalJSON accepts the id list as a JSON string.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("read ids: %w", err)
	}
	*l = ParseIDs(s)
	return nil
}

// ParseIDs parses a bracketed list, a bare comma list or a single number.
// Tokens that are not unsigned integers are dropped.
func ParseIDs(s string) []uint32 {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	var ids []uint32
	for _, tok := range strings.Split(s, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint32(id))
	}
	return ids
}

// Package playfab is a minimal client for the two PlayFab client API calls
// the tracker needs: LoginWithSteam and GetUserData.
//
// Responses use PlayFab's envelope ({"code", "status", "data"} on success and
// {"code", "status", "error", "errorCode", "errorMessage", "errorDetails"} on
// failure). API-level failures surface as *APIError; transport and decoding
// failures are wrapped plain errors.
//
// The read ids live in the "readlogs" title data key as a string that may be a
// bracketed list, a bare comma list or a single number. ParseIDs handles all
// three.
package playfab

// Package steam covers the two things the tracker needs from Steam: an auth
// session ticket for the PlayFab login, and the location of the game's data
// folder when it runs under Proton.
//
// The Steamworks SDK is not linked. TicketSource is the contract the
// reconciler relies on; HexTicketSource serves a ticket captured elsewhere.
package steam

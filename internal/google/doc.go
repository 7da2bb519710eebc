// Package google provides OAuth2 authentication and token management for the
// Google APIs used by transcriptsync (Drive, Docs, Sheets).
//
// Tokens are cached in the user cache directory and refreshed automatically.
// The 'auth' command drives the initial authorization code exchange.
package google

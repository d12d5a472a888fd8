// Package cli provides the interactive admin console.
//
// It wires configuration, the local session database, the session-aware API
// client and an interactive REPL. The stored session survives restarts: a
// console started with a saved login resumes it without prompting.
//
// Key features:
//   - Login / Logout / password reset through a one-time code
//   - Events: list, create, edit, start, delete, leaderboard
//   - Content moderation: posts, reported posts, remove or warn
//   - Users: list, ban, unban
//   - Administrators: list, add, change role
//   - Transactions with type, date and text filters
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

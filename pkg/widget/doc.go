// Package widget implements the AskLyn chat widget: a chat controller that
// round-trips user text through the /chat endpoint and an upload controller
// that sends plain-text files to /upload.
//
// The controllers never reach for global state. Everything they render goes
// through the Elements injected at construction, so a browser bridge, a
// terminal or the in-memory document in package memview can host them.
package widget

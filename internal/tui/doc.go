// Package tui renders the stage in a terminal. It provides the caption,
// render and scene sinks the client drives, either as a bubbletea program or
// as plain text lines for non-interactive output.
package tui

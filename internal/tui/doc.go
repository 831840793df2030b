// Package tui renders interactive terminal views with Bubble Tea.
//
// The batch progress view shows a live bar on stderr while a large batch is
// converted. It is only started when stderr is a terminal.
package tui

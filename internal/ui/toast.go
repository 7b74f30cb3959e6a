package ui

import (
	"fmt"
	"os"
)

// Toaster subscribes to API error results and prints them once, styled, to
// stderr. Call sites keep their own error handling (exit codes, inline
// retry) without repeating the message.
type Toaster struct{}

func (Toaster) APIError(op, msg string) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✖ "+op+": ")+msg)
}

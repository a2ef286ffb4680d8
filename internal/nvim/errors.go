package nvim

import "errors"

// Standard errors returned by the session.
var (
	// ErrSessionClosed indicates the session has already shut down.
	ErrSessionClosed = errors.New("session closed")

	// ErrUnknownRequest indicates a respond for a request msgid the editor
	// never sent, or one that was already answered.
	ErrUnknownRequest = errors.New("no such pending request")

	// ErrEditorNotFound indicates the editor binary could not be located.
	ErrEditorNotFound = errors.New("editor binary not found")
)

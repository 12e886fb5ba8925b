package drafts

import "errors"

var (
	// ErrNoDraft signals that no stored draft exists (or none could be
	// read); callers start from defaults.
	ErrNoDraft = errors.New("no stored draft")

	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

package imonline

import "github.com/pkg/errors"

// Admission rejections. All three are terminal for the proof they reject,
// none is ever retried internally.
var (
	// ErrStale rejects a heartbeat whose session index is not the current
	// one. There is no grace window, one session early and one late are
	// rejected alike.
	ErrStale = errors.New("heartbeat is outdated")

	// ErrBadSignature rejects a heartbeat whose signature does not verify
	// against the authority key registered for the claimed index.
	ErrBadSignature = errors.New("heartbeat signature is not valid")

	// ErrDuplicateIndex rejects a heartbeat for a validator already proven
	// live this session. Expected under redundant submission, harmless.
	ErrDuplicateIndex = errors.New("validator is already online")
)

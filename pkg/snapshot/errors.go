package snapshot

import "errors"

var (
	ErrUnknownFormat      = errors.New("unknown snapshot format")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrCorrupted          = errors.New("corrupted snapshot")
	ErrInvalidNetwork     = errors.New("snapshot holds an invalid network")
)

package store

import (
	"errors"
	"fmt"
)

// ErrUnknownEntry is returned for entry IDs that are not part of the loaded document
var ErrUnknownEntry = errors.New("unknown entry")

func unknownEntry(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownEntry, id)
}

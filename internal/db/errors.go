package db

import "errors"

var (
	// ErrNotExist is returned by LoadUsers when no credential store has been
	// created yet.
	ErrNotExist = errors.New("store does not exist")
	ErrConflict = errors.New("already exists")
)

func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

package calculation

import "errors"

var (
	ErrNotFound      = errors.New("calculation not found")
	ErrOwnerNotFound = errors.New("calculation owner not found")
	ErrLinkTaken     = errors.New("unique link already in use")
)

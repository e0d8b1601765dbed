package cub

import "errors"

var (
	ErrInvalidFormat = errors.New("not a cub file")
	ErrCorruptFile   = errors.New("corrupt cub file")
	ErrOverflow      = errors.New("destination too small for table of contents")
	ErrNotFound      = errors.New("block not found")
)

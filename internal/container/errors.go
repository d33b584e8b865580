package container

import "errors"

var (
	// ErrDuplicateName is returned when an element name is already taken.
	ErrDuplicateName = errors.New("element name already exists")
	// ErrUnknownType is returned when no factory is registered for a type.
	ErrUnknownType = errors.New("element type not known to container")
	// ErrInvalidName is returned for empty element names.
	ErrInvalidName = errors.New("element name must not be empty")
)

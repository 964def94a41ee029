package network

import "errors"

var (
	// ErrNilNetwork is returned when validating a nil network
	ErrNilNetwork = errors.New("network is nil")

	// ErrNilEntity indicates a null entry in one of the entity lists
	ErrNilEntity = errors.New("nil entity")

	// ErrDuplicateID indicates two entities of the same kind share an id
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidAttributes indicates a system attribute is out of range
	ErrInvalidAttributes = errors.New("invalid system attributes")

	// ErrUnknownReference indicates an id that resolves to no entity
	ErrUnknownReference = errors.New("unknown reference")

	// ErrAsymmetricLink indicates one side of a link is missing its back-reference
	ErrAsymmetricLink = errors.New("asymmetric link")

	// ErrTooManyInterfaces indicates a connector attached to more than two interfaces
	ErrTooManyInterfaces = errors.New("connector attached to too many interfaces")
)

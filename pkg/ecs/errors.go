package ecs

import "github.com/rotisserie/eris"

var (
	// ErrNotImplemented is raised when a system is driven without a hook it requires, e.g. an
	// entity processing system built without a per-entity callback.
	ErrNotImplemented = eris.New("hook not implemented")

	// ErrSystemAlreadyRegistered is returned when a system type is added to a world twice.
	ErrSystemAlreadyRegistered = eris.New("system already registered")

	// ErrManagerAlreadyRegistered is returned when a second manager of the same Go type is set.
	ErrManagerAlreadyRegistered = eris.New("manager already registered")

	// ErrAlreadyInitialized is returned by World.Initialize after the first call.
	ErrAlreadyInitialized = eris.New("world already initialized")
)

package domain

import "errors"

// Input errors surfaced to callers. Environmental failures (provider
// outages, solver infeasibility) are absorbed internally and never raised.
var (
	ErrLocationNotFound  = errors.New("location not found in registry")
	ErrEmptyFleet        = errors.New("vehicle fleet is empty")
	ErrTransportNotFound = errors.New("transport not found")
	ErrVehicleNotFound   = errors.New("vehicle not in fleet")
)

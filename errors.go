package gridrouter

import "errors"

// Sentinel errors forming the router's small failure taxonomy. Callers
// should compare with errors.Is; messages wrapped with fmt.Errorf("%w: ...")
// carry the offending coordinate for diagnostics.
var (
	ErrEndpointNotOnGrid   = errors.New("gridrouter: endpoint is not on a grid point")
	ErrEndpointOutOfBounds = errors.New("gridrouter: endpoint is out of bounds")
	ErrEndpointBlocked     = errors.New("gridrouter: endpoint is blocked in mask")
	ErrGoalNotFound        = errors.New("gridrouter: goal not found")
)

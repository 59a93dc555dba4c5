package congestion

import "errors"

// ErrNoNets is returned when Driver.Run is asked to route a board with no
// nets defined.
var ErrNoNets = errors.New("congestion: board has no nets")

package subgrid

import "errors"

// ErrPadInescapable is returned when no unblocked landing cell can be
// found for an off-grid pad within the configured escape search radius.
var ErrPadInescapable = errors.New("subgrid: pad has no reachable landing cell")

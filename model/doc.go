// Package model defines the shared data types consumed and produced by the
// gridroute autorouter: board geometry, routed segments and vias, and the
// route list emitted by a routing session. Design rules, the layer stack
// and the via catalog live in the rules and layers packages, which model
// imports.
//
// model holds no routing logic. It is the common vocabulary the routing
// packages (grid, search, congestion, subgrid, optimize, strategy, router)
// import, the same role core.Graph/Vertex/Edge play for
// the rest of a graph-algorithms library: value types at the leaves, logic
// layered on top.
package model

package cluster

import "errors"

// ErrNotEnoughNeighbours indicates a reference event failed to accumulate
// Options.MinNumNeigh qualifying peers. The caller (reloc) treats this as
// non-fatal: the event is left unrelocated and the run continues.
var ErrNotEnoughNeighbours = errors.New("cluster: not enough neighbours")

// ErrUnknownEvent indicates the requested reference event is absent from
// the catalog.
var ErrUnknownEvent = errors.New("cluster: reference event not found")

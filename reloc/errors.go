package reloc

import "errors"

// ErrEventVanished indicates the target event of RelocateSingleEvent is
// missing from the post-relocation catalog, which should never happen
// since WithRelocatedEvents only replaces existing events.
var ErrEventVanished = errors.New("reloc: relocated event missing from result catalog")

// Package kitty implements the creature asset registry: minting,
// breeding, transfer and the single-asset sale flow, with a fixed
// balance stake reserved per owned kitty.
package kitty

import (
	"encoding/hex"
	"math"
)

// GenomeSize is the width of a kitty genome in bytes.
const GenomeSize = 16

// Genome is an opaque genome. The registry imposes no internal
// structure on it.
type Genome [GenomeSize]byte

// String returns the hex encoding of the genome.
func (g Genome) String() string {
	return hex.EncodeToString(g[:])
}

// GenomeFromBytes builds a Genome from a raw slice of exactly
// GenomeSize bytes.
func GenomeFromBytes(b []byte) (Genome, bool) {
	var g Genome
	if len(b) != GenomeSize {
		return g, false
	}
	copy(g[:], b)
	return g, true
}

// ID identifies a kitty. IDs are allocated monotonically from zero and
// never reused.
type ID uint64

// MaxID is the upper bound of the identifier space.
const MaxID = ID(math.MaxUint64)

// Kitty is a single registered creature. The genome is immutable once
// the kitty is created.
type Kitty struct {
	Genome Genome
}

// CreatedEvent is posted after a kitty is minted or bred.
type CreatedEvent struct {
	Owner string
	ID    ID
}

// TransferredEvent is posted after ownership changes via Transfer or
// Buy.
type TransferredEvent struct {
	From string
	To   string
	ID   ID
}

// ListedEvent is posted after Sell sets or clears a listing. A nil
// price means the listing was cleared.
type ListedEvent struct {
	Owner string
	ID    ID
	Price *uint64
}

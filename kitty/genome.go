package kitty

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// EntropySource supplies the host-side inputs for RandomValue: the
// block-level randomness seed and the per-transaction execution index.
type EntropySource interface {
	RandomSeed() [32]byte
	CallIndex() uint32
}

// RandomValue derives a genome-sized pseudo-random value from the host
// seed, the caller's identity and the execution index, reduced through
// a 128-bit BLAKE2b digest. Identical inputs always yield identical
// output; the value is reproducible, not unpredictable, and must not be
// trusted against an adversarial block producer.
func RandomValue(seed [32]byte, caller string, callIndex uint32) Genome {
	h, err := blake2b.New(GenomeSize, nil)
	if err != nil {
		panic(err) // unkeyed blake2b with a legal size cannot fail
	}

	var index [4]byte
	binary.BigEndian.PutUint32(index[:], callIndex)

	h.Write(seed[:])
	h.Write([]byte(caller))
	h.Write(index[:])

	var g Genome
	copy(g[:], h.Sum(nil))
	return g
}

// Combine merges two parent genomes with a selector mask. Each bit of
// the child comes from dna1 where the selector bit is set, else from
// dna2.
func Combine(dna1, dna2, selector Genome) Genome {
	var child Genome
	for i := range child {
		child[i] = selector[i]&dna1[i] | ^selector[i]&dna2[i]
	}
	return child
}

package node

import (
	"sync"

	"golang.org/x/crypto/blake2b"
)

// seedWindow is the number of calls served from one seed before it is
// rotated by rehashing.
const seedWindow = 64

// chainEntropy derives per-call randomness material from the chain
// identifier. The seed advances every seedWindow calls so long-lived
// nodes do not reuse the same base material forever, while the call
// index keeps every draw within a window distinct.
type chainEntropy struct {
	mu    sync.Mutex
	seed  [32]byte
	index uint32
}

func newChainEntropy(chainID string) *chainEntropy {
	return &chainEntropy{seed: blake2b.Sum256([]byte(chainID))}
}

func (e *chainEntropy) RandomSeed() [32]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seed
}

func (e *chainEntropy) CallIndex() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	index := e.index
	e.index++
	if e.index%seedWindow == 0 {
		e.seed = blake2b.Sum256(e.seed[:])
	}
	return index
}

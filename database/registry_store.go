// Package database implements persistent kitty.Store backends on top
// of the dbm key-value and SQL interfaces.
package database

import (
	"encoding/binary"
	"encoding/json"

	dbm "github.com/shenzhen-arrom/kitties/database/db"
	"github.com/shenzhen-arrom/kitties/errors"
	"github.com/shenzhen-arrom/kitties/kitty"
)

// the byte of colon(:)
const colon = byte(0x3a)

const (
	registryState byte = iota
	kittyGenome
	kittyOwner
	kittyListing
)

var (
	registryStateKey   = []byte{registryState}
	kittyGenomePrefix  = []byte{kittyGenome, colon}
	kittyOwnerPrefix   = []byte{kittyOwner, colon}
	kittyListingPrefix = []byte{kittyListing, colon}
)

func calcKittyGenomeKey(id kitty.ID) []byte {
	return append(kittyGenomePrefix, idBytes(id)...)
}

func calcKittyOwnerKey(id kitty.ID) []byte {
	return append(kittyOwnerPrefix, idBytes(id)...)
}

func calcKittyListingKey(id kitty.ID) []byte {
	return append(kittyListingPrefix, idBytes(id)...)
}

func idBytes(id kitty.ID) []byte {
	buf := [8]byte{}
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return buf[:]
}

type registryStateJSON struct {
	NextID uint64 `json:"next_id"`
}

// A RegistryStore persists the registry maps in a key-value database.
// It satisfies kitty.Store; SaveView commits a whole operation's writes
// in one batch.
type RegistryStore struct {
	db dbm.DB
}

// NewRegistryStore creates a store over db.
func NewRegistryStore(db dbm.DB) *RegistryStore {
	return &RegistryStore{db: db}
}

// GetKitty returns the genome record for id, or nil when absent.
func (s *RegistryStore) GetKitty(id kitty.ID) (*kitty.Kitty, error) {
	data := s.db.Get(calcKittyGenomeKey(id))
	if data == nil {
		return nil, nil
	}

	genome, ok := kitty.GenomeFromBytes(data)
	if !ok {
		return nil, errors.Wrapf(errors.New("corrupt genome record"), "kitty %d has %d bytes", id, len(data))
	}
	return &kitty.Kitty{Genome: genome}, nil
}

// GetOwner returns the owner of id, or "" when absent.
func (s *RegistryStore) GetOwner(id kitty.ID) (string, error) {
	data := s.db.Get(calcKittyOwnerKey(id))
	return string(data), nil
}

// GetListing returns the asking price for id, or nil when not for sale.
func (s *RegistryStore) GetListing(id kitty.ID) (*uint64, error) {
	data := s.db.Get(calcKittyListingKey(id))
	if data == nil {
		return nil, nil
	}
	if len(data) != 8 {
		return nil, errors.Wrapf(errors.New("corrupt listing record"), "kitty %d has %d bytes", id, len(data))
	}

	price := binary.BigEndian.Uint64(data)
	return &price, nil
}

// GetKittyCount returns the allocator's next id.
func (s *RegistryStore) GetKittyCount() (kitty.ID, error) {
	data := s.db.Get(registryStateKey)
	if data == nil {
		return 0, nil
	}

	state := &registryStateJSON{}
	if err := json.Unmarshal(data, state); err != nil {
		return 0, errors.Wrap(err, "unmarshal registry state")
	}
	return kitty.ID(state.NextID), nil
}

// SaveView writes every staged mutation of one operation plus the
// allocator state in a single batch.
func (s *RegistryStore) SaveView(view *kitty.RegistryView) error {
	batch := s.db.NewBatch()

	for id, k := range view.Kitties {
		batch.Set(calcKittyGenomeKey(id), k.Genome[:])
	}
	for id, owner := range view.Owners {
		batch.Set(calcKittyOwnerKey(id), []byte(owner))
	}
	for id, price := range view.Listings {
		if price == nil {
			batch.Delete(calcKittyListingKey(id))
			continue
		}
		buf := [8]byte{}
		binary.BigEndian.PutUint64(buf[:], *price)
		batch.Set(calcKittyListingKey(id), buf[:])
	}

	state, err := json.Marshal(&registryStateJSON{NextID: uint64(view.Count)})
	if err != nil {
		return errors.Wrap(err, "marshal registry state")
	}
	batch.Set(registryStateKey, state)

	batch.Write()
	return nil
}

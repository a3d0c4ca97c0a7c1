package database

import (
	"encoding/hex"

	"github.com/jinzhu/gorm"

	dbm "github.com/shenzhen-arrom/kitties/database/db"
	"github.com/shenzhen-arrom/kitties/database/orm"
	"github.com/shenzhen-arrom/kitties/errors"
	"github.com/shenzhen-arrom/kitties/kitty"
)

const registryStateStoreKey = "registry"

// A SQLRegistryStore persists the registry in a relational database via
// gorm. It satisfies kitty.Store; SaveView commits a whole operation's
// writes in one SQL transaction.
type SQLRegistryStore struct {
	db dbm.SQLDB
}

// NewSQLRegistryStore creates a store over db. The caller is expected
// to have migrated the orm models.
func NewSQLRegistryStore(db dbm.SQLDB) *SQLRegistryStore {
	return &SQLRegistryStore{db: db}
}

func (s *SQLRegistryStore) getRow(id kitty.ID) (*orm.Kitty, error) {
	row := &orm.Kitty{}
	if err := s.db.Db().Where("kitty_id = ?", uint64(id)).First(row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "query kitty %d", id)
	}
	return row, nil
}

// GetKitty returns the genome record for id, or nil when absent.
func (s *SQLRegistryStore) GetKitty(id kitty.ID) (*kitty.Kitty, error) {
	row, err := s.getRow(id)
	if err != nil || row == nil {
		return nil, err
	}

	data, err := hex.DecodeString(row.Genome)
	if err != nil {
		return nil, errors.Wrapf(err, "decode genome of kitty %d", id)
	}
	genome, ok := kitty.GenomeFromBytes(data)
	if !ok {
		return nil, errors.Wrapf(errors.New("corrupt genome record"), "kitty %d has %d bytes", id, len(data))
	}
	return &kitty.Kitty{Genome: genome}, nil
}

// GetOwner returns the owner of id, or "" when absent.
func (s *SQLRegistryStore) GetOwner(id kitty.ID) (string, error) {
	row, err := s.getRow(id)
	if err != nil || row == nil {
		return "", err
	}
	return row.Owner, nil
}

// GetListing returns the asking price for id, or nil when not for sale.
func (s *SQLRegistryStore) GetListing(id kitty.ID) (*uint64, error) {
	row, err := s.getRow(id)
	if err != nil || row == nil {
		return nil, err
	}
	if !row.ForSale {
		return nil, nil
	}

	price := row.Price
	return &price, nil
}

// GetKittyCount returns the allocator's next id.
func (s *SQLRegistryStore) GetKittyCount() (kitty.ID, error) {
	state := &orm.RegistryState{}
	if err := s.db.Db().Where("store_key = ?", registryStateStoreKey).First(state).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, errors.Wrap(err, "query registry state")
	}
	return kitty.ID(state.NextID), nil
}

// SaveView writes every staged mutation of one operation plus the
// allocator state in a single SQL transaction.
func (s *SQLRegistryStore) SaveView(view *kitty.RegistryView) error {
	tx := s.db.Db().Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin registry tx")
	}

	for id, k := range view.Kitties {
		row := &orm.Kitty{
			KittyID: uint64(id),
			Genome:  k.Genome.String(),
			Owner:   view.Owners[id],
		}
		if err := tx.Create(row).Error; err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert kitty %d", id)
		}
	}

	for id, owner := range view.Owners {
		if _, isNew := view.Kitties[id]; isNew {
			continue
		}
		if err := tx.Model(&orm.Kitty{}).Where("kitty_id = ?", uint64(id)).Update("owner", owner).Error; err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "update owner of kitty %d", id)
		}
	}

	for id, price := range view.Listings {
		updates := map[string]interface{}{"for_sale": false, "price": uint64(0)}
		if price != nil {
			updates["for_sale"] = true
			updates["price"] = *price
		}
		if err := tx.Model(&orm.Kitty{}).Where("kitty_id = ?", uint64(id)).Updates(updates).Error; err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "update listing of kitty %d", id)
		}
	}

	state := &orm.RegistryState{}
	err := tx.Where("store_key = ?", registryStateStoreKey).First(state).Error
	switch err {
	case gorm.ErrRecordNotFound:
		state.StoreKey = registryStateStoreKey
		state.NextID = uint64(view.Count)
		if err := tx.Create(state).Error; err != nil {
			tx.Rollback()
			return errors.Wrap(err, "create registry state")
		}
	case nil:
		if err := tx.Model(state).Update("next_id", uint64(view.Count)).Error; err != nil {
			tx.Rollback()
			return errors.Wrap(err, "update registry state")
		}
	default:
		tx.Rollback()
		return errors.Wrap(err, "query registry state")
	}

	return errors.Wrap(tx.Commit().Error, "commit registry tx")
}

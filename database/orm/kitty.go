package orm

// Kitty is one registered creature row. ForSale distinguishes "listed
// at price zero" from "not for sale".
type Kitty struct {
	KittyID uint64 `gorm:"primary_key;auto_increment:false"`
	Genome  string `gorm:"size:32;not null"`
	Owner   string `gorm:"index;not null"`
	ForSale bool   `gorm:"not null"`
	Price   uint64
}

// RegistryState is the single-row allocator state.
type RegistryState struct {
	StoreKey string `gorm:"primary_key"`
	NextID   uint64
}

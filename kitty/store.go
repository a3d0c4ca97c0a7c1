package kitty

// Store is the persistent registry state: genome, owner and listing per
// kitty plus the allocator counter. The three per-kitty maps are kept
// mutually consistent by committing every mutation through SaveView as
// one atomic unit.
//
// Get methods report absence as a nil (or zero) value with a nil error;
// a non-nil error means the store itself failed.
type Store interface {
	GetKitty(id ID) (*Kitty, error)
	GetOwner(id ID) (string, error)
	GetListing(id ID) (*uint64, error)
	GetKittyCount() (ID, error)
	SaveView(view *RegistryView) error
}

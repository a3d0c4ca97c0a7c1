package kitty

import (
	"github.com/shenzhen-arrom/kitties/errors"
)

// ErrIndexOverflow is returned when the identifier space is exhausted.
var ErrIndexOverflow = errors.New("kitty index space exhausted")

// RegistryView collects the registry mutations of one operation. An
// operation stages every write here and the handler commits the whole
// view through Store.SaveView only after all validations and balance
// reservations have passed, so a failed operation is never partially
// visible.
type RegistryView struct {
	Kitties  map[ID]*Kitty
	Owners   map[ID]string
	Listings map[ID]*uint64 // staged listing writes; a nil price clears
	Count    ID             // next id to allocate, always persisted
}

// NewRegistryView returns an empty view with the allocator counter
// loaded from the current state.
func NewRegistryView(count ID) *RegistryView {
	return &RegistryView{
		Kitties:  make(map[ID]*Kitty),
		Owners:   make(map[ID]string),
		Listings: make(map[ID]*uint64),
		Count:    count,
	}
}

// AllocateID issues the next identifier and advances the staged
// counter. The advance becomes visible only when the view commits.
func (view *RegistryView) AllocateID(max ID) (ID, error) {
	id := view.Count
	if id == max {
		return 0, errors.WithDetailf(ErrIndexOverflow, "allocator reached %d", max)
	}
	view.Count++
	return id, nil
}

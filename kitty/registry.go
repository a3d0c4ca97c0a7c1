package kitty

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/shenzhen-arrom/kitties/errors"
	"github.com/shenzhen-arrom/kitties/event"
	"github.com/shenzhen-arrom/kitties/ledger"
)

const logModule = "registry"

var (
	// ErrNotOwner is returned when the caller lacks authority over the
	// referenced kitty.
	ErrNotOwner = errors.New("caller does not own the kitty")
	// ErrSameParent is returned when breeding names one kitty as both
	// parents.
	ErrSameParent = errors.New("breeding requires two distinct parents")
	// ErrKittyNotFound is returned when the referenced id has no
	// registry entry.
	ErrKittyNotFound = errors.New("kitty does not exist")
	// ErrBuyerIsOwner is returned when the current owner tries to buy.
	ErrBuyerIsOwner = errors.New("buyer already owns the kitty")
	// ErrNotForSale is returned when buying a kitty with no listing.
	ErrNotForSale = errors.New("kitty is not listed for sale")
	// ErrInsufficientStake is returned when the prospective owner's free
	// balance cannot cover the per-kitty stake.
	ErrInsufficientStake = errors.New("not enough free balance to stake")
	// ErrInsufficientFunds is returned when the buyer's free balance
	// does not strictly exceed price plus stake.
	ErrInsufficientFunds = errors.New("not enough free balance to buy")
)

// Registry provides the five kitty state transitions and the read
// queries. Every operation runs as one atomic unit: registry writes are
// staged in a RegistryView, balance effects in a ledger.BalanceTx, and
// both commit only after every validation has passed. The domain event
// is posted after commit, never for an aborted call.
//
// The host is expected to serialize operations; the internal mutex
// enforces that when the registry is driven directly, e.g. by the HTTP
// surface.
type Registry struct {
	stake    uint64
	maxIndex ID

	store      Store
	ledger     ledger.Ledger
	entropy    EntropySource
	dispatcher *event.Dispatcher

	mu sync.Mutex
}

// NewRegistry returns a registry using store as the authoritative
// state. stake is reserved from the owner for each kitty held. A zero
// maxIndex means the full uint64 identifier space.
func NewRegistry(store Store, l ledger.Ledger, entropy EntropySource, dispatcher *event.Dispatcher, stake uint64, maxIndex ID) *Registry {
	if maxIndex == 0 {
		maxIndex = MaxID
	}
	return &Registry{
		stake:      stake,
		maxIndex:   maxIndex,
		store:      store,
		ledger:     l,
		entropy:    entropy,
		dispatcher: dispatcher,
	}
}

// Stake returns the configured per-kitty stake.
func (r *Registry) Stake() uint64 {
	return r.stake
}

// Create mints a kitty with a derived genome, owned by caller. The
// per-kitty stake is reserved from caller.
func (r *Registry) Create(caller string) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, err := r.newView()
	if err != nil {
		return 0, err
	}
	balances := ledger.NewBalanceTx(r.ledger)

	dna := r.randomGenome(caller)
	id, err := r.newKittyWithStake(view, balances, caller, dna)
	if err != nil {
		return 0, err
	}

	if err := r.commit(view, balances); err != nil {
		return 0, err
	}
	r.post(CreatedEvent{Owner: caller, ID: id})
	return id, nil
}

// Transfer moves the kitty to newOwner. The stake is reserved from
// newOwner before the caller's stake is released; a transfer to self is
// legal and nets to no balance change. An active listing survives the
// transfer unchanged.
func (r *Registry) Transfer(caller, newOwner string, id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := r.store.GetOwner(id)
	if err != nil {
		return err
	}
	if owner != caller {
		return errors.WithDetailf(ErrNotOwner, "kitty %d is not owned by %q", id, caller)
	}

	view, err := r.newView()
	if err != nil {
		return err
	}
	balances := ledger.NewBalanceTx(r.ledger)

	if err := balances.Reserve(newOwner, r.stake); err != nil {
		return errors.WithDetailf(ErrInsufficientStake, "new owner %q cannot stake %d", newOwner, r.stake)
	}
	balances.Unreserve(caller, r.stake)
	view.Owners[id] = newOwner

	if err := r.commit(view, balances); err != nil {
		return err
	}
	r.post(TransferredEvent{From: caller, To: newOwner, ID: id})
	return nil
}

// Breed mints a kitty whose genome combines the two parents under a
// derived selector mask. The parents are unaffected and need not share
// an owner; the child belongs to caller.
func (r *Registry) Breed(caller string, parent1, parent2 ID) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if parent1 == parent2 {
		return 0, errors.WithDetailf(ErrSameParent, "kitty %d named as both parents", parent1)
	}

	kitty1, err := r.store.GetKitty(parent1)
	if err != nil {
		return 0, err
	}
	kitty2, err := r.store.GetKitty(parent2)
	if err != nil {
		return 0, err
	}
	if kitty1 == nil || kitty2 == nil {
		return 0, errors.WithDetailf(ErrKittyNotFound, "parents %d, %d", parent1, parent2)
	}

	view, err := r.newView()
	if err != nil {
		return 0, err
	}
	balances := ledger.NewBalanceTx(r.ledger)

	selector := r.randomGenome(caller)
	child := Combine(kitty1.Genome, kitty2.Genome, selector)
	id, err := r.newKittyWithStake(view, balances, caller, child)
	if err != nil {
		return 0, err
	}

	if err := r.commit(view, balances); err != nil {
		return 0, err
	}
	r.post(CreatedEvent{Owner: caller, ID: id})
	return id, nil
}

// Sell sets the kitty's listing to price; a nil price clears it.
func (r *Registry) Sell(caller string, id ID, price *uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := r.store.GetOwner(id)
	if err != nil {
		return err
	}
	if owner != caller {
		return errors.WithDetailf(ErrNotOwner, "kitty %d is not owned by %q", id, caller)
	}

	view, err := r.newView()
	if err != nil {
		return err
	}

	if price != nil {
		p := *price
		view.Listings[id] = &p
	} else {
		view.Listings[id] = nil
	}

	if err := r.commit(view, nil); err != nil {
		return err
	}
	r.post(ListedEvent{Owner: caller, ID: id, Price: price})
	return nil
}

// Buy purchases a listed kitty at its asking price. The buyer's free
// balance must strictly exceed price plus stake. The buyer's stake is
// reserved before the seller's is released, then the price moves from
// buyer to seller with the keep-alive minimum enforced; all of it
// commits as one unit together with the listing clear and the owner
// change.
func (r *Registry) Buy(caller string, id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seller, err := r.store.GetOwner(id)
	if err != nil {
		return err
	}
	if seller == "" {
		return errors.WithDetailf(ErrKittyNotFound, "kitty %d", id)
	}
	if caller == seller {
		return errors.WithDetailf(ErrBuyerIsOwner, "kitty %d already owned by %q", id, caller)
	}

	listing, err := r.store.GetListing(id)
	if err != nil {
		return err
	}
	if listing == nil {
		return errors.WithDetailf(ErrNotForSale, "kitty %d", id)
	}
	price := *listing

	view, err := r.newView()
	if err != nil {
		return err
	}
	balances := ledger.NewBalanceTx(r.ledger)

	// the margin requirement is a strict inequality
	total := price + r.stake
	if total < price {
		return errors.WithDetailf(ErrInsufficientFunds, "price %d plus stake %d overflows", price, r.stake)
	}
	if balances.FreeBalance(caller) <= total {
		return errors.WithDetailf(ErrInsufficientFunds, "buyer %q has %d, needs more than %d", caller, balances.FreeBalance(caller), total)
	}

	if err := balances.Reserve(caller, r.stake); err != nil {
		return errors.WithDetailf(ErrInsufficientStake, "buyer %q cannot stake %d", caller, r.stake)
	}
	balances.Unreserve(seller, r.stake)
	if err := balances.Transfer(caller, seller, price, true); err != nil {
		return errors.Wrapf(err, "paying %d for kitty %d", price, id)
	}

	view.Listings[id] = nil
	view.Owners[id] = caller

	if err := r.commit(view, balances); err != nil {
		return err
	}
	r.post(TransferredEvent{From: seller, To: caller, ID: id})
	return nil
}

// Count returns the number of kitties ever created.
func (r *Registry) Count() (ID, error) {
	return r.store.GetKittyCount()
}

// Get returns the kitty by id.
func (r *Registry) Get(id ID) (*Kitty, error) {
	k, err := r.store.GetKitty(id)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.WithDetailf(ErrKittyNotFound, "kitty %d", id)
	}
	return k, nil
}

// OwnerOf returns the kitty's owner.
func (r *Registry) OwnerOf(id ID) (string, error) {
	owner, err := r.store.GetOwner(id)
	if err != nil {
		return "", err
	}
	if owner == "" {
		return "", errors.WithDetailf(ErrKittyNotFound, "kitty %d", id)
	}
	return owner, nil
}

// ListingOf returns the kitty's asking price, or nil when it is not for
// sale.
func (r *Registry) ListingOf(id ID) (*uint64, error) {
	owner, err := r.store.GetOwner(id)
	if err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, errors.WithDetailf(ErrKittyNotFound, "kitty %d", id)
	}
	return r.store.GetListing(id)
}

// newKittyWithStake stages the shared tail of Create and Breed:
// allocate an id, reserve the stake, write genome and owner.
func (r *Registry) newKittyWithStake(view *RegistryView, balances *ledger.BalanceTx, owner string, dna Genome) (ID, error) {
	id, err := view.AllocateID(r.maxIndex)
	if err != nil {
		return 0, err
	}

	if err := balances.Reserve(owner, r.stake); err != nil {
		return 0, errors.WithDetailf(ErrInsufficientStake, "owner %q cannot stake %d", owner, r.stake)
	}

	view.Kitties[id] = &Kitty{Genome: dna}
	view.Owners[id] = owner
	return id, nil
}

func (r *Registry) newView() (*RegistryView, error) {
	count, err := r.store.GetKittyCount()
	if err != nil {
		return nil, err
	}
	return NewRegistryView(count), nil
}

func (r *Registry) randomGenome(caller string) Genome {
	return RandomValue(r.entropy.RandomSeed(), caller, r.entropy.CallIndex())
}

// commit writes the staged view, then replays the staged balance ops.
// The balance ops were validated when staged, so replaying them after
// the store write cannot fail for a conforming ledger; a failure here
// means the ledger broke its own contract and is logged before being
// surfaced.
func (r *Registry) commit(view *RegistryView, balances *ledger.BalanceTx) error {
	if err := r.store.SaveView(view); err != nil {
		return errors.Wrap(err, "save registry view")
	}
	if balances == nil {
		return nil
	}
	if err := balances.Commit(); err != nil {
		log.WithFields(log.Fields{"module": logModule, "err": err}).Error("ledger rejected validated balance ops")
		return err
	}
	return nil
}

func (r *Registry) post(ev interface{}) {
	if r.dispatcher == nil {
		return
	}
	if err := r.dispatcher.Post(ev); err != nil {
		log.WithFields(log.Fields{"module": logModule, "err": err}).Error("post registry event")
	}
}

package ledger

import (
	"sync"

	"github.com/shenzhen-arrom/kitties/errors"
)

// MemLedger is an in-memory Ledger. It stands in for the host chain's
// balance module in the node and in tests.
type MemLedger struct {
	mtx         sync.RWMutex
	existential uint64
	free        map[string]uint64
	reserved    map[string]uint64
}

// NewMemLedger returns an empty ledger with the given existential
// deposit (the minimum balance a keep-alive transfer must preserve).
func NewMemLedger(existentialDeposit uint64) *MemLedger {
	return &MemLedger{
		existential: existentialDeposit,
		free:        make(map[string]uint64),
		reserved:    make(map[string]uint64),
	}
}

// Deposit credits an account's free balance. It is the genesis funding
// hook; the registry itself never mints balance.
func (m *MemLedger) Deposit(account string, amount uint64) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.free[account] += amount
}

func (m *MemLedger) FreeBalance(account string) uint64 {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.free[account]
}

func (m *MemLedger) ReservedBalance(account string) uint64 {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.reserved[account]
}

func (m *MemLedger) ExistentialDeposit() uint64 {
	return m.existential
}

// Reserve moves amount from the account's free balance to its reserved
// balance.
func (m *MemLedger) Reserve(account string, amount uint64) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.free[account] < amount {
		return errors.WithDetailf(ErrInsufficientBalance, "reserve %d from %q with free %d", amount, account, m.free[account])
	}

	m.free[account] -= amount
	m.reserved[account] += amount
	return nil
}

// Unreserve moves up to amount back from reserved to free. Amounts
// beyond the reserved balance are clamped, matching the host guarantee
// that a release paired with a prior reserve cannot fail.
func (m *MemLedger) Unreserve(account string, amount uint64) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if reserved := m.reserved[account]; amount > reserved {
		amount = reserved
	}
	m.reserved[account] -= amount
	m.free[account] += amount
}

// Transfer moves amount between the free balances of two accounts. With
// keepAlive set it fails if the payer's free balance would drop below
// the existential deposit.
func (m *MemLedger) Transfer(from, to string, amount uint64, keepAlive bool) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	balance := m.free[from]
	if balance < amount {
		return errors.WithDetailf(ErrInsufficientBalance, "transfer %d from %q with free %d", amount, from, balance)
	}
	if keepAlive && balance-amount < m.existential {
		return errors.WithDetailf(ErrBelowMinimum, "transfer %d leaves %q with %d, existential deposit is %d", amount, from, balance-amount, m.existential)
	}

	m.free[from] -= amount
	m.free[to] += amount
	return nil
}

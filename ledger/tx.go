package ledger

import (
	"github.com/shenzhen-arrom/kitties/errors"
)

type opKind int

const (
	opReserve opKind = iota
	opUnreserve
	opTransfer
)

type balanceOp struct {
	kind      opKind
	account   string
	to        string
	amount    uint64
	keepAlive bool
}

// BalanceTx stages reserve, unreserve and transfer operations against a
// read-through view of an underlying Ledger. Each staged operation is
// validated against the view at staging time; Commit replays the
// sequence against the ledger, so a discarded BalanceTx leaves the
// ledger untouched and a committed one cannot fail a check it already
// passed.
type BalanceTx struct {
	ledger   Ledger
	free     map[string]uint64
	reserved map[string]uint64
	ops      []balanceOp
}

// NewBalanceTx returns an empty staged transaction over ledger.
func NewBalanceTx(ledger Ledger) *BalanceTx {
	return &BalanceTx{
		ledger:   ledger,
		free:     make(map[string]uint64),
		reserved: make(map[string]uint64),
	}
}

// FreeBalance returns the account's free balance as seen through the
// staged operations.
func (tx *BalanceTx) FreeBalance(account string) uint64 {
	if v, ok := tx.free[account]; ok {
		return v
	}
	return tx.ledger.FreeBalance(account)
}

// ReservedBalance returns the account's reserved balance as seen
// through the staged operations.
func (tx *BalanceTx) ReservedBalance(account string) uint64 {
	if v, ok := tx.reserved[account]; ok {
		return v
	}
	return tx.ledger.ReservedBalance(account)
}

// Reserve stages moving amount from free to reserved.
func (tx *BalanceTx) Reserve(account string, amount uint64) error {
	free := tx.FreeBalance(account)
	if free < amount {
		return errors.WithDetailf(ErrInsufficientBalance, "reserve %d from %q with free %d", amount, account, free)
	}

	tx.free[account] = free - amount
	tx.reserved[account] = tx.ReservedBalance(account) + amount
	tx.ops = append(tx.ops, balanceOp{kind: opReserve, account: account, amount: amount})
	return nil
}

// Unreserve stages moving up to amount back from reserved to free.
func (tx *BalanceTx) Unreserve(account string, amount uint64) {
	if reserved := tx.ReservedBalance(account); amount > reserved {
		amount = reserved
	}

	tx.reserved[account] = tx.ReservedBalance(account) - amount
	tx.free[account] = tx.FreeBalance(account) + amount
	tx.ops = append(tx.ops, balanceOp{kind: opUnreserve, account: account, amount: amount})
}

// Transfer stages moving amount between free balances.
func (tx *BalanceTx) Transfer(from, to string, amount uint64, keepAlive bool) error {
	free := tx.FreeBalance(from)
	if free < amount {
		return errors.WithDetailf(ErrInsufficientBalance, "transfer %d from %q with free %d", amount, from, free)
	}
	if keepAlive && free-amount < tx.ledger.ExistentialDeposit() {
		return errors.WithDetailf(ErrBelowMinimum, "transfer %d leaves %q with %d, existential deposit is %d", amount, from, free-amount, tx.ledger.ExistentialDeposit())
	}

	tx.free[from] = free - amount
	tx.free[to] = tx.FreeBalance(to) + amount
	tx.ops = append(tx.ops, balanceOp{kind: opTransfer, account: from, to: to, amount: amount, keepAlive: keepAlive})
	return nil
}

// Commit replays the staged operations against the underlying ledger in
// staging order. The caller must not reuse the transaction afterwards.
func (tx *BalanceTx) Commit() error {
	for _, op := range tx.ops {
		switch op.kind {
		case opReserve:
			if err := tx.ledger.Reserve(op.account, op.amount); err != nil {
				return errors.Wrap(err, "commit staged reserve")
			}
		case opUnreserve:
			tx.ledger.Unreserve(op.account, op.amount)
		case opTransfer:
			if err := tx.ledger.Transfer(op.account, op.to, op.amount, op.keepAlive); err != nil {
				return errors.Wrap(err, "commit staged transfer")
			}
		}
	}
	tx.ops = nil
	return nil
}

package ledger

import (
	"testing"

	"github.com/shenzhen-arrom/kitties/errors"
)

func TestReserveUnreserve(t *testing.T) {
	l := NewMemLedger(10)
	l.Deposit("alice", 1000)

	if err := l.Reserve("alice", 400); err != nil {
		t.Fatal(err)
	}
	if free, reserved := l.FreeBalance("alice"), l.ReservedBalance("alice"); free != 600 || reserved != 400 {
		t.Errorf("after reserve: free %d reserved %d", free, reserved)
	}

	if err := l.Reserve("alice", 601); errors.Root(err) != ErrInsufficientBalance {
		t.Errorf("over-reserve error = %v", err)
	}

	l.Unreserve("alice", 400)
	if free, reserved := l.FreeBalance("alice"), l.ReservedBalance("alice"); free != 1000 || reserved != 0 {
		t.Errorf("after unreserve: free %d reserved %d", free, reserved)
	}

	// clamped, never fails
	l.Unreserve("alice", 9999)
	if free := l.FreeBalance("alice"); free != 1000 {
		t.Errorf("clamped unreserve changed balance: %d", free)
	}
}

func TestTransferKeepAlive(t *testing.T) {
	l := NewMemLedger(100)
	l.Deposit("alice", 500)

	if err := l.Transfer("alice", "bob", 450, true); errors.Root(err) != ErrBelowMinimum {
		t.Errorf("keep-alive violation error = %v", err)
	}
	if err := l.Transfer("alice", "bob", 600, false); errors.Root(err) != ErrInsufficientBalance {
		t.Errorf("overdraw error = %v", err)
	}

	if err := l.Transfer("alice", "bob", 400, true); err != nil {
		t.Fatal(err)
	}
	if l.FreeBalance("alice") != 100 || l.FreeBalance("bob") != 400 {
		t.Errorf("balances after transfer: alice %d bob %d", l.FreeBalance("alice"), l.FreeBalance("bob"))
	}

	// without keepAlive the payer may be drained entirely
	if err := l.Transfer("alice", "bob", 100, false); err != nil {
		t.Fatal(err)
	}
	if l.FreeBalance("alice") != 0 {
		t.Errorf("alice not drained: %d", l.FreeBalance("alice"))
	}
}

func TestTransferToSelf(t *testing.T) {
	l := NewMemLedger(0)
	l.Deposit("alice", 300)

	if err := l.Transfer("alice", "alice", 200, true); err != nil {
		t.Fatal(err)
	}
	if free := l.FreeBalance("alice"); free != 300 {
		t.Errorf("self-transfer changed balance: %d", free)
	}
}

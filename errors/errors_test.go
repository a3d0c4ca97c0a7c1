package errors

import (
	"io"
	"testing"
)

func TestRoot(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{nil, nil},
		{io.EOF, io.EOF},
		{Wrap(io.EOF, "reading"), io.EOF},
		{Wrap(Wrap(io.EOF, "inner"), "outer"), io.EOF},
		{WithDetailf(io.EOF, "block %d", 7), io.EOF},
	}

	for _, c := range cases {
		if got := Root(c.err); got != c.want {
			t.Errorf("Root(%v) = %v want %v", c.err, got, c.want)
		}
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrap(io.EOF, "reading genome")
	if err.Error() != "reading genome: EOF" {
		t.Errorf("unexpected message %q", err.Error())
	}

	err = Wrapf(err, "kitty %d", 3)
	if err.Error() != "kitty 3: reading genome: EOF" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if WithDetail(nil, "detail") != nil {
		t.Error("WithDetail(nil) should be nil")
	}
}

func TestDetail(t *testing.T) {
	err := WithDetailf(io.EOF, "account %q", "alice")
	err = WithDetail(err, "second detail")

	if got := Detail(err); got != `account "alice"; second detail` {
		t.Errorf("Detail = %q", got)
	}
	if err.Error() != io.EOF.Error() {
		t.Errorf("details must not change the message, got %q", err.Error())
	}
	if got := Detail(io.EOF); got != io.EOF.Error() {
		t.Errorf("Detail of plain error = %q", got)
	}
}

package testutil

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

var spewConf = spew.ConfigState{DisableMethods: true, SpewKeys: true}

// DeepEqual reports whether x and y are deeply equal, treating nil and
// empty maps or slices as interchangeable.
func DeepEqual(x, y interface{}) bool {
	if reflect.DeepEqual(x, y) {
		return true
	}
	return spewConf.Sdump(x) == spewConf.Sdump(y)
}

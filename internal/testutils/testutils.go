// Package testutils holds the cheap structural-equality helper used
// alongside testify for the grammar packages' table-driven tests.
package testutils

import (
	"reflect"
	"testing"
)

// AssertEqual fails t with both values printed if got and exp are not
// deeply equal.
func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\ngot\n%v", exp, got)
	}
}

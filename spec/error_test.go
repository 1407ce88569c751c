package spec

import (
	"errors"
	"testing"

	verr "github.com/nihei9/xparse/error"
)

func errorPosition(t *testing.T, err error) (int, int) {
	t.Helper()
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("a spec error is expected; got: %T (%v)", err, err)
	}
	return specErr.Row, specErr.Col
}

package build

import (
	"runtime"
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	got := Summary()

	for _, want := range []string{Version(), Commit(), Date(), runtime.Version()} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() = %q, want it to contain %q", got, want)
		}
	}
}

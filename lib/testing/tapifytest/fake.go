package tapifytest

import (
	"context"
	"maps"
	"sync"

	"github.com/NF-coder/tap-modified/lib/callable"
)

// FakeCallable is a callable.Callable with a fixed parameter list that records
// the keyword arguments of every call. It returns Result and Err.
type FakeCallable struct {
	CallableName string
	DocText      string
	Parameters   []callable.Param
	ParamsErr    error

	Result any
	Err    error

	mu    sync.Mutex
	calls []map[string]any
}

var _ callable.Callable = (*FakeCallable)(nil)

func (f *FakeCallable) Name() string {
	if f.CallableName == "" {
		return "fake"
	}

	return f.CallableName
}

func (f *FakeCallable) Doc() string {
	return f.DocText
}

func (f *FakeCallable) Params() ([]callable.Param, error) {
	if f.ParamsErr != nil {
		return nil, f.ParamsErr
	}

	return append([]callable.Param(nil), f.Parameters...), nil
}

func (f *FakeCallable) Call(_ context.Context, kwargs map[string]any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, maps.Clone(kwargs))

	return f.Result, f.Err
}

// Calls returns the keyword arguments of every call so far.
func (f *FakeCallable) Calls() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]map[string]any(nil), f.calls...)
}

// LastCall returns the keyword arguments of the most recent call, or nil.
func (f *FakeCallable) LastCall() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.calls) == 0 {
		return nil
	}

	return f.calls[len(f.calls)-1]
}

package media

import (
	"context"
	"strings"
	"sync"
)

type call struct {
	name string
	args []string
}

// fakeRunner answers tool invocations from a script of responses, in order.
type fakeRunner struct {
	mu        sync.Mutex
	calls     []call
	responses []response
}

type response struct {
	out []byte
	err error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call{name: name, args: append([]string(nil), args...)})
	if len(f.responses) == 0 {
		return nil, nil
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r.out, r.err
}

func (c call) joined() string { return strings.Join(c.args, " ") }

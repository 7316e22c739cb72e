package sdk

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// --- Executor mock ---

// MockStep scripts the result of one Execute call.
// Reject makes Execute itself fail, Fail yields TxFailed, otherwise the call confirms.
// Hold, when set, delays the terminal outcome until it is closed.
type MockStep struct {
	Reject      error
	Fail        error
	SkipPending bool
	Hold        chan struct{}
}

// MockExecutor records every call and plays back scripted steps, confirming by default.
type MockExecutor struct {
	mu    sync.Mutex
	calls []TxCall
	steps []MockStep
}

func NewMockExecutor(steps ...MockStep) *MockExecutor {
	return &MockExecutor{steps: steps}
}

// Push appends steps for the next calls.
func (m *MockExecutor) Push(steps ...MockStep) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, steps...)
}

// Calls returns a copy of every call received so far.
func (m *MockExecutor) Calls() []TxCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TxCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockExecutor) Execute(ctx context.Context, call TxCall) (<-chan TxOutcome, error) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	var step MockStep
	if len(m.steps) > 0 {
		step = m.steps[0]
		m.steps = m.steps[1:]
	}
	n := len(m.calls)
	m.mu.Unlock()

	if step.Reject != nil {
		return nil, step.Reject
	}
	out := make(chan TxOutcome, 2)
	if !step.SkipPending {
		out <- TxOutcome{Status: TxPending}
	}
	finish := func() {
		if step.Fail != nil {
			out <- TxOutcome{Status: TxFailed, Err: step.Fail}
		} else {
			out <- TxOutcome{Status: TxConfirmed, Receipt: &Receipt{
				TxHash:      common.BigToHash(big.NewInt(int64(n))),
				BlockNumber: uint64(n),
			}}
		}
		close(out)
	}
	if step.Hold == nil {
		finish()
		return out, nil
	}
	go func() {
		select {
		case <-step.Hold:
			finish()
		case <-ctx.Done():
			out <- TxOutcome{Status: TxFailed, Err: ctx.Err()}
			close(out)
		}
	}()
	return out, nil
}

// ErrMockDeclined is a ready made Reject value.
var ErrMockDeclined = errors.New("user declined signature")

// --- Notifier mock ---

// MockNotifier keeps every notification for later assertions.
type MockNotifier struct {
	mu  sync.Mutex
	all []Notification
}

func (m *MockNotifier) Notify(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.all = append(m.all, n)
}

// All returns a copy of the received notifications.
func (m *MockNotifier) All() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.all))
	copy(out, m.all)
	return out
}

// Count returns how many notifications of the given level arrived.
func (m *MockNotifier) Count(level NotifyLevel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, v := range m.all {
		if v.Level == level {
			n++
		}
	}
	return n
}

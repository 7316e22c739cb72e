package voting

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"okinoko_flowvote/sdk"
)

// VotesReader is the prior-votes store as seen by a session.
type VotesReader interface {
	RecordedVotes(ctx context.Context, contract, holder sdk.Address) ([]Allocation, error)
	Invalidate(contract, holder sdk.Address)
}

type noRecordedVotes struct{}

func (noRecordedVotes) RecordedVotes(context.Context, sdk.Address, sdk.Address) ([]Allocation, error) {
	return nil, nil
}

func (noRecordedVotes) Invalidate(sdk.Address, sdk.Address) {}

// SessionDeps are the collaborators injected into a session. Proofs is only
// required for backends that need proofs, Notifier and Votes have no-op defaults.
type SessionDeps struct {
	Proofs   ProofFetcher
	Executor sdk.Executor
	Notifier sdk.Notifier
	Votes    VotesReader
}

// Transition is handed to observers after every state change.
type Transition struct {
	From         SessionState
	To           SessionState
	Batch        int
	TotalBatches int
	Err          error
}

// Progress is a read-only snapshot for display.
type Progress struct {
	State        SessionState
	BatchIndex   int
	TotalBatches int
	TotalBps     int
	Recipients   int
}

// BatchResult describes one confirmed batch.
type BatchResult struct {
	Batch        int
	TotalBatches int
	Call         sdk.TxCall
	Receipt      *sdk.Receipt
	// Completed is set on the final batch of a sequence.
	Completed bool
	// Stale is set when the confirmation arrived after the session was cancelled.
	Stale bool
}

// Session drives one holder through the batch sequence of one backend:
// Idle -> Active(c) -> Submitting(c) -> AwaitingConfirmation(c) -> Active(c+1) | Active(c) -> Completed -> Idle.
// Batches are never chained automatically, every batch needs its own SubmitCurrentBatch call.
type Session struct {
	id       string
	cfg      SessionConfig
	backend  Backend
	units    []VotingPowerUnit
	proofs   ProofFetcher
	executor sdk.Executor
	notifier sdk.Notifier
	votes    VotesReader

	mu        sync.Mutex
	state     SessionState
	cursor    int
	total     int
	epoch     uint64
	plan      *BatchPlan
	set       *AllocationSet
	recorded  []Allocation
	observers []func(Transition)
	pending   []Transition
}

// batchRun pins what a submission started with, so late results can be matched
// against a session that was cancelled or restarted in the meantime.
type batchRun struct {
	epoch uint64
	index int
	total int
	set   *AllocationSet
}

// NewSession resolves the backend and snapshots units. Unsupported configurations
// fail here, before any batch can be attempted.
func NewSession(cfg SessionConfig, units []VotingPowerUnit, deps SessionDeps) (*Session, error) {
	cfg.Normalize()
	backend, err := ResolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if backend.NeedsProofs() && deps.Proofs == nil {
		return nil, fmt.Errorf("%w: %s backend needs a proof fetcher", ErrUnsupportedBackend, backend.Kind())
	}
	if deps.Executor == nil {
		return nil, errors.New("session needs an executor")
	}
	if deps.Notifier == nil {
		deps.Notifier = sdk.LogNotifier{}
	}
	if deps.Votes == nil {
		deps.Votes = noRecordedVotes{}
	}
	units, err = SessionUnits(backend, cfg.Holder, units)
	if err != nil {
		return nil, err
	}
	snapshot := make([]VotingPowerUnit, len(units))
	copy(snapshot, units)
	set, _ := NewAllocationSet(nil)
	return &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		backend:  backend,
		units:    snapshot,
		proofs:   deps.Proofs,
		executor: deps.Executor,
		notifier: deps.Notifier,
		votes:    deps.Votes,
		set:      set,
		total:    1,
	}, nil
}

func (s *Session) ID() string            { return s.id }
func (s *Session) Backend() Backend      { return s.backend }
func (s *Session) Config() SessionConfig { return s.cfg }

// OnTransition registers an observer. Observers run outside the session lock.
func (s *Session) OnTransition(fn func(Transition)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// State returns the current state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the zero based index of the batch to submit next.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Allocations returns the current edit state in iteration order.
func (s *Session) Allocations() []Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Allocations()
}

// Progress snapshots state, batch position and allocation totals.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		State:        s.state,
		BatchIndex:   s.cursor,
		TotalBatches: s.total,
		TotalBps:     s.set.TotalAllocatedBps(),
		Recipients:   s.set.VotedRecipientCount(),
	}
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Activate moves Idle -> Active(0), seeding the set from recorded votes and
// planning batches once for the session. Calling it on an active session is a no-op.
func (s *Session) Activate(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil
	}
	epoch := s.epoch
	s.mu.Unlock()

	recorded, err := s.votes.RecordedVotes(ctx, s.cfg.Contract, s.cfg.Holder)
	if err != nil {
		return fmt.Errorf("load recorded votes: %w", err)
	}
	set, err := NewAllocationSet(recorded)
	if err != nil {
		return fmt.Errorf("recorded votes: %w", err)
	}

	s.mu.Lock()
	if s.state != StateIdle || s.epoch != epoch {
		s.mu.Unlock()
		return nil
	}
	s.epoch++
	s.recorded = set.Allocations()
	s.set = set
	s.plan = PlanFor(s.backend, s.units)
	s.total = s.plan.TotalBatches
	s.cursor = 0
	s.transition(StateActive, nil)
	total := s.total
	s.unlockAndFlush()

	emitSessionActivated(s.id, s.backend.Kind(), total, len(s.units), len(recorded))
	return nil
}

// Update edits the allocation set. Only allowed while Active and before the first
// batch of a sequence is confirmed.
// Example payload: session.Update("0xabc..", 2500)
func (s *Session) Update(recipient RecipientID, bps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return fmt.Errorf("%w: state %s", ErrSessionNotActive, s.state)
	}
	if s.cursor > 0 {
		// later batches must carry the same split as the confirmed ones
		return fmt.Errorf("%w: batch %d of %d already confirmed", ErrSequenceInProgress, s.cursor, s.total)
	}
	return s.set.Update(recipient, bps)
}

// Cancel returns to Idle from any state: cursor back to 0, edits dropped and
// the set restored to the recorded votes. A call already handed to the proof
// service or executor keeps running, its result is ignored.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.epoch++
	s.cursor = 0
	s.plan = nil
	if err := s.set.Reset(s.recorded); err != nil {
		sdk.Error("restore recorded votes: %v", err)
	}
	if s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	s.transition(StateIdle, nil)
	s.unlockAndFlush()
	emitSessionCancelled(s.id)
}

// -----------------------------------------------------------------------------
// Submission
// -----------------------------------------------------------------------------

// SubmitCurrentBatch runs the current batch end to end: slice units, encode,
// fetch proofs when the backend needs them, build the call and hand it to the
// executor, then wait for the terminal outcome. Failures leave the cursor where
// it was so the same batch can be retried. While a batch is in flight further
// calls return ErrSubmitInFlight and change nothing.
//
// A ctx cancelled while waiting for the receipt also counts as a failure, but the
// transaction may still confirm on chain. Retrying then submits the same batch a
// second time, so callers should check the chain before retrying after a cancel.
func (s *Session) SubmitCurrentBatch(ctx context.Context) (*BatchResult, error) {
	s.mu.Lock()
	switch s.state {
	case StateActive:
	case StateSubmitting, StateAwaitingConfirmation:
		cursor := s.cursor
		s.mu.Unlock()
		sdk.Verbose("submit ignored, batch %d still in flight", cursor+1)
		return nil, ErrSubmitInFlight
	default:
		state := s.state
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: state %s", ErrSessionNotActive, state)
	}
	run := batchRun{
		epoch: s.epoch,
		index: s.cursor,
		total: s.total,
		set:   s.set.Clone(),
	}
	plan := s.plan
	s.transition(StateSubmitting, nil)
	s.unlockAndFlush()

	units, err := plan.UnitsForBatch(run.index)
	if err != nil {
		return nil, s.failBatch(run, err)
	}
	// encode first, a local validation error must not cost a proof round trip
	args, err := Encode(run.set, units, s.backend)
	if err != nil {
		return nil, s.failBatch(run, err)
	}
	if _, err := recipientAddresses(args.RecipientIDs); err != nil {
		return nil, s.failBatch(run, err)
	}
	if s.backend.NeedsProofs() {
		bundle, err := s.proofs.FetchProofs(ctx, run.index, units)
		if err == nil {
			err = checkBundle(bundle, run.index, len(units))
		}
		if err != nil {
			return nil, s.failBatch(run, fmt.Errorf("%w: batch %d: %w", ErrProofFetchFailed, run.index+1, err))
		}
		args.Proof = bundle
	}
	call, err := BuildCall(s.cfg, s.backend, args)
	if err != nil {
		return nil, s.failBatch(run, err)
	}

	emitBatchSubmitted(s.id, run.index, run.total, len(units), len(args.RecipientIDs))
	outcomes, err := s.executor.Execute(ctx, call)
	if err != nil {
		return nil, s.failBatch(run, fmt.Errorf("%w: %w", ErrSubmissionRejected, err))
	}
	for {
		select {
		case <-ctx.Done():
			return nil, s.failBatch(run, fmt.Errorf("%w: %w", ErrSubmissionRejected, ctx.Err()))
		case out, ok := <-outcomes:
			if !ok {
				return nil, s.failBatch(run, fmt.Errorf("%w: executor closed without outcome", ErrSubmissionRejected))
			}
			switch out.Status {
			case sdk.TxPending:
				s.markAwaiting(run)
			case sdk.TxConfirmed:
				return s.confirmBatch(ctx, run, call, out.Receipt), nil
			case sdk.TxFailed:
				cause := out.Err
				if cause == nil {
					cause = errors.New("transaction failed")
				}
				return nil, s.failBatch(run, fmt.Errorf("%w: %w", ErrSubmissionRejected, cause))
			}
		}
	}
}

// markAwaiting records that the wallet accepted the call and it is waiting for a receipt.
func (s *Session) markAwaiting(run batchRun) {
	s.mu.Lock()
	if s.epoch != run.epoch || s.state != StateSubmitting {
		s.mu.Unlock()
		return
	}
	s.transition(StateAwaitingConfirmation, nil)
	s.unlockAndFlush()
	s.notify(sdk.LevelInfo, run.index, fmt.Sprintf("Batch %d of %d submitted", run.index+1, run.total))
}

// failBatch puts the session back to Active on the same batch and reports err.
func (s *Session) failBatch(run batchRun, err error) error {
	s.mu.Lock()
	if s.epoch != run.epoch {
		s.mu.Unlock()
		sdk.Verbose("batch %d failed after cancel: %v", run.index+1, err)
		return err
	}
	s.transition(StateActive, err)
	s.unlockAndFlush()
	emitBatchFailed(s.id, run.index, run.total, err)
	s.notify(sdk.LevelError, run.index, fmt.Sprintf("Batch %d of %d failed: %v", run.index+1, run.total, err))
	return err
}

// confirmBatch advances the cursor or, on the last batch, completes the sequence
// and refreshes the recorded votes.
func (s *Session) confirmBatch(ctx context.Context, run batchRun, call sdk.TxCall, receipt *sdk.Receipt) *BatchResult {
	res := &BatchResult{
		Batch:        run.index,
		TotalBatches: run.total,
		Call:         call,
		Receipt:      receipt,
	}
	s.mu.Lock()
	if s.epoch != run.epoch {
		s.mu.Unlock()
		res.Stale = true
		s.votes.Invalidate(s.cfg.Contract, s.cfg.Holder)
		sdk.Verbose("batch %d confirmed after cancel", run.index+1)
		return res
	}
	emitBatchConfirmed(s.id, run.index, run.total, receipt)
	if run.index+1 < run.total {
		s.cursor = run.index + 1
		s.transition(StateActive, nil)
		s.unlockAndFlush()
		s.notify(sdk.LevelSuccess, run.index, fmt.Sprintf("Batch %d of %d confirmed", run.index+1, run.total))
		return res
	}
	s.transition(StateCompleted, nil)
	s.epoch++
	s.cursor = 0
	s.plan = nil
	s.recorded = run.set.Allocations()
	s.set = run.set
	s.transition(StateIdle, nil)
	s.unlockAndFlush()

	res.Completed = true
	emitSessionCompleted(s.id, run.total)
	s.notify(sdk.LevelSuccess, run.index, fmt.Sprintf("Vote submitted in %d batch(es)", run.total))
	s.refreshRecorded(ctx)
	return res
}

// refreshRecorded drops the cached recorded votes and re-reads them. On failure the
// submitted allocation stays as the recorded state.
func (s *Session) refreshRecorded(ctx context.Context) {
	s.votes.Invalidate(s.cfg.Contract, s.cfg.Holder)
	recorded, err := s.votes.RecordedVotes(ctx, s.cfg.Contract, s.cfg.Holder)
	if err != nil {
		sdk.Error("refresh recorded votes: %v", err)
		return
	}
	if len(recorded) == 0 {
		// indexers lag behind receipts, keep what was just confirmed
		return
	}
	set, err := NewAllocationSet(recorded)
	if err != nil {
		sdk.Error("refresh recorded votes: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		s.recorded = set.Allocations()
		s.set = set
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// transition must be called with s.mu held.
func (s *Session) transition(to SessionState, err error) {
	s.pending = append(s.pending, Transition{
		From:         s.state,
		To:           to,
		Batch:        s.cursor,
		TotalBatches: s.total,
		Err:          err,
	})
	s.state = to
}

// unlockAndFlush releases s.mu and then runs observers for the queued transitions.
func (s *Session) unlockAndFlush() {
	pending := s.pending
	s.pending = nil
	observers := make([]func(Transition), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	for _, t := range pending {
		for _, fn := range observers {
			fn(t)
		}
	}
}

func (s *Session) correlationID(batch int) string {
	return fmt.Sprintf("%s-%d", s.id, batch)
}

func (s *Session) notify(level sdk.NotifyLevel, batch int, msg string) {
	s.notifier.Notify(sdk.Notification{
		Level:         level,
		Message:       msg,
		CorrelationID: s.correlationID(batch),
	})
}

package wallet

import (
	"context"
	"sync"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/store"
)

var balanceKey = []byte("balance")

// WalletCondition is the identity of a wallet instance. Its address is the
// target of self-call proposals.
func WalletCondition(id []byte) quorum.Condition {
	return quorum.NewCondition("wallet", "seq", id)
}

// Engine drives the submit -> approve/revoke -> execute pipeline of one
// wallet. All operations are serialized: the engine is safe for concurrent
// use and every operation is an atomic state transition.
//
// The forwarded call of Execute runs outside of the engine lock, so the
// called code may re-enter this wallet. A re-entrant Execute of the same
// proposal fails with ErrAlreadyExecuted because the executed flag is
// flipped before the call is forwarded.
type Engine struct {
	mu        sync.Mutex
	db        store.CacheableKVStore
	caller    quorum.ExternalCaller
	sink      Sink
	condition quorum.Condition
	registry  Registry
	proposals Proposals
	votes     Ledger
}

// NewEngine creates an independent wallet with the given owner set and
// threshold. A nil sink drops all events.
func NewEngine(
	condition quorum.Condition,
	db store.CacheableKVStore,
	caller quorum.ExternalCaller,
	sink Sink,
	owners []quorum.Address,
	threshold uint32,
) (*Engine, error) {
	if err := condition.Validate(); err != nil {
		return nil, errors.Wrap(err, "condition")
	}
	if caller == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "external caller")
	}
	if db == nil {
		db = store.MemStore()
	}
	if sink == nil {
		sink = NopSink{}
	}

	e := &Engine{
		db:        db,
		caller:    caller,
		sink:      sink,
		condition: condition,
		proposals: newProposals(),
	}
	if err := e.registry.initialize(db, owners, threshold); err != nil {
		return nil, err
	}
	return e, nil
}

// Condition returns the wallet identity.
func (e *Engine) Condition() quorum.Condition {
	return e.condition
}

// Address returns the address of the wallet identity.
func (e *Engine) Address() quorum.Address {
	return e.condition.Address()
}

// Submit records a new proposal and returns its id. Only current owners can
// submit.
func (e *Engine) Submit(ctx context.Context, target quorum.Address, amount int64, payload []byte) (int64, error) {
	caller := quorum.Caller(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(caller); err != nil {
		return 0, err
	}
	prop := &Proposal{
		Target:  target,
		Amount:  amount,
		Payload: payload,
	}
	id, err := e.proposals.Create(e.db, prop)
	if err != nil {
		return 0, err
	}
	e.emit(Event{
		Kind:     EventSubmitted,
		Proposal: id,
		Actor:    caller,
		Target:   target,
		Amount:   amount,
		Payload:  payload,
	})
	return id, nil
}

// Approve records the caller's approval of an open proposal.
func (e *Engine) Approve(ctx context.Context, proposalID int64) error {
	caller := quorum.Caller(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	prop, err := e.openProposal(caller, proposalID)
	if err != nil {
		return err
	}
	voted, err := e.votes.HasApproved(e.db, proposalID, caller)
	if err != nil {
		return err
	}
	if voted {
		return errors.Wrapf(ErrAlreadyVoted, "proposal %d", proposalID)
	}

	cache := e.db.CacheWrap()
	if err := e.votes.approve(cache, proposalID, caller); err != nil {
		cache.Discard()
		return err
	}
	prop.ApprovalCount++
	if err := e.proposals.save(cache, proposalID, prop); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit approval")
	}
	e.emit(Event{Kind: EventApproved, Proposal: proposalID, Actor: caller})
	return nil
}

// Revoke withdraws the caller's earlier approval of an open proposal.
func (e *Engine) Revoke(ctx context.Context, proposalID int64) error {
	caller := quorum.Caller(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	prop, err := e.openProposal(caller, proposalID)
	if err != nil {
		return err
	}
	voted, err := e.votes.HasApproved(e.db, proposalID, caller)
	if err != nil {
		return err
	}
	if !voted {
		return errors.Wrapf(ErrNotVoted, "proposal %d", proposalID)
	}

	cache := e.db.CacheWrap()
	if err := e.votes.revoke(cache, proposalID, caller); err != nil {
		cache.Discard()
		return err
	}
	prop.ApprovalCount--
	if err := e.proposals.save(cache, proposalID, prop); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit revocation")
	}
	e.emit(Event{Kind: EventRevoked, Proposal: proposalID, Actor: caller})
	return nil
}

// Execute performs the forwarded call of a proposal that collected the
// threshold of approvals. The threshold is read fresh from the governance
// state at call time, not cached from voting time.
//
// Execution is atomic: either the forwarded call succeeds and the proposal
// becomes terminal, or the whole operation fails leaving the proposal open.
func (e *Engine) Execute(ctx context.Context, proposalID int64) error {
	caller := quorum.Caller(ctx)

	e.mu.Lock()
	prop, err := e.openProposal(caller, proposalID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	own, err := e.registry.Ownership(e.db)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if prop.ApprovalCount < own.Threshold {
		e.mu.Unlock()
		return errors.Wrapf(ErrInsufficientApprovals, "%d of %d",
			prop.ApprovalCount, own.Threshold)
	}

	if prop.Target.Equals(e.Address()) {
		defer e.mu.Unlock()
		return e.executeSelf(caller, proposalID, prop)
	}
	return e.executeExternal(ctx, caller, proposalID, prop)
}

// executeSelf enacts a governance payload. The executed flip and the
// governance mutation commit together or not at all. Lock is held by the
// caller.
func (e *Engine) executeSelf(caller quorum.Address, proposalID int64, prop *Proposal) error {
	cache := e.db.CacheWrap()

	prop.Executed = true
	if err := e.proposals.save(cache, proposalID, prop); err != nil {
		cache.Discard()
		return err
	}
	msg, err := unmarshalMsg(prop.Payload)
	if err != nil {
		cache.Discard()
		return err
	}

	var events []Event
	switch msg := msg.(type) {
	case *AddOwnerMsg:
		events, err = e.registry.addOwner(cache, msg.Owner, msg.Threshold)
	case *RemoveOwnerMsg:
		events, err = e.registry.removeOwner(cache, msg.Owner)
	case *ChangeThresholdMsg:
		events, err = e.registry.changeThreshold(cache, msg.Threshold)
	default:
		err = errors.Wrapf(errors.ErrHuman, "unhandled message %T", msg)
	}
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit execution")
	}

	for _, ev := range events {
		ev.Proposal = proposalID
		ev.Actor = caller
		e.emit(ev)
	}
	e.emit(Event{Kind: EventExecuted, Proposal: proposalID, Actor: caller})
	return nil
}

// executeExternal forwards the call to the proposal target. Lock is held on
// entry and released before the call is forwarded, so the target can call
// back into this wallet. On a failed call every mutation is reverted.
func (e *Engine) executeExternal(ctx context.Context, caller quorum.Address, proposalID int64, prop *Proposal) error {
	balance, err := e.loadBalance()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if prop.Amount > balance {
		e.mu.Unlock()
		return errors.Wrapf(errors.ErrAmount, "balance %d, need %d", balance, prop.Amount)
	}

	// The executed flag flips before the call is forwarded. A re-entrant
	// Execute of the same proposal must fail with ErrAlreadyExecuted
	// instead of forwarding twice.
	prop.Executed = true
	if err := e.proposals.save(e.db, proposalID, prop); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.storeBalance(balance - prop.Amount); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	callErr := e.caller.Call(ctx, prop.Target, prop.Amount, prop.Payload)

	e.mu.Lock()
	defer e.mu.Unlock()

	if callErr != nil {
		// The proposal stays open and the funds stay in.
		fresh, err := e.proposals.Get(e.db, proposalID)
		if err != nil {
			return err
		}
		fresh.Executed = false
		if err := e.proposals.save(e.db, proposalID, fresh); err != nil {
			return err
		}
		balance, err := e.loadBalance()
		if err != nil {
			return err
		}
		if err := e.storeBalance(balance + prop.Amount); err != nil {
			return err
		}
		return errors.Wrapf(ErrCallFailed, "%s", callErr)
	}

	e.emit(Event{
		Kind:     EventExecuted,
		Proposal: proposalID,
		Actor:    caller,
		Target:   prop.Target,
		Amount:   prop.Amount,
		Payload:  prop.Payload,
	})
	return nil
}

// Deposit credits the wallet balance. Anyone can fund a wallet.
func (e *Engine) Deposit(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "deposit %d", amount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	balance, err := e.loadBalance()
	if err != nil {
		return err
	}
	if balance+amount < balance {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	if err := e.storeBalance(balance + amount); err != nil {
		return err
	}
	e.emit(Event{
		Kind:     EventDeposited,
		Proposal: -1,
		Actor:    quorum.Caller(ctx),
		Amount:   amount,
	})
	return nil
}

// Balance returns the amount the wallet currently holds.
func (e *Engine) Balance() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadBalance()
}

// Ownership returns a snapshot of the current governance state.
func (e *Engine) Ownership() (*Ownership, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Ownership(e.db)
}

// IsOwner returns true iff the given address is a current owner.
func (e *Engine) IsOwner(a quorum.Address) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.IsOwner(e.db, a)
}

// Proposal returns the proposal with the given id.
func (e *Engine) Proposal(proposalID int64) (*Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.proposals.Get(e.db, proposalID)
}

// ProposalCount returns the number of proposals submitted so far.
func (e *Engine) ProposalCount() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.proposals.Count(e.db)
}

// HasApproved returns true iff the given owner currently approves the given
// proposal.
func (e *Engine) HasApproved(proposalID int64, a quorum.Address) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.votes.HasApproved(e.db, proposalID, a)
}

// openProposal authenticates the caller as a current owner and loads a
// proposal that was not executed yet.
func (e *Engine) openProposal(caller quorum.Address, proposalID int64) (*Proposal, error) {
	if err := e.requireOwner(caller); err != nil {
		return nil, err
	}
	prop, err := e.proposals.Get(e.db, proposalID)
	if err != nil {
		return nil, err
	}
	if prop.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", proposalID)
	}
	return prop, nil
}

func (e *Engine) requireOwner(caller quorum.Address) error {
	if caller == nil {
		return errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	ok, err := e.registry.IsOwner(e.db, caller)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "caller %s", caller)
	}
	return nil
}

func (e *Engine) loadBalance() (int64, error) {
	raw, err := e.db.Get(balanceKey)
	if err != nil {
		return 0, errors.Wrap(err, "balance lookup")
	}
	return orm.DecodeSequence(raw), nil
}

func (e *Engine) storeBalance(balance int64) error {
	return e.db.Set(balanceKey, orm.EncodeSequence(balance))
}

func (e *Engine) emit(ev Event) {
	ev.Wallet = e.Address()
	e.sink.Publish(ev)
}

package wallet

import (
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
)

var ownershipKey = []byte("ownership")

// Registry gives access to the governance state of a wallet. Read methods
// are public. Mutators are unexported on purpose: the only way to change the
// owner set or the threshold is a proposal the wallet executes against
// itself.
type Registry struct{}

// Ownership loads the current governance state.
func (Registry) Ownership(db store.ReadOnlyKVStore) (*Ownership, error) {
	raw, err := db.Get(ownershipKey)
	if err != nil {
		return nil, errors.Wrap(err, "ownership lookup")
	}
	if raw == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "ownership")
	}
	var own Ownership
	if err := json.Unmarshal(raw, &own); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "malformed ownership: %s", err)
	}
	return &own, nil
}

// IsOwner returns true iff the given address is a current owner.
func (r Registry) IsOwner(db store.ReadOnlyKVStore, a quorum.Address) (bool, error) {
	own, err := r.Ownership(db)
	if err != nil {
		return false, err
	}
	return own.Index(a) != -1, nil
}

func (r Registry) save(db store.KVStore, own *Ownership) error {
	raw, err := json.Marshal(own)
	if err != nil {
		return errors.Wrap(err, "marshal ownership")
	}
	return db.Set(ownershipKey, raw)
}

// initialize persists the first governance state. Used by the engine
// constructor only.
func (r Registry) initialize(db store.KVStore, owners []quorum.Address, threshold uint32) error {
	own := Ownership{Owners: owners, Threshold: threshold}
	if err := own.Validate(); err != nil {
		return err
	}
	return r.save(db, &own)
}

// addOwner extends the owner set and replaces the threshold. The new
// threshold must be within [1, owners+1].
func (r Registry) addOwner(db store.KVStore, a quorum.Address, newThreshold uint32) ([]Event, error) {
	own, err := r.Ownership(db)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, errors.Wrapf(ErrInvalidOwner, "owner %s", a)
	}
	if own.Index(a) != -1 {
		return nil, errors.Wrapf(ErrInvalidOwner, "owner %s exists", a)
	}

	oldThreshold := own.Threshold
	own.Owners = append(own.Owners, a)
	own.Threshold = newThreshold
	if err := own.Validate(); err != nil {
		return nil, err
	}
	if err := r.save(db, own); err != nil {
		return nil, err
	}

	events := []Event{{Kind: EventOwnerAdded, Owner: a}}
	if newThreshold != oldThreshold {
		events = append(events, Event{Kind: EventThresholdChanged, Threshold: newThreshold})
	}
	return events, nil
}

// removeOwner shrinks the owner set. When the threshold exceeds the new
// owner count it is clamped down first, and only then the empty set check
// runs. A failed removal returns no events and writes nothing.
func (r Registry) removeOwner(db store.KVStore, a quorum.Address) ([]Event, error) {
	own, err := r.Ownership(db)
	if err != nil {
		return nil, err
	}
	idx := own.Index(a)
	if idx == -1 {
		return nil, errors.Wrapf(errors.ErrNotFound, "owner %s", a)
	}

	own.Owners = append(own.Owners[:idx], own.Owners[idx+1:]...)
	events := []Event{{Kind: EventOwnerRemoved, Owner: a}}
	if int(own.Threshold) > len(own.Owners) {
		own.Threshold = uint32(len(own.Owners))
		events = append(events, Event{Kind: EventThresholdChanged, Threshold: own.Threshold})
	}
	if len(own.Owners) == 0 {
		return nil, errors.Wrap(ErrInvalidOwner, "cannot remove the last owner")
	}
	if err := r.save(db, own); err != nil {
		return nil, err
	}
	return events, nil
}

// changeThreshold replaces the threshold. The new value must be within
// [1, number of owners].
func (r Registry) changeThreshold(db store.KVStore, newThreshold uint32) ([]Event, error) {
	own, err := r.Ownership(db)
	if err != nil {
		return nil, err
	}
	if newThreshold < 1 || int(newThreshold) > len(own.Owners) {
		return nil, errors.Wrapf(ErrInvalidThreshold, "threshold %d with %d owners",
			newThreshold, len(own.Owners))
	}
	own.Threshold = newThreshold
	if err := r.save(db, own); err != nil {
		return nil, err
	}
	return []Event{{Kind: EventThresholdChanged, Threshold: newThreshold}}, nil
}

package wallet

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/store"
)

var votePrefix = []byte("vote:")

// Ledger is the (proposal id, owner) -> approved relation. An owner
// contributes at most one unit to a proposal's approval count, no matter how
// many times they vote.
type Ledger struct{}

func voteKey(id int64, a quorum.Address) []byte {
	key := append(votePrefix, orm.EncodeSequence(id)...)
	return append(key, a...)
}

// HasApproved returns true iff the given owner currently approves the given
// proposal.
func (Ledger) HasApproved(db store.ReadOnlyKVStore, id int64, a quorum.Address) (bool, error) {
	ok, err := db.Has(voteKey(id, a))
	if err != nil {
		return false, errors.Wrap(err, "vote lookup")
	}
	return ok, nil
}

// approve records a yes vote. It must not be called when a vote is already
// recorded, so the approval count stays in sync with the relation.
func (Ledger) approve(db store.KVStore, id int64, a quorum.Address) error {
	return db.Set(voteKey(id, a), []byte{1})
}

// revoke clears a previously recorded yes vote.
func (Ledger) revoke(db store.KVStore, id int64, a quorum.Address) error {
	return db.Delete(voteKey(id, a))
}

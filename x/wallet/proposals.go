package wallet

import (
	"encoding/json"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/store"
)

var proposalPrefix = []byte("proposal:")

// Proposals is the append-only store of all submitted proposals, keyed by
// sequential ids starting at zero. Ids are never reused and proposals are
// never deleted.
type Proposals struct {
	seq orm.Sequence
}

func newProposals() Proposals {
	return Proposals{seq: orm.NewSequence("wallet", "proposal")}
}

func proposalKey(id int64) []byte {
	return append(proposalPrefix, orm.EncodeSequence(id)...)
}

// Create assigns the next id to the given proposal and persists it.
func (p *Proposals) Create(db store.KVStore, prop *Proposal) (int64, error) {
	if err := prop.Validate(); err != nil {
		return 0, err
	}
	id, err := p.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "proposal id")
	}
	if err := p.save(db, id, prop); err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the proposal with the given id.
func (p *Proposals) Get(db store.ReadOnlyKVStore, id int64) (*Proposal, error) {
	if id < 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	raw, err := db.Get(proposalKey(id))
	if err != nil {
		return nil, errors.Wrap(err, "proposal lookup")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	var prop Proposal
	if err := json.Unmarshal(raw, &prop); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "malformed proposal: %s", err)
	}
	return &prop, nil
}

// Count returns the number of proposals submitted so far.
func (p *Proposals) Count(db store.ReadOnlyKVStore) (int64, error) {
	return p.seq.Latest(db)
}

func (p *Proposals) save(db store.KVStore, id int64, prop *Proposal) error {
	raw, err := json.Marshal(prop)
	if err != nil {
		return errors.Wrap(err, "marshal proposal")
	}
	return db.Set(proposalKey(id), raw)
}

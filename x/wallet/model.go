package wallet

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// To avoid burning CPU, this is the maximum number of owners allowed to
// control a single wallet.
const maxOwnersAllowed = 100

// Ownership is the governance state of a wallet: the set of authorized
// owners and the number of distinct approvals a proposal needs before it can
// be executed.
type Ownership struct {
	Owners    []quorum.Address `json:"owners"`
	Threshold uint32           `json:"threshold"`
}

// Validate enforces owner and threshold boundaries. At any point in time a
// wallet has at least one owner and a threshold within [1, number of
// owners].
func (o *Ownership) Validate() error {
	switch n := len(o.Owners); {
	case n == 0:
		return errors.Wrap(ErrInvalidOwner, "no owners")
	case n > maxOwnersAllowed:
		return errors.Wrap(ErrInvalidOwner, "too many owners")
	}
	index := make(map[string]struct{}, len(o.Owners))
	for _, a := range o.Owners {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidOwner, "owner %s", a)
		}
		if _, ok := index[string(a)]; ok {
			return errors.Wrapf(ErrInvalidOwner, "duplicate owner %s", a)
		}
		index[string(a)] = struct{}{}
	}
	if o.Threshold < 1 || int(o.Threshold) > len(o.Owners) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d with %d owners",
			o.Threshold, len(o.Owners))
	}
	return nil
}

// Index returns the position of the given owner, or -1 when absent.
func (o *Ownership) Index(a quorum.Address) int {
	for i, owner := range o.Owners {
		if owner.Equals(a) {
			return i
		}
	}
	return -1
}

// Proposal is a recorded intent to perform a forwarded call. It is created
// by Submit, mutated only by votes and by the one-time executed flip, and
// never deleted.
type Proposal struct {
	Target  quorum.Address `json:"target"`
	Amount  int64          `json:"amount"`
	Payload []byte         `json:"payload,omitempty"`
	// Executed is monotonic. Once true the proposal is terminal.
	Executed bool `json:"executed"`
	// ApprovalCount always equals the number of owners with a recorded
	// approval for this proposal.
	ApprovalCount uint32 `json:"approval_count"`
}

func (p *Proposal) Validate() error {
	if err := p.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if p.Amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative amount %d", p.Amount)
	}
	return nil
}

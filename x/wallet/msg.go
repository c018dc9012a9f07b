package wallet

import (
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathAddOwnerMsg        = "wallet/add_owner"
	pathRemoveOwnerMsg     = "wallet/remove_owner"
	pathChangeThresholdMsg = "wallet/change_threshold"
)

// Msg is a governance message a wallet applies to itself. Governance
// messages travel as the payload of a proposal targeted at the wallet's own
// address and are enacted during Execute only.
type Msg interface {
	Path() string
	Validate() error
}

// AddOwnerMsg adds a new owner and replaces the threshold in one step.
type AddOwnerMsg struct {
	Owner quorum.Address `json:"owner"`
	// Threshold is the new threshold, valid within [1, owners+1].
	Threshold uint32 `json:"threshold"`
}

var _ Msg = (*AddOwnerMsg)(nil)

func (AddOwnerMsg) Path() string {
	return pathAddOwnerMsg
}

func (m *AddOwnerMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidOwner, "owner %s", m.Owner)
	}
	if m.Threshold < 1 {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d", m.Threshold)
	}
	return nil
}

// RemoveOwnerMsg removes an existing owner. If the threshold would exceed
// the remaining owner count it is clamped down.
type RemoveOwnerMsg struct {
	Owner quorum.Address `json:"owner"`
}

var _ Msg = (*RemoveOwnerMsg)(nil)

func (RemoveOwnerMsg) Path() string {
	return pathRemoveOwnerMsg
}

func (m *RemoveOwnerMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidOwner, "owner %s", m.Owner)
	}
	return nil
}

// ChangeThresholdMsg replaces the approval threshold.
type ChangeThresholdMsg struct {
	Threshold uint32 `json:"threshold"`
}

var _ Msg = (*ChangeThresholdMsg)(nil)

func (ChangeThresholdMsg) Path() string {
	return pathChangeThresholdMsg
}

func (m *ChangeThresholdMsg) Validate() error {
	if m.Threshold < 1 {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d", m.Threshold)
	}
	return nil
}

// envelope is the wire format of a governance payload.
type envelope struct {
	Path string          `json:"path"`
	Body json.RawMessage `json:"body"`
}

// MarshalMsg encodes a governance message into a proposal payload.
func MarshalMsg(msg Msg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal body")
	}
	raw, err := json.Marshal(envelope{Path: msg.Path(), Body: body})
	if err != nil {
		return nil, errors.Wrap(err, "marshal envelope")
	}
	return raw, nil
}

// unmarshalMsg decodes a self-call proposal payload into a governance
// message.
func unmarshalMsg(payload []byte) (Msg, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "malformed payload: %s", err)
	}

	var msg Msg
	switch env.Path {
	case pathAddOwnerMsg:
		msg = &AddOwnerMsg{}
	case pathRemoveOwnerMsg:
		msg = &RemoveOwnerMsg{}
	case pathChangeThresholdMsg:
		msg = &ChangeThresholdMsg{}
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "unknown path %q", env.Path)
	}
	if err := json.Unmarshal(env.Body, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "malformed body: %s", err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

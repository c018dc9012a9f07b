package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

func testAddr(seed byte) quorum.Address {
	return quorum.NewAddress([]byte{seed})
}

func TestOwnershipValidate(t *testing.T) {
	a, b, c := testAddr(1), testAddr(2), testAddr(3)

	cases := map[string]struct {
		own     Ownership
		wantErr *errors.Error
	}{
		"valid ownership": {
			own: Ownership{Owners: []quorum.Address{a, b, c}, Threshold: 2},
		},
		"single owner": {
			own: Ownership{Owners: []quorum.Address{a}, Threshold: 1},
		},
		"no owners": {
			own:     Ownership{Threshold: 1},
			wantErr: ErrInvalidOwner,
		},
		"empty owner address": {
			own:     Ownership{Owners: []quorum.Address{a, nil}, Threshold: 1},
			wantErr: ErrInvalidOwner,
		},
		"duplicate owner": {
			own:     Ownership{Owners: []quorum.Address{a, b, a}, Threshold: 2},
			wantErr: ErrInvalidOwner,
		},
		"zero threshold": {
			own:     Ownership{Owners: []quorum.Address{a, b}, Threshold: 0},
			wantErr: ErrInvalidThreshold,
		},
		"threshold above owner count": {
			own:     Ownership{Owners: []quorum.Address{a, b}, Threshold: 3},
			wantErr: ErrInvalidThreshold,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.own.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestOwnershipIndex(t *testing.T) {
	a, b := testAddr(1), testAddr(2)
	own := Ownership{Owners: []quorum.Address{a, b}, Threshold: 1}

	assert.Equal(t, 0, own.Index(a))
	assert.Equal(t, 1, own.Index(b))
	assert.Equal(t, -1, own.Index(testAddr(9)))
}

func TestProposalValidate(t *testing.T) {
	cases := map[string]struct {
		prop    Proposal
		wantErr *errors.Error
	}{
		"valid proposal": {
			prop: Proposal{Target: testAddr(1), Amount: 5, Payload: []byte("data")},
		},
		"empty payload is fine": {
			prop: Proposal{Target: testAddr(1)},
		},
		"missing target": {
			prop:    Proposal{Amount: 5},
			wantErr: errors.ErrEmpty,
		},
		"negative amount": {
			prop:    Proposal{Target: testAddr(1), Amount: -1},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.prop.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/quorum/errors"
)

func TestMsgRoundTrip(t *testing.T) {
	cases := map[string]struct {
		msg Msg
	}{
		"add owner": {
			msg: &AddOwnerMsg{Owner: testAddr(7), Threshold: 2},
		},
		"remove owner": {
			msg: &RemoveOwnerMsg{Owner: testAddr(7)},
		},
		"change threshold": {
			msg: &ChangeThresholdMsg{Threshold: 3},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := MarshalMsg(tc.msg)
			require.NoError(t, err)

			got, err := unmarshalMsg(raw)
			require.NoError(t, err)
			assert.Equal(t, tc.msg, got)
		})
	}
}

func TestMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     Msg
		wantErr *errors.Error
	}{
		"add owner with empty address": {
			msg:     &AddOwnerMsg{Threshold: 1},
			wantErr: ErrInvalidOwner,
		},
		"add owner with zero threshold": {
			msg:     &AddOwnerMsg{Owner: testAddr(7)},
			wantErr: ErrInvalidThreshold,
		},
		"remove owner with empty address": {
			msg:     &RemoveOwnerMsg{},
			wantErr: ErrInvalidOwner,
		},
		"change to zero threshold": {
			msg:     &ChangeThresholdMsg{},
			wantErr: ErrInvalidThreshold,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			// marshalling refuses invalid messages as well
			if _, err := MarshalMsg(tc.msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected marshal error: %+v", err)
			}
		})
	}
}

func TestUnmarshalMsgRejectsGarbage(t *testing.T) {
	cases := map[string]struct {
		payload []byte
	}{
		"empty payload":   {payload: nil},
		"not json":        {payload: []byte("send it all to me")},
		"unknown path":    {payload: []byte(`{"path":"wallet/steal","body":{}}`)},
		"malformed body":  {payload: []byte(`{"path":"wallet/change_threshold","body":[1]}`)},
		"invalid message": {payload: []byte(`{"path":"wallet/change_threshold","body":{"threshold":0}}`)},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if _, err := unmarshalMsg(tc.payload); err == nil {
				t.Fatal("error expected")
			}
		})
	}
}

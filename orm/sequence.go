/*
Package orm holds the thin persistence helpers shared by state buckets.
*/
package orm

import (
	"encoding/binary"

	"github.com/iov-one/quorum/store"
)

// Sequence maintains a counter and generates a series of keys. Each key is
// greater than the last, both NextInt() as well as bytes.Compare() on
// NextVal(). The first issued value is zero.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using the following
// pattern to construct its own storage key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal issues the next sequence value as 8 bytes.
func (s *Sequence) NextVal(db store.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt issues the next sequence value as int.
func (s *Sequence) NextInt(db store.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the number of values issued so far. This method does not
// modify the sequence state. Use NextVal or NextInt to acquire a sequence
// value that was not given to anyone else.
func (s *Sequence) Latest(db store.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw), nil
}

func (s *Sequence) increment(db store.KVStore, inc int64) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, err
	}
	// the stored state is the count of issued values, so the issued
	// value is the state before incrementation
	val := DecodeSequence(raw)
	err = db.Set(s.id, EncodeSequence(val+inc))
	return val, EncodeSequence(val), err
}

// DecodeSequence interprets raw bytes as a sequence state. Nil means zero.
func DecodeSequence(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val)
}

// EncodeSequence converts a sequence state into its binary representation.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

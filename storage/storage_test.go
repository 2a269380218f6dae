package storage_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagarinchain/liveness/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	s, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	key := storage.Uint32ToBytes(7)
	if err := s.Put(storage.ReceivedHeartbeat, key, []byte("proof")); err != nil {
		t.Error(err)
	}

	value, e := s.Get(storage.ReceivedHeartbeat, key)
	require.NoError(t, e)
	assert.Equal(t, []byte("proof"), value)
	assert.True(t, s.Contains(storage.ReceivedHeartbeat, key))

	spew.Dump(s.Stats())
}

func TestResourceTypesAreIsolated(t *testing.T) {
	s, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	key := storage.Uint32ToBytes(1)
	require.NoError(t, s.Put(storage.ReceivedHeartbeat, key, []byte("a")))

	assert.False(t, s.Contains(storage.CurrentSession, key))
	keys := s.Keys(storage.CurrentSession, nil)
	assert.Empty(t, keys)
}

func TestKeysStripResourcePrefix(t *testing.T) {
	s, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	session := storage.Uint32ToBytes(3)
	for i := uint32(0); i < 3; i++ {
		key := append(append([]byte(nil), session...), storage.Uint32ToBytes(i)...)
		require.NoError(t, s.Put(storage.ReceivedHeartbeat, key, []byte{byte(i)}))
	}
	require.NoError(t, s.Put(storage.ReceivedHeartbeat, storage.Uint32ToBytes(4), []byte("other")))

	keys := s.Keys(storage.ReceivedHeartbeat, session)
	require.Len(t, keys, 3)
	for i, key := range keys {
		assert.Equal(t, session, key[:4])
		assert.Equal(t, uint32(i), storage.BytesToUint32(key[4:]))
	}
}

func TestDelete(t *testing.T) {
	s, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	key := storage.Uint32ToBytes(9)
	require.NoError(t, s.Put(storage.CurrentSession, key, []byte("x")))
	require.NoError(t, s.Delete(storage.CurrentSession, key))
	assert.False(t, s.Contains(storage.CurrentSession, key))
}

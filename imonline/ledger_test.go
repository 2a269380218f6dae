package imonline_test

import (
	"sync"
	"testing"

	"github.com/gagarinchain/liveness/imonline"
	"github.com/gagarinchain/liveness/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIfAbsent(t *testing.T) {
	ledger := imonline.NewLedger(nil)
	sh := signedHeartbeat(t, 1, 2, 0, generateCommittee(t, 1)[0].GetPrivateKey())

	assert.True(t, ledger.RecordIfAbsent(2, 0, sh))
	assert.True(t, ledger.Contains(2, 0))

	// second proof for the same key is rejected, original entry untouched
	other := signedHeartbeat(t, 5, 2, 0, generateCommittee(t, 1)[0].GetPrivateKey())
	assert.False(t, ledger.RecordIfAbsent(2, 0, other))

	got, found := ledger.Get(2, 0)
	require.True(t, found)
	assert.Equal(t, sh.GetHeartbeat().GetBlockNumber(), got.GetHeartbeat().GetBlockNumber())
}

func TestRecordMarker(t *testing.T) {
	ledger := imonline.NewLedger(nil)

	assert.True(t, ledger.RecordIfAbsent(1, 3, nil))
	assert.True(t, ledger.Contains(1, 3))

	proof, found := ledger.Get(1, 3)
	assert.True(t, found)
	assert.Nil(t, proof)
}

func TestSessionsAreIsolated(t *testing.T) {
	ledger := imonline.NewLedger(nil)

	assert.True(t, ledger.RecordIfAbsent(1, 0, nil))
	assert.False(t, ledger.Contains(2, 0))
	assert.True(t, ledger.RecordIfAbsent(2, 0, nil))
}

func TestPrune(t *testing.T) {
	ledger := imonline.NewLedger(nil)

	ledger.RecordIfAbsent(1, 0, nil)
	ledger.RecordIfAbsent(1, 1, nil)
	ledger.RecordIfAbsent(2, 0, nil)

	ledger.Prune(1)

	assert.False(t, ledger.Contains(1, 0))
	assert.False(t, ledger.Contains(1, 1))
	assert.True(t, ledger.Contains(2, 0))

	// idempotent, never-populated sessions included
	ledger.Prune(1)
	ledger.Prune(42)
}

func TestNoRecordAfterPrune(t *testing.T) {
	ledger := imonline.NewLedger(nil)

	assert.True(t, ledger.RecordIfAbsent(7, 0, nil))
	ledger.Prune(7)

	// a heartbeat racing the rotation must not resurrect the session
	assert.False(t, ledger.RecordIfAbsent(7, 1, nil))
	assert.False(t, ledger.Contains(7, 1))

	// earlier sessions are retired along with it
	assert.False(t, ledger.RecordIfAbsent(6, 0, nil))

	// the next session is unaffected
	assert.True(t, ledger.RecordIfAbsent(8, 0, nil))
}

func TestOnlineIndicesOrdered(t *testing.T) {
	ledger := imonline.NewLedger(nil)

	for _, i := range []uint32{5, 1, 3, 0} {
		ledger.RecordIfAbsent(7, i, nil)
	}
	assert.Equal(t, []uint32{0, 1, 3, 5}, ledger.OnlineIndices(7))
}

func TestRecordIfAbsentConcurrent(t *testing.T) {
	ledger := imonline.NewLedger(nil)

	const attempts = 64
	wins := make(chan bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- ledger.RecordIfAbsent(1, 0, nil)
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	assert.Equal(t, 1, won)
	assert.True(t, ledger.Contains(1, 0))
}

func TestLedgerPersistence(t *testing.T) {
	store, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	defer store.Close()

	key := generateCommittee(t, 1)[0].GetPrivateKey()
	sh := signedHeartbeat(t, 1, 3, 2, key)

	ledger := imonline.NewLedger(store)
	ledger.RecordIfAbsent(3, 2, sh)
	ledger.RecordIfAbsent(3, 4, nil)

	// restart within the session
	restored := imonline.NewLedger(store)
	require.NoError(t, restored.Load(3))

	assert.True(t, restored.Contains(3, 2))
	assert.True(t, restored.Contains(3, 4))

	proof, found := restored.Get(3, 2)
	require.True(t, found)
	assert.Equal(t, sh.GetSignature().GetFrom(), proof.GetSignature().GetFrom())

	// prune clears persisted entries too
	restored.Prune(3)
	again := imonline.NewLedger(store)
	require.NoError(t, again.Load(3))
	assert.False(t, again.Contains(3, 2))
}

func TestSessionIndexSurvivesRestart(t *testing.T) {
	store, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	defer store.Close()

	ledger := imonline.NewLedger(store)
	assert.Equal(t, uint32(0), ledger.RestoreSession())

	ledger.StoreSession(9)

	restored := imonline.NewLedger(store)
	assert.Equal(t, uint32(9), restored.RestoreSession())
}

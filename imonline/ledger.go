package imonline

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/gagarinchain/liveness/storage"
	"github.com/gogo/protobuf/proto"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("imonline")

// Ledger holds proofs of liveness keyed by (session, validator index).
// It is the single piece of shared mutable state of the service;
// RecordIfAbsent is the only mutation primitive and is atomic per key.
//
// A nil proof is a marker entry sourced from author/uncle evidence.
// Entries for a session live until Prune(session) is called, which the
// session boundary handler does strictly after offender computation.
// Pruning retires the session: records for it or any earlier session are
// refused afterward, so a heartbeat applied concurrently with rotation
// cannot resurrect evidence for a session that was already pruned.
type Ledger struct {
	lock       sync.RWMutex
	sessions   map[uint32]*treemap.Map
	retired    uint32
	hasRetired bool
	storage    storage.Storage
}

// NewLedger creates a ledger. A nil storage disables write-through
// persistence, the in-memory table is authoritative either way.
func NewLedger(s storage.Storage) *Ledger {
	return &Ledger{
		sessions: make(map[uint32]*treemap.Map),
		storage:  s,
	}
}

// RecordIfAbsent inserts the proof (or a nil marker) and returns true iff no
// entry existed yet for (session, index). The losing side of a concurrent
// race observes false and no mutation. Records for retired sessions are
// refused.
func (l *Ledger) RecordIfAbsent(session uint32, index uint32, proof *pb.SignedHeartbeat) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.hasRetired && session <= l.retired {
		return false
	}

	entries, ok := l.sessions[session]
	if !ok {
		entries = treemap.NewWith(utils.UInt32Comparator)
		l.sessions[session] = entries
	}

	if _, found := entries.Get(index); found {
		return false
	}
	entries.Put(index, proof)
	l.persist(session, index, proof)

	return true
}

// Contains reports whether the validator at index has proven liveness in
// the given session.
func (l *Ledger) Contains(session uint32, index uint32) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()

	entries, ok := l.sessions[session]
	if !ok {
		return false
	}
	_, found := entries.Get(index)
	return found
}

// Get returns the recorded proof for (session, index). The bool reports
// presence; a present entry may still carry a nil proof (marker).
func (l *Ledger) Get(session uint32, index uint32) (*pb.SignedHeartbeat, bool) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	entries, ok := l.sessions[session]
	if !ok {
		return nil, false
	}
	v, found := entries.Get(index)
	if !found {
		return nil, false
	}
	proof, _ := v.(*pb.SignedHeartbeat)
	return proof, true
}

// OnlineIndices returns the indices proven live in the session, ascending.
func (l *Ledger) OnlineIndices(session uint32) (indices []uint32) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	entries, ok := l.sessions[session]
	if !ok {
		return nil
	}
	for _, k := range entries.Keys() {
		indices = append(indices, k.(uint32))
	}
	return indices
}

// Prune drops every entry for the session and retires it, closing the door
// on late records. Idempotent.
func (l *Ledger) Prune(session uint32) {
	l.lock.Lock()
	defer l.lock.Unlock()

	delete(l.sessions, session)
	if !l.hasRetired || session > l.retired {
		l.retired = session
		l.hasRetired = true
	}

	if l.storage == nil {
		return
	}
	prefix := storage.Uint32ToBytes(session)
	for _, key := range l.storage.Keys(storage.ReceivedHeartbeat, prefix) {
		if err := l.storage.Delete(storage.ReceivedHeartbeat, key); err != nil {
			log.Warningf("Can't prune entry for session %d: %v", session, err)
		}
	}
}

// Load restores entries persisted for the session, used on restart within
// a session. Already loaded entries are left untouched.
func (l *Ledger) Load(session uint32) error {
	if l.storage == nil {
		return nil
	}

	prefix := storage.Uint32ToBytes(session)
	for _, key := range l.storage.Keys(storage.ReceivedHeartbeat, prefix) {
		value, err := l.storage.Get(storage.ReceivedHeartbeat, key)
		if err != nil {
			return err
		}
		entry := &pb.LivenessEntry{}
		if err := proto.Unmarshal(value, entry); err != nil {
			return err
		}
		l.RecordIfAbsent(entry.SessionIndex, entry.ValidatorIndex, entry.GetProof())
	}
	return nil
}

var currentSessionKey = []byte("session")

// StoreSession persists the active session index so a restart resumes
// within the session it went down in.
func (l *Ledger) StoreSession(session uint32) {
	if l.storage == nil {
		return
	}
	if err := l.storage.Put(storage.CurrentSession, currentSessionKey, storage.Uint32ToBytes(session)); err != nil {
		log.Warningf("Can't persist session index: %v", err)
	}
}

// RestoreSession returns the persisted session index, zero when nothing was
// stored yet.
func (l *Ledger) RestoreSession() uint32 {
	if l.storage == nil {
		return 0
	}
	value, err := l.storage.Get(storage.CurrentSession, currentSessionKey)
	if err != nil {
		return 0
	}
	return storage.BytesToUint32(value)
}

func (l *Ledger) persist(session uint32, index uint32, proof *pb.SignedHeartbeat) {
	if l.storage == nil {
		return
	}

	entry := &pb.LivenessEntry{
		SessionIndex:   session,
		ValidatorIndex: index,
		Proof:          proof,
	}
	value, err := proto.Marshal(entry)
	if err != nil {
		log.Error("Can't marshal liveness entry", err)
		return
	}
	key := append(storage.Uint32ToBytes(session), storage.Uint32ToBytes(index)...)
	if err := l.storage.Put(storage.ReceivedHeartbeat, key, value); err != nil {
		log.Warningf("Can't persist liveness entry: %v", err)
	}
}

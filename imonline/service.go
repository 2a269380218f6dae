package imonline

import (
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/liveness/common"
	pb "github.com/gagarinchain/liveness/message/protobuff"
)

// Service tracks liveness of the current session's validator set and turns
// the complement into an offence report at each session boundary.
//
// The session rotation collaborator must drive it with OnSessionAboutToEnd
// followed by OnSessionEnded, in that order, on every rotation. The
// authorship collaborator feeds NoteAuthor/NoteUncle. Heartbeats enter
// through Admission (see handler.go for the network path).
type Service struct {
	lock      sync.RWMutex
	ledger    *Ledger
	admission *Admission
	collector OffenceCollector

	sessionIndex uint32
	validators   []*common.Peer
}

func NewService(ledger *Ledger, collector OffenceCollector, sessionIndex uint32, validators []*common.Peer) *Service {
	s := &Service{
		ledger:       ledger,
		collector:    collector,
		sessionIndex: sessionIndex,
		validators:   validators,
	}
	s.admission = NewAdmission(ledger, s)
	return s
}

func (s *Service) Ledger() *Ledger {
	return s.ledger
}

func (s *Service) Admission() *Admission {
	return s.admission
}

// CurrentIndex returns the active session index.
func (s *Service) CurrentIndex() uint32 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.sessionIndex
}

// Validators returns the active session's ordered validator set.
func (s *Service) Validators() []*common.Peer {
	s.lock.RLock()
	defer s.lock.RUnlock()

	validators := make([]*common.Peer, len(s.validators))
	copy(validators, s.validators)
	return validators
}

// IsOnline reports whether the validator at index has proven liveness in
// the current session. Exposed for diagnostics and other modules.
func (s *Service) IsOnline(index uint32) bool {
	return s.ledger.Contains(s.CurrentIndex(), index)
}

// ReceivedHeartbeat returns the proof recorded for (session, index), if any.
// Marker entries from authorship evidence yield (nil, true).
func (s *Service) ReceivedHeartbeat(session uint32, index uint32) (*pb.SignedHeartbeat, bool) {
	return s.ledger.Get(session, index)
}

// NoteAuthor marks the block author live. Authored-block evidence is the
// runtime's own trusted proof of participation, no signature is checked.
// Identities outside the current set are ignored.
func (s *Service) NoteAuthor(identity ethcommon.Address) {
	s.noteOnline(identity)
}

// NoteUncle marks an uncle producer live. Depth is forwarded by the
// authorship collaborator for telemetry only.
func (s *Service) NoteUncle(identity ethcommon.Address, depth uint64) {
	s.noteOnline(identity)
}

func (s *Service) noteOnline(identity ethcommon.Address) {
	s.lock.RLock()
	session := s.sessionIndex
	index, found := resolveIndex(s.validators, identity)
	s.lock.RUnlock()

	if !found {
		log.Debugf("Identity %v is not in the current validator set, skipping", identity.Hex())
		return
	}
	s.ledger.RecordIfAbsent(session, index, nil)
}

// OnSessionAboutToEnd computes the set of validators that never proved
// liveness during the still-active session and reports them. No report is
// emitted when everyone is online. The ledger is left untouched, pruning
// belongs to OnSessionEnded.
func (s *Service) OnSessionAboutToEnd() {
	s.lock.RLock()
	session := s.sessionIndex
	validators := s.validators
	s.lock.RUnlock()

	var offenders []*Offender
	for i, v := range validators {
		if s.ledger.Contains(session, uint32(i)) {
			continue
		}
		offenders = append(offenders, &Offender{GlobalId: v.GetAddress(), Identity: v})
	}

	if len(offenders) == 0 {
		log.Debugf("All %d validators online in session %d", len(validators), session)
		return
	}

	offence := &UnresponsivenessOffence{
		SessionIndex:      session,
		ValidatorSetCount: uint32(len(validators)),
		Offenders:         offenders,
	}
	log.Infof("Session %d ending with %d of %d validators unresponsive, slash fraction %v",
		session, len(offenders), len(validators), offence.SlashFraction())

	// reporter list is reserved for future per-offence context, always empty
	s.collector.ReportOffence([]ethcommon.Address{}, offence)
}

// OnSessionEnded prunes the closed session's evidence and activates the new
// validator set. Must only be called after OnSessionAboutToEnd for the same
// session, otherwise the evidence is erased before it is used.
func (s *Service) OnSessionEnded(newIndex uint32, newValidators []*common.Peer) {
	s.lock.Lock()
	ended := s.sessionIndex
	if newIndex <= ended {
		log.Warningf("Session index must advance, got %d after %d", newIndex, ended)
	}
	s.sessionIndex = newIndex
	s.validators = newValidators
	s.lock.Unlock()

	s.ledger.StoreSession(newIndex)
	s.ledger.Prune(ended)
	log.Infof("Session %d started with %d validators", newIndex, len(newValidators))
}

func resolveIndex(validators []*common.Peer, identity ethcommon.Address) (uint32, bool) {
	for i, v := range validators {
		if v.GetAddress() == identity {
			return uint32(i), true
		}
	}
	return 0, false
}

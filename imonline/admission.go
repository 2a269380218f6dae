package imonline

import (
	"bytes"

	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/common/crypto"
	pb "github.com/gagarinchain/liveness/message/protobuff"
)

// SessionProvider exposes the session state admission validates against.
// Implemented by Service, substituted in tests.
type SessionProvider interface {
	CurrentIndex() uint32
	Validators() []*common.Peer
}

// Admission guards every mutation of the ledger by incoming heartbeats.
// Validation is split in two phases so that untrusted proofs can be
// rejected cheaply at the network boundary (PreCheck) before the proof is
// applied (Apply). Both phases can run standalone; Apply re-validates
// freshness because the session may rotate between them.
type Admission struct {
	ledger  *Ledger
	session SessionProvider
}

func NewAdmission(ledger *Ledger, session SessionProvider) *Admission {
	return &Admission{ledger: ledger, session: session}
}

// PreCheck validates a candidate proof without side effects.
// Rejections, in checking order: ErrStale when the claimed session is not
// the current one (past and future alike), ErrBadSignature when the
// signature does not verify against the authority key registered for the
// claimed index, ErrDuplicateIndex when that validator already proved
// liveness this session.
func (a *Admission) PreCheck(sh *pb.SignedHeartbeat) error {
	hb := sh.GetHeartbeat()

	current := a.session.CurrentIndex()
	if hb.GetSessionIndex() != current {
		return ErrStale
	}

	validators := a.session.Validators()
	index := hb.GetValidatorIndex()
	if index >= uint32(len(validators)) {
		return ErrBadSignature
	}

	registered := validators[index].PublicKey()
	if registered == nil || !bytes.Equal(registered.Bytes(), sh.GetSignature().GetFrom()) {
		return ErrBadSignature
	}

	hash, e := HeartbeatHash(hb)
	if e != nil {
		return ErrBadSignature
	}
	sig := crypto.SignatureFromProto(sh.GetSignature())
	if sig == nil || !crypto.Verify(hash, sig) {
		return ErrBadSignature
	}

	if a.ledger.Contains(current, index) {
		return ErrDuplicateIndex
	}

	return nil
}

// Apply records a pre-checked proof. Freshness is checked again since the
// session may have rotated after PreCheck; a lost record race surfaces as
// ErrDuplicateIndex, which is expected and harmless.
func (a *Admission) Apply(sh *pb.SignedHeartbeat) error {
	hb := sh.GetHeartbeat()

	current := a.session.CurrentIndex()
	if hb.GetSessionIndex() != current {
		return ErrStale
	}

	if !a.ledger.RecordIfAbsent(current, hb.GetValidatorIndex(), sh) {
		return ErrDuplicateIndex
	}
	return nil
}

package imonline

import (
	"context"

	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/common/crypto"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/pkg/errors"
)

type SubmissionStatus int

const (
	// Sent means a heartbeat was handed to the submitter for this identity.
	Sent SubmissionStatus = iota
	// AlreadyOnline means the identity is proven live already, nothing was
	// sent. Not a failure.
	AlreadyOnline
	// NotValidator means the identity is not part of the current set.
	NotValidator
	// SigningFailed and SubmissionFailed are local infrastructure errors,
	// they never abort the remaining identities of the same pass.
	SigningFailed
	SubmissionFailed
)

// SubmissionResult is the per-identity outcome of a generation pass.
// Callers get one result per local identity, a failure for one identity
// must not hide the outcomes of the others.
type SubmissionResult struct {
	Identity *common.Peer
	Index    uint32
	Status   SubmissionStatus
	Err      error
}

// LocalSigner signs with the authority key held in the peer itself.
type LocalSigner struct {
}

func (s *LocalSigner) SignHash(p *common.Peer, hash []byte) (*crypto.Signature, error) {
	key := p.GetPrivateKey()
	if key == nil {
		return nil, errors.Errorf("no private key for %v", p.GetAddress().Hex())
	}
	sig := crypto.Sign(hash, key)
	if sig == nil {
		return nil, errors.New("signing failed")
	}
	return sig, nil
}

// Generator is the background heartbeat duty. It runs once per produced
// block; for every locally controlled identity that holds a slot in the
// current validator set and is not yet proven live it signs and submits one
// heartbeat. Submission is best effort: nothing is retried within a block,
// the next block's pass naturally retries until the identity is live or the
// session rotates.
type Generator struct {
	session   SessionProvider
	ledger    *Ledger
	locals    []*common.Peer
	signer    Signer
	submitter Submitter
	stater    NetworkStater
}

func NewGenerator(session SessionProvider, ledger *Ledger, locals []*common.Peer,
	signer Signer, submitter Submitter, stater NetworkStater) *Generator {
	return &Generator{
		session:   session,
		ledger:    ledger,
		locals:    locals,
		signer:    signer,
		submitter: submitter,
		stater:    stater,
	}
}

// SendHeartbeats makes one generation pass for the given block and returns
// one result per local identity. At most one proof per identity is
// submitted; two identities resolving to the same validator slot within a
// pass produce a single submission.
func (g *Generator) SendHeartbeats(ctx context.Context, blockNumber uint64) []*SubmissionResult {
	session := g.session.CurrentIndex()
	validators := g.session.Validators()

	var results []*SubmissionResult
	attempted := make(map[uint32]bool)

	for _, local := range g.locals {
		index, found := resolveIndex(validators, local.GetAddress())
		if !found {
			results = append(results, &SubmissionResult{Identity: local, Status: NotValidator})
			continue
		}

		res := &SubmissionResult{Identity: local, Index: index}
		results = append(results, res)

		if attempted[index] || g.ledger.Contains(session, index) {
			res.Status = AlreadyOnline
			continue
		}
		attempted[index] = true

		hb := CreateHeartbeat(blockNumber, g.stater.NetworkState(), session, index)
		hash, e := HeartbeatHash(hb)
		if e != nil {
			res.Status = SigningFailed
			res.Err = e
			continue
		}

		sig, e := g.signer.SignHash(local, hash)
		if e != nil {
			log.Warningf("Can't sign heartbeat for %v: %v", local.GetAddress().Hex(), e)
			res.Status = SigningFailed
			res.Err = e
			continue
		}

		sh := &pb.SignedHeartbeat{Heartbeat: hb, Signature: sig.ToProto()}
		if e := g.submitter.SubmitHeartbeat(ctx, sh); e != nil {
			log.Warningf("Can't submit heartbeat for %v: %v", local.GetAddress().Hex(), e)
			res.Status = SubmissionFailed
			res.Err = e
			continue
		}

		log.Debugf("Submitted heartbeat for validator %d at block %d of session %d", index, blockNumber, session)
		res.Status = Sent
	}

	return results
}

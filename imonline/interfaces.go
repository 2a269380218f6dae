package imonline

import (
	"context"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/common/crypto"
	pb "github.com/gagarinchain/liveness/message/protobuff"
)

// OffenceCollector is the external slashing subsystem. It owns the offence
// once ReportOffence returns.
type OffenceCollector interface {
	ReportOffence(reporters []ethcommon.Address, offence *UnresponsivenessOffence)
}

// Submitter hands a signed heartbeat to the transaction submission
// collaborator. Fire and forget: no retries, no inclusion confirmation.
type Submitter interface {
	SubmitHeartbeat(ctx context.Context, sh *pb.SignedHeartbeat) error
}

// Signer signs a heartbeat hash with the authority key of a locally
// controlled identity.
type Signer interface {
	SignHash(p *common.Peer, hash []byte) (*crypto.Signature, error)
}

// NetworkStater reports the node's self-observed network identity, carried
// in heartbeats for diagnostics only.
type NetworkStater interface {
	NetworkState() *pb.NetworkState
}

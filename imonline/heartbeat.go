package imonline

import (
	"github.com/gagarinchain/liveness/common/crypto"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// CreateHeartbeat assembles the liveness proof payload for the given block
// and identity slot. The network state is diagnostic only.
func CreateHeartbeat(blockNumber uint64, state *pb.NetworkState, session uint32, index uint32) *pb.Heartbeat {
	return &pb.Heartbeat{
		BlockNumber:    blockNumber,
		NetworkState:   state,
		SessionIndex:   session,
		ValidatorIndex: index,
	}
}

// HeartbeatHash is the canonical signing hash of a heartbeat: keccak over
// its protobuf encoding. Both generation and admission must use it.
func HeartbeatHash(hb *pb.Heartbeat) ([]byte, error) {
	b, e := proto.Marshal(hb)
	if e != nil {
		return nil, errors.Wrap(e, "error while marshalling heartbeat")
	}
	return crypto.Keccak256(b), nil
}

// SignHeartbeat produces the detached signature that travels with the
// heartbeat. The transaction envelope stays unsigned, this signature alone
// carries authenticity.
func SignHeartbeat(hb *pb.Heartbeat, key *crypto.PrivateKey) (*pb.SignedHeartbeat, error) {
	hash, e := HeartbeatHash(hb)
	if e != nil {
		return nil, e
	}
	sig := crypto.Sign(hash, key)
	if sig == nil {
		return nil, errors.New("can't sign heartbeat")
	}
	return &pb.SignedHeartbeat{Heartbeat: hb, Signature: sig.ToProto()}, nil
}

// ParseSignedHeartbeat decodes a heartbeat message payload.
func ParseSignedHeartbeat(payload []byte) (*pb.SignedHeartbeat, error) {
	sh := &pb.SignedHeartbeat{}
	if e := proto.Unmarshal(payload, sh); e != nil {
		return nil, errors.Wrap(e, "can't deserialize heartbeat")
	}
	if sh.GetHeartbeat() == nil || sh.GetSignature() == nil {
		return nil, errors.New("incomplete heartbeat")
	}
	return sh, nil
}

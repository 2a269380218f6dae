package imonline_test

import (
	"crypto/rand"
	"testing"

	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/common/crypto"
	"github.com/gagarinchain/liveness/imonline"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/stretchr/testify/require"
)

func generateCommittee(t *testing.T, n int) []*common.Peer {
	var peers []*common.Peer
	for i := 0; i < n; i++ {
		key, e := crypto.GenerateKey(rand.Reader)
		require.NoError(t, e)
		peers = append(peers, common.CreatePeer(key.PublicKey(), key, nil))
	}
	return peers
}

func networkState() *pb.NetworkState {
	return &pb.NetworkState{PeerId: []byte{1}}
}

func signedHeartbeat(t *testing.T, block uint64, session uint32, index uint32, key *crypto.PrivateKey) *pb.SignedHeartbeat {
	hb := imonline.CreateHeartbeat(block, networkState(), session, index)
	sh, e := imonline.SignHeartbeat(hb, key)
	require.NoError(t, e)
	return sh
}

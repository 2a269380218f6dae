package network

import (
	"github.com/gagarinchain/liveness/common"
	"github.com/libp2p/go-libp2p-core/crypto"
	"github.com/multiformats/go-multiaddr"
)

// NodeConfig contains basic configuration information that we'll need to
// start our node.
type NodeConfig struct {
	// Port specifies the port used for incoming connections.
	Port uint16

	// PrivateKey is the libp2p identity key to initialize the node with.
	// Typically this will be persisted somewhere and loaded from disk on
	// startup.
	PrivateKey crypto.PrivKey

	// DataDir is the path to a directory to store node data.
	DataDir string

	// External address outside NAT.
	ExternalMultiaddr multiaddr.Multiaddr

	// Committee members whose addresses seed peer discovery.
	Committee []*common.Peer

	// MinPeers is the connectivity floor the bootstrapper maintains.
	// Zero leaves the default threshold in place.
	MinPeers int
}

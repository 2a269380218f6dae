package network

import (
	"context"
	"fmt"
	"path"

	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/message"
	"github.com/ipfs/go-datastore"
	leveldb "github.com/ipfs/go-ds-leveldb"
	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p-core/crypto"
	"github.com/libp2p/go-libp2p-core/host"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/multiformats/go-multiaddr"
)

type Node struct {
	// Host is the main libp2p instance which handles all our networking.
	// It will require some configuration to set it up. Once set up we
	// can register new protocol handlers with it.
	Host host.Host

	// Routing is a Kademlia DHT, used to discover peers subscribed to the
	// liveness topic.
	Routing *dht.IpfsDHT

	// PubSub is an instance of gossipsub which uses the DHT to find
	// subscribers of topics and spreads messages via gossip.
	PubSub *GossipDhtPubSub

	// PrivateKey is the identity private key for this node
	PrivateKey crypto.PrivKey

	// Datastore backs the DHT routing records.
	Datastore datastore.Batching

	// Dispatcher wires incoming messages to the registered handlers.
	Dispatcher *message.Dispatcher

	Identity *common.Peer

	bootstrapPeers []*common.Peer
	minPeers       int
}

func CreateNode(config *NodeConfig) (*Node, error) {
	opts := []libp2p.Option{
		// Listen on all interfaces on both IPv4 and IPv6.
		libp2p.ListenAddrStrings(fmt.Sprintf("/ip4/0.0.0.0/tcp/%d", config.Port)),
		libp2p.ListenAddrStrings(fmt.Sprintf("/ip6/::/tcp/%d", config.Port)),
		libp2p.Identity(config.PrivateKey),
		libp2p.DisableRelay(),
	}
	if config.ExternalMultiaddr != nil {
		// announce the NAT-facing address alongside the listen addresses
		opts = append(opts, libp2p.AddrsFactory(func(addrs []multiaddr.Multiaddr) []multiaddr.Multiaddr {
			return append(addrs, config.ExternalMultiaddr)
		}))
	}

	peerHost, err := libp2p.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	log.Infof("I am %v", peerHost.Addrs())

	dstore, err := leveldb.NewDatastore(path.Join(config.DataDir, "routing"), nil)
	if err != nil {
		return nil, err
	}

	rt, err := dht.New(
		context.Background(), peerHost,
		dht.Datastore(dstore),
		dht.ProtocolPrefix("/gagarin/liveness"),
	)
	if err != nil {
		return nil, err
	}

	ps, err := pubsub.NewGossipSub(context.Background(), peerHost)
	if err != nil {
		return nil, err
	}

	dispatcher := message.NewDispatcher(1024)

	info := peerHost.Peerstore().PeerInfo(peerHost.ID())
	node := &Node{
		Host:           peerHost,
		Routing:        rt,
		PubSub:         &GossipDhtPubSub{Pubsub: ps, Host: peerHost, Routing: rt},
		PrivateKey:     config.PrivateKey,
		Datastore:      dstore,
		bootstrapPeers: config.Committee,
		minPeers:       config.MinPeers,
		Dispatcher:     dispatcher,
		Identity:       common.CreatePeer(nil, nil, &info),
	}
	return node, nil
}

// Bootstrap connects to the committee peers and starts the DHT. Once enough
// peers are reachable the liveness topic becomes discoverable.
func (n *Node) Bootstrap(ctx context.Context) error {
	return Bootstrap(ctx, n.Routing, n.Host, bootstrapWithPeers(n.bootstrapPeers, n.minPeers))
}

// Shutdown disconnects all peers and releases the datastore.
func (n *Node) Shutdown() {
	if err := n.Host.Close(); err != nil {
		log.Error("error closing host", err)
	}
	if err := n.Datastore.Close(); err != nil {
		log.Error("error closing datastore", err)
	}
}

package network

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/gagarinchain/liveness/common"
	"github.com/libp2p/go-libp2p-core/host"
	corenet "github.com/libp2p/go-libp2p-core/network"
	"github.com/libp2p/go-libp2p-core/peer"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var ErrNotEnoughPeers = errors.New("not enough peers to bootstrap")
var log = logging.MustGetLogger("network")

type BootstrapConfig struct {
	//Minimum amount of peers needed to start correctly
	MinPeerThreshold int

	// Period duration for bootstrap repetition.
	// Should be set carefully since the bootstrap process could be resource heavy
	Period time.Duration

	// Simply connection timeout
	ConnectionTimeout time.Duration

	//Peers we started with, base peers used to discover additional ones
	InitialPeers []peer.AddrInfo
}

//Default parameters for bootstrapping
var DefaultBootstrapConfig = BootstrapConfig{
	MinPeerThreshold:  2,
	Period:            30 * time.Second,
	ConnectionTimeout: (30 * time.Second) / 3,
}

func bootstrapWithPeers(committee []*common.Peer, minPeers int) BootstrapConfig {
	var peers []peer.AddrInfo
	for _, c := range committee {
		if c.GetPeerInfo() != nil {
			peers = append(peers, *c.GetPeerInfo())
		}
	}

	cfg := DefaultBootstrapConfig
	cfg.InitialPeers = peers
	if minPeers > 0 {
		cfg.MinPeerThreshold = minPeers
	}
	return cfg
}

// Bootstrap keeps the node connected to at least MinPeerThreshold peers and
// starts the DHT.
func Bootstrap(ctx context.Context, routing *dht.IpfsDHT, peerHost host.Host, cfg BootstrapConfig) error {
	tick := func() {
		if err := bootstrapTick(ctx, peerHost, cfg); err != nil {
			log.Debugf("bootstrap error: %s", err)
		}
	}

	t := time.NewTicker(cfg.Period)
	go func() {
		for {
			select {
			case <-t.C:
				tick()
			case <-ctx.Done():
				t.Stop()
				return
			}
		}
	}()
	tick()

	return routing.Bootstrap(ctx)
}

func bootstrapTick(ctx context.Context, host host.Host, cfg BootstrapConfig) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectionTimeout)
	defer cancel()

	connected := host.Network().Peers()
	if len(connected) >= cfg.MinPeerThreshold {
		log.Debugf("%s core bootstrap skipped -- connected to %d (> %d) nodes",
			host.ID(), len(connected), cfg.MinPeerThreshold)
		return nil
	}
	numToDial := cfg.MinPeerThreshold - len(connected)

	// filter out bootstrap nodes we are already connected to
	var notConnected []peer.AddrInfo
	for _, p := range cfg.InitialPeers {
		if host.Network().Connectedness(p.ID) != corenet.Connected && p.ID != host.ID() {
			notConnected = append(notConnected, p)
		}
	}

	if len(notConnected) < 1 {
		log.Debugf("%s no more bootstrap peers to create %d connections", host.ID(), numToDial)
		return ErrNotEnoughPeers
	}

	randSubset := randomSubsetOfPeers(notConnected, numToDial)

	log.Debugf("%s bootstrapping to %d nodes: %s", host.ID(), numToDial, randSubset)
	return bootstrapConnect(ctx, host, randSubset)
}

func bootstrapConnect(ctx context.Context, ph host.Host, peers []peer.AddrInfo) error {
	if len(peers) < 1 {
		return ErrNotEnoughPeers
	}

	errs := make(chan error, len(peers))
	var wg sync.WaitGroup
	for _, p := range peers {
		wg.Add(1)
		go func(p peer.AddrInfo) {
			defer wg.Done()
			log.Debugf("%s bootstrapping to %s", ph.ID(), p.ID)

			if err := ph.Connect(ctx, p); err != nil {
				log.Debugf("failed to bootstrap with %v: %s", p.ID, err)
				errs <- err
				return
			}
			log.Debugf("bootstrapped with %v", p.ID)
		}(p)
	}
	wg.Wait()

	// our failure condition is when no connection attempt succeeded.
	// So drain the errs channel, counting the results.
	close(errs)
	count := 0
	var err error
	for err = range errs {
		if err != nil {
			count++
		}
	}
	if count == len(peers) {
		return errors.Errorf("failed to bootstrap: %s", err)
	}
	return nil
}

func randomSubsetOfPeers(in []peer.AddrInfo, max int) []peer.AddrInfo {
	n := max
	if n > len(in) {
		n = len(in)
	}

	var out []peer.AddrInfo
	for _, val := range rand.Perm(len(in)) {
		out = append(out, in[val])
		if len(out) >= n {
			break
		}
	}
	return out
}

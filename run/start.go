package run

import (
	"context"
	"crypto/rand"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/imonline"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/gagarinchain/liveness/network"
	"github.com/gagarinchain/liveness/storage"
	p2pcrypto "github.com/libp2p/go-libp2p-core/crypto"
	"github.com/multiformats/go-multiaddr"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("run")

// LogCollector is the default offence sink when no slashing subsystem is
// attached: it reports to the operator instead of the ledger.
type LogCollector struct {
}

func (c *LogCollector) ReportOffence(reporters []ethcommon.Address, offence *imonline.UnresponsivenessOffence) {
	log.Warningf("Unresponsiveness offence in session %d: %d of %d validators offline, slash fraction %v",
		offence.SessionIndex, len(offence.Offenders), offence.ValidatorSetCount, offence.SlashFraction())
	for _, o := range offence.Offenders {
		log.Warningf("Offender: %v", o.GlobalId.Hex())
	}
}

// Start wires the node together and blocks until the process dies.
func Start(s *common.Settings) {
	loader := &common.CommitteeLoaderImpl{}
	committee, err := loader.LoadPeerListFromFile(s.Liveness.CommitteePath)
	if err != nil {
		log.Fatal(err)
	}

	var peerKey p2pcrypto.PrivKey
	var locals []*common.Peer
	if s.Liveness.Me >= 0 && s.Liveness.Me < len(committee) {
		me := committee[s.Liveness.Me]
		peerKey, err = loader.LoadPeerFromFile(s.Liveness.PeerPath, me)
		if err != nil {
			log.Fatal(err)
		}
		locals = append(locals, me)
	} else {
		// observer node, ephemeral transport identity
		peerKey, _, err = p2pcrypto.GenerateEd25519Key(rand.Reader)
		if err != nil {
			log.Fatal(err)
		}
	}

	store, err := storage.NewStorage(s.Storage.Dir, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ledger := imonline.NewLedger(store)
	session := ledger.RestoreSession()
	service := imonline.NewService(ledger, &LogCollector{}, session, committee)
	if err := ledger.Load(session); err != nil {
		log.Warningf("Can't restore ledger: %v", err)
	}

	var extMA multiaddr.Multiaddr
	if s.Network.ExtAddr != "" {
		extMA, _ = multiaddr.NewMultiaddr(s.Network.ExtAddr)
	}

	node, err := network.CreateNode(&network.NodeConfig{
		Port:              s.Network.Port,
		PrivateKey:        peerKey,
		DataDir:           s.Storage.Dir,
		ExternalMultiaddr: extMA,
		Committee:         committee,
		MinPeers:          s.Network.MinPeers,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer node.Shutdown()

	srv := network.NewService(node, service.Admission().PreCheck)
	node.Dispatcher.Handlers[pb.Message_HEARTBEAT] = imonline.NewHeartbeatHandler(service.Admission())

	ctx := context.Background()
	if err := node.Bootstrap(ctx); err != nil {
		log.Warningf("Bootstrap incomplete: %v", err)
	}
	if err := srv.Bootstrap(ctx); err != nil {
		log.Fatal(err)
	}
	go node.Dispatcher.StartUp()

	generator := imonline.NewGenerator(service, ledger, locals, &imonline.LocalSigner{}, srv, srv)

	pacer := NewStaticPacer(service, generator, committee,
		time.Duration(s.Liveness.BlockDelta)*time.Millisecond, uint64(s.Liveness.SessionLength))
	pacer.Run(ctx)
}

package network

import (
	"context"
	"io"
	"sync"

	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/message"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	protoio "github.com/gogo/protobuf/io"
	"github.com/gogo/protobuf/proto"
	ctxio "github.com/jbenet/go-context/io"
	corenet "github.com/libp2p/go-libp2p-core/network"
	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/libp2p/go-libp2p-core/protocol"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
)

// LivenessProtocol is the wire protocol for direct peer messages.
const LivenessProtocol protocol.ID = "/gagarin/liveness/1.0.0"

type Service interface {
	// SubmitHeartbeat broadcasts a signed liveness proof as an
	// unsigned-origin message. Fire and forget.
	SubmitHeartbeat(ctx context.Context, sh *pb.SignedHeartbeat) error

	// NetworkState reports this node's self-observed identity, embedded in
	// generated heartbeats for diagnostics.
	NetworkState() *pb.NetworkState

	// SendMessage delivers a message to one particular peer.
	SendMessage(ctx context.Context, p *common.Peer, m *message.Message) error

	// Broadcast gossips a message to all peers subscribed to the topic.
	Broadcast(ctx context.Context, m *message.Message) error
}

// ProofValidator lets the admission layer veto gossip relay of invalid
// heartbeats before they reach the dispatcher.
type ProofValidator func(sh *pb.SignedHeartbeat) error

type ServiceImpl struct {
	node      *Node
	validator ProofValidator

	sl      sync.RWMutex
	streams map[peer.ID]corenet.Stream
}

func NewService(node *Node, validator ProofValidator) *ServiceImpl {
	return &ServiceImpl{
		node:      node,
		validator: validator,
		streams:   make(map[peer.ID]corenet.Stream),
	}
}

// Bootstrap subscribes to the heartbeat topic, installs the relay validator
// and starts pumping incoming messages into the dispatcher. Our own
// published proofs come back through the same subscription and take the
// same path as everyone else's.
func (s *ServiceImpl) Bootstrap(ctx context.Context) error {
	if s.validator != nil {
		e := s.node.PubSub.RegisterValidator(HeartbeatTopic, func(ctx context.Context, id peer.ID, m *pubsub.Message) bool {
			msg := &pb.Message{}
			if err := proto.Unmarshal(m.Data, msg); err != nil {
				return false
			}
			if msg.GetType() != pb.Message_HEARTBEAT {
				return false
			}
			sh := &pb.SignedHeartbeat{}
			if err := proto.Unmarshal(msg.GetPayload(), sh); err != nil {
				return false
			}
			if err := s.validator(sh); err != nil {
				log.Debugf("Dropping heartbeat from %v: %v", id, err)
				return false
			}
			return true
		})
		if e != nil {
			return e
		}
	}

	sub, e := s.node.PubSub.SubscribeAndProvide(ctx, HeartbeatTopic)
	if e != nil {
		return e
	}

	s.node.Host.SetStreamHandler(LivenessProtocol, func(stream corenet.Stream) {
		s.handleNewStream(ctx, stream)
	})

	go s.listen(ctx, sub)
	return nil
}

func (s *ServiceImpl) listen(ctx context.Context, sub *pubsub.Subscription) {
	for {
		m, e := sub.Next(ctx)
		if e != nil {
			log.Debugf("subscription closed: %s", e)
			return
		}

		info := s.node.Host.Peerstore().PeerInfo(m.GetFrom())
		source := common.CreatePeer(nil, nil, &info)

		msg, e := message.CreateFromSerialized(m.Data, source)
		if e != nil {
			log.Warningf("Can't deserialize message from %v: %v", m.GetFrom(), e)
			continue
		}
		s.node.Dispatcher.Dispatch(msg)
	}
}

func (s *ServiceImpl) SubmitHeartbeat(ctx context.Context, sh *pb.SignedHeartbeat) error {
	payload, e := proto.Marshal(sh)
	if e != nil {
		return e
	}
	m := message.CreateMessage(pb.Message_HEARTBEAT, payload, s.node.Identity)
	return s.Broadcast(ctx, m)
}

func (s *ServiceImpl) NetworkState() *pb.NetworkState {
	state := &pb.NetworkState{
		PeerId: []byte(s.node.Host.ID()),
	}
	for _, a := range s.node.Host.Addrs() {
		state.ExternalAddresses = append(state.ExternalAddresses, a.Bytes())
	}
	return state
}

func (s *ServiceImpl) Broadcast(ctx context.Context, m *message.Message) error {
	b, e := m.Serialize()
	if e != nil {
		return e
	}
	return s.node.PubSub.Publish(ctx, HeartbeatTopic, b)
}

func (s *ServiceImpl) SendMessage(ctx context.Context, p *common.Peer, m *message.Message) error {
	stream, e := s.stream(ctx, p)
	if e != nil {
		return e
	}

	writer := protoio.NewDelimitedWriter(ctxio.NewWriter(ctx, stream))
	return writer.WriteMsg(m.Message)
}

func (s *ServiceImpl) stream(ctx context.Context, p *common.Peer) (corenet.Stream, error) {
	id := p.GetPeerInfo().ID

	s.sl.RLock()
	stream, found := s.streams[id]
	s.sl.RUnlock()
	if found {
		return stream, nil
	}

	stream, e := s.node.Host.NewStream(ctx, id, LivenessProtocol)
	if e != nil {
		return nil, e
	}

	s.sl.Lock()
	s.streams[id] = stream
	s.sl.Unlock()
	return stream, nil
}

func (s *ServiceImpl) handleNewStream(ctx context.Context, stream corenet.Stream) {
	log.Debug("opened new liveness stream")
	cr := ctxio.NewReader(ctx, stream)
	r := protoio.NewDelimitedReader(cr, corenet.MessageSizeMax)

	remote := stream.Conn().RemotePeer()
	s.sl.Lock()
	if _, f := s.streams[remote]; !f {
		s.streams[remote] = stream
	}
	s.sl.Unlock()

	for {
		m := &pb.Message{}
		err := r.ReadMsg(m)
		if err != nil {
			if err != io.EOF {
				if err := stream.Reset(); err != nil {
					log.Error("error resetting stream", err)
				}
				log.Infof("error reading message from %s: %s", remote, err)
			} else {
				if err := stream.Close(); err != nil {
					log.Error("error closing stream", err)
				}
			}
			s.sl.Lock()
			delete(s.streams, remote)
			s.sl.Unlock()
			return
		}

		info := s.node.Host.Peerstore().PeerInfo(remote)
		source := common.CreatePeer(nil, nil, &info)
		s.node.Dispatcher.Dispatch(message.CreateMessageFromProto(m, source))
	}
}

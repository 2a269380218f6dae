package network

import (
	"context"
	"sync"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p-core/host"
	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/libp2p/go-libp2p-core/routing"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
)

// Wrapper for libp2p Pubsub to add DHT Routing logic for peer discovery.
// See vyzo comment: https://github.com/ipfs/go-ipfs/issues/5569#issuecomment-427556556
type GossipDhtPubSub struct {
	Pubsub  *pubsub.PubSub
	Routing routing.Routing
	Host    host.Host
}

// Publish publishes data under the given topic
func (p *GossipDhtPubSub) Publish(ctx context.Context, topic string, data []byte) error {
	return p.Pubsub.Publish(topic, data)
}

// SubscribeAndProvide returns a new Subscription for the given topic.
// While subscribing we calculate the topic's cid and provide this value to
// the underlying DHT-router so topic peers can find each other.
func (p *GossipDhtPubSub) SubscribeAndProvide(ctx context.Context, topic string) (*pubsub.Subscription, error) {
	sub, err := p.Pubsub.Subscribe(topic)
	if err != nil {
		return nil, err
	}

	id, e := NewTopicCid(topic).CID()
	if e != nil {
		return nil, e
	}

	go func() {
		if err := p.Routing.Provide(ctx, *id, true); err != nil {
			log.Debugf("Can't provide topic cid: %s", err)
		}
	}()

	p.connectToPubSubPeers(ctx, *id)

	return sub, nil
}

// RegisterValidator installs a message validity predicate for the topic so
// invalid messages are dropped and not re-relayed by this node.
func (p *GossipDhtPubSub) RegisterValidator(topic string, v pubsub.Validator) error {
	return p.Pubsub.RegisterTopicValidator(topic, v)
}

// GetTopics returns the topics this node is subscribed to
func (p *GossipDhtPubSub) GetTopics() []string {
	return p.Pubsub.GetTopics()
}

// ListPeers returns a list of peers we are connected to.
func (p *GossipDhtPubSub) ListPeers(topic string) []peer.ID {
	return p.Pubsub.ListPeers(topic)
}

func (p *GossipDhtPubSub) connectToPubSubPeers(ctx context.Context, id cid.Cid) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	//take 10 providers to connect
	provs := p.Routing.FindProvidersAsync(ctx, id, 10)
	var wg sync.WaitGroup
	for prov := range provs {
		if prov.ID == p.Host.ID() {
			continue
		}
		wg.Add(1)
		go func(pi peer.AddrInfo) {
			defer wg.Done()
			if err := p.Host.Connect(ctx, pi); err != nil {
				log.Debugf("pubsub discover: %s", err)
				return
			}
			log.Debugf("connected to pubsub peer: %s", pi.ID)
		}(prov)
	}

	wg.Wait()
}

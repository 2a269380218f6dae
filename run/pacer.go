package run

import (
	"context"
	"time"

	"github.com/gagarinchain/liveness/common"
	"github.com/gagarinchain/liveness/imonline"
)

// StaticPacer drives the liveness service for a static-committee
// deployment: a block clock ticks once per delta and sessions rotate every
// SessionLength blocks over the same committee. In a full runtime both
// signals come from the consensus subsystem instead.
type StaticPacer struct {
	service   *imonline.Service
	generator *imonline.Generator
	committee []*common.Peer

	delta         time.Duration
	sessionLength uint64
	height        uint64
}

func NewStaticPacer(service *imonline.Service, generator *imonline.Generator,
	committee []*common.Peer, delta time.Duration, sessionLength uint64) *StaticPacer {
	return &StaticPacer{
		service:       service,
		generator:     generator,
		committee:     committee,
		delta:         delta,
		sessionLength: sessionLength,
	}
}

func (p *StaticPacer) Run(ctx context.Context) {
	blockTimer := time.NewTicker(p.delta)
	defer blockTimer.Stop()

	for {
		select {
		case <-blockTimer.C:
			p.height++
			p.onBlock(ctx)

			if p.height%p.sessionLength == 0 {
				p.service.OnSessionAboutToEnd()
				p.service.OnSessionEnded(p.service.CurrentIndex()+1, p.committee)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (p *StaticPacer) onBlock(ctx context.Context) {
	for _, res := range p.generator.SendHeartbeats(ctx, p.height) {
		switch res.Status {
		case imonline.Sent:
			log.Infof("Heartbeat sent for validator %d at block %d", res.Index, p.height)
		case imonline.AlreadyOnline:
			log.Debugf("Validator %d already online, skipping", res.Index)
		case imonline.NotValidator:
			log.Debugf("Identity %v is not in the committee", res.Identity.GetAddress().Hex())
		default:
			log.Warningf("Heartbeat for validator %d failed: %v", res.Index, res.Err)
		}
	}
}

package imonline

import (
	"github.com/gagarinchain/liveness/message"
)

// HeartbeatHandler is the network entry point for incoming liveness proofs.
// It funnels every proof, including the node's own gossiped submissions,
// through the two-phase admission path; self-submitted proofs get no
// special casing.
type HeartbeatHandler struct {
	admission *Admission
}

func NewHeartbeatHandler(admission *Admission) *HeartbeatHandler {
	return &HeartbeatHandler{admission: admission}
}

func (h *HeartbeatHandler) Handle(msg *message.Message) {
	sh, e := ParseSignedHeartbeat(msg.GetPayload())
	if e != nil {
		log.Warningf("Malformed heartbeat from %v: %v", sourceOf(msg), e)
		return
	}

	if e := h.admission.PreCheck(sh); e != nil {
		switch e {
		case ErrDuplicateIndex:
			log.Debugf("Redundant heartbeat for validator %d", sh.GetHeartbeat().GetValidatorIndex())
		default:
			log.Warningf("Rejected heartbeat from %v: %v", sourceOf(msg), e)
		}
		return
	}

	if e := h.admission.Apply(sh); e != nil {
		// losing an apply race or a rotation between phases is expected
		log.Debugf("Heartbeat for validator %d not applied: %v", sh.GetHeartbeat().GetValidatorIndex(), e)
		return
	}

	log.Infof("Validator %d is online in session %d",
		sh.GetHeartbeat().GetValidatorIndex(), sh.GetHeartbeat().GetSessionIndex())
}

func sourceOf(msg *message.Message) interface{} {
	if msg.Source() == nil {
		return "unknown peer"
	}
	return msg.Source().GetAddress().Hex()
}

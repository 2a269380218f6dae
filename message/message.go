package message

import (
	"github.com/gagarinchain/liveness/common"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/gogo/protobuf/proto"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("message")

// Message wraps the wire envelope with the peer it came from. The source is
// transport metadata, it never takes part in heartbeat admission.
type Message struct {
	source *common.Peer
	sm     []byte
	*pb.Message
}

func (m *Message) Source() *common.Peer {
	return m.source
}

func CreateMessage(messageType pb.Message_MessageType, payload []byte, source *common.Peer) *Message {
	m := &Message{Message: &pb.Message{}}

	m.Type = messageType
	m.Payload = payload
	m.source = source
	return m
}

func CreateMessageFromProto(message *pb.Message, source *common.Peer) *Message {
	return &Message{Message: message, source: source}
}

func CreateFromSerialized(serializedMessage []byte, source *common.Peer) (*Message, error) {
	m := &Message{sm: serializedMessage, Message: &pb.Message{}}

	if e := proto.Unmarshal(serializedMessage, m.Message); e != nil {
		return nil, e
	}

	m.source = source
	return m, nil
}

func (m *Message) Serialize() ([]byte, error) {
	return proto.Marshal(m.Message)
}

package message_test

import (
	"testing"

	"github.com/gagarinchain/liveness/message"
	pb "github.com/gagarinchain/liveness/message/protobuff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	received chan *message.Message
}

func (h *recordingHandler) Handle(m *message.Message) {
	h.received <- m
}

func TestSerializeRoundtrip(t *testing.T) {
	m := message.CreateMessage(pb.Message_HEARTBEAT, []byte("payload"), nil)

	serialized, e := m.Serialize()
	require.NoError(t, e)

	restored, e := message.CreateFromSerialized(serialized, nil)
	require.NoError(t, e)
	assert.Equal(t, pb.Message_HEARTBEAT, restored.Type)
	assert.Equal(t, []byte("payload"), restored.Payload)
}

func TestCreateFromSerializedRejectsGarbage(t *testing.T) {
	_, e := message.CreateFromSerialized([]byte{0xff, 0xff, 0xff}, nil)
	assert.Error(t, e)
}

func TestDispatchByType(t *testing.T) {
	d := message.NewDispatcher(10)
	handler := &recordingHandler{received: make(chan *message.Message, 1)}
	d.Handlers[pb.Message_HEARTBEAT] = handler

	go d.StartUp()
	defer d.Stop()

	m := message.CreateMessage(pb.Message_HEARTBEAT, []byte{1}, nil)
	d.Dispatch(m)

	assert.Equal(t, m, <-handler.received)
}

func TestDispatchAfterStopDoesNotPanic(t *testing.T) {
	d := message.NewDispatcher(0)

	go d.StartUp()
	d.Stop()

	d.Dispatch(message.CreateMessage(pb.Message_HEARTBEAT, nil, nil))
}

func TestUnknownTypeFallsBackToDefault(t *testing.T) {
	d := message.NewDispatcher(10)

	go d.StartUp()

	// no handler registered, the default one only logs
	d.Dispatch(message.CreateMessage(pb.Message_MessageType(99), nil, nil))
	d.Stop()
}

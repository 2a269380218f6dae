package message

import (
	pb "github.com/gagarinchain/liveness/message/protobuff"
)

var DEFAULT_HANDLER Handler = &DefaultHandler{}

// Dispatcher routes incoming messages to the handler registered for their
// type. One message's worth of work is processed at a time, mirroring the
// block-processing pipeline's serialized execution.
type Dispatcher struct {
	Handlers map[pb.Message_MessageType]Handler
	MsgChan  chan *Message
	done     chan struct{}
}

func NewDispatcher(capacity int) *Dispatcher {
	return &Dispatcher{
		Handlers: make(map[pb.Message_MessageType]Handler),
		MsgChan:  make(chan *Message, capacity),
		done:     make(chan struct{}),
	}
}

// Dispatch queues a message for the registered handler. After Stop it
// becomes a no-op, producers racing the shutdown never panic.
func (d *Dispatcher) Dispatch(msg *Message) {
	select {
	case <-d.done:
	case d.MsgChan <- msg:
	}
}

func (d *Dispatcher) StartUp() {
	for {
		select {
		case <-d.done:
			return
		case msg := <-d.MsgChan:
			handler, ok := d.Handlers[msg.Type]

			if !ok {
				handler = DEFAULT_HANDLER
			}

			handler.Handle(msg)
		}
	}
}

// Stop makes StartUp return; queued messages are dropped.
func (d *Dispatcher) Stop() {
	close(d.done)
}

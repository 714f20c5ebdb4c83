package bus

import (
	"context"
	"log/slog"
)

const queueSize = 256

// MessageBus routes messages between transports and the engine through
// in-process queues. One consumer drains each direction, so per-room
// arrival order is preserved by construction.
type MessageBus struct {
	inbound  chan InboundMessage
	outbound chan OutboundMessage
}

// New creates a message bus with bounded queues.
func New() *MessageBus {
	return &MessageBus{
		inbound:  make(chan InboundMessage, queueSize),
		outbound: make(chan OutboundMessage, queueSize),
	}
}

// PublishInbound enqueues a message received from a transport.
// Drops the message when the queue is full rather than blocking the
// transport's event handler.
func (b *MessageBus) PublishInbound(msg InboundMessage) {
	select {
	case b.inbound <- msg:
	default:
		slog.Warn("inbound queue full, dropping message",
			"channel", msg.Channel, "channel_id", msg.ChannelID)
	}
}

// ConsumeInbound blocks until a message is available or ctx is done.
// The second return value is false when the bus is shutting down.
func (b *MessageBus) ConsumeInbound(ctx context.Context) (InboundMessage, bool) {
	select {
	case msg := <-b.inbound:
		return msg, true
	case <-ctx.Done():
		return InboundMessage{}, false
	}
}

// PublishOutbound enqueues a message for delivery by a transport.
func (b *MessageBus) PublishOutbound(msg OutboundMessage) {
	select {
	case b.outbound <- msg:
	default:
		slog.Warn("outbound queue full, dropping message",
			"channel", msg.Channel, "channel_id", msg.ChannelID)
	}
}

// ConsumeOutbound blocks until an outbound message is available or ctx is done.
func (b *MessageBus) ConsumeOutbound(ctx context.Context) (OutboundMessage, bool) {
	select {
	case msg := <-b.outbound:
		return msg, true
	case <-ctx.Done():
		return OutboundMessage{}, false
	}
}

// TryConsumeOutbound returns the next outbound message without blocking.
func (b *MessageBus) TryConsumeOutbound() (OutboundMessage, bool) {
	select {
	case msg := <-b.outbound:
		return msg, true
	default:
		return OutboundMessage{}, false
	}
}

// Package bus connects the Telegram channel to the command dispatcher.
// The channel publishes inbound commands; the dispatcher consumer
// publishes outbound replies. Each message is handled independently.
package bus

import (
	"context"
)

// InboundCommand is one parsed chat command awaiting dispatch.
type InboundCommand struct {
	// Command is the bare command name without the leading slash
	// or @botname suffix, lowercased (e.g. "note", "list").
	Command string

	// Args is the raw argument text after the command, trimmed.
	Args string

	// OwnerID is the Telegram user ID issuing the command. All stored
	// records are scoped to it.
	OwnerID int64

	// ChatID is where the reply goes.
	ChatID int64

	// VoiceAudio is the downloaded voice attachment, if any
	// (used by /summarize_meeting).
	VoiceAudio []byte
}

// OutboundReply is formatted text ready for delivery.
type OutboundReply struct {
	ChatID int64
	Text   string
}

// MessageBus carries commands and replies between the channel and the
// dispatcher on buffered queues.
type MessageBus struct {
	inbound  chan InboundCommand
	outbound chan OutboundReply
}

func New() *MessageBus {
	return &MessageBus{
		inbound:  make(chan InboundCommand, 100),
		outbound: make(chan OutboundReply, 100),
	}
}

// PublishInbound queues an inbound command from the channel.
func (mb *MessageBus) PublishInbound(cmd InboundCommand) {
	mb.inbound <- cmd
}

// ConsumeInbound blocks until an inbound command is available or ctx is cancelled.
func (mb *MessageBus) ConsumeInbound(ctx context.Context) (InboundCommand, bool) {
	select {
	case cmd := <-mb.inbound:
		return cmd, true
	case <-ctx.Done():
		return InboundCommand{}, false
	}
}

// PublishOutbound queues a reply for the channel to deliver, unless ctx
// is cancelled first. Reports whether the reply was queued; on shutdown
// the sender may be gone and the queue full, and the publisher must not
// block forever.
func (mb *MessageBus) PublishOutbound(ctx context.Context, reply OutboundReply) bool {
	select {
	case mb.outbound <- reply:
		return true
	case <-ctx.Done():
		return false
	}
}

// ConsumeOutbound blocks until a reply is available or ctx is cancelled.
func (mb *MessageBus) ConsumeOutbound(ctx context.Context) (OutboundReply, bool) {
	select {
	case reply := <-mb.outbound:
		return reply, true
	case <-ctx.Done():
		return OutboundReply{}, false
	}
}

package bus

import "time"

// InboundMessage is the normalized shape of a message received from a
// transport (Discord, etc.). The engine never sees transport envelopes.
type InboundMessage struct {
	Channel   string            `json:"channel"`    // transport name, e.g. "discord"
	GuildID   string            `json:"guild_id"`   // "dm" for direct-message contexts
	ChannelID string            `json:"channel_id"`
	SenderID  string            `json:"sender_id"`
	Sender    string            `json:"sender,omitempty"` // display name
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// OutboundMessage is a message to be delivered by a transport.
// Either Content or Rich is set; Rich takes precedence when both are.
type OutboundMessage struct {
	Channel   string       `json:"channel"`
	ChannelID string       `json:"channel_id"`
	Content   string       `json:"content,omitempty"`
	Rich      *RichContent `json:"rich,omitempty"`
}

// RichContent is a structured payload the transport renders natively
// (Discord renders it as an embed). Fire-and-forget, like plain text.
type RichContent struct {
	Title  string      `json:"title,omitempty"`
	Body   string      `json:"body,omitempty"`
	Fields []RichField `json:"fields,omitempty"`
	Footer string      `json:"footer,omitempty"`
	Color  int         `json:"color,omitempty"`
}

// RichField is one name/value pair inside a RichContent payload.
type RichField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

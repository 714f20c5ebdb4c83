// Package engine wires the per-message pipeline: room activation check,
// session feed, keyword classification, and the command surface. It is
// the composition root over the store, responses, and games packages.
package engine

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/marhaba-bot/marhaba/internal/bus"
	"github.com/marhaba-bot/marhaba/internal/games"
	"github.com/marhaba-bot/marhaba/internal/responses"
	"github.com/marhaba-bot/marhaba/internal/store"
)

// Permissions answers whether a user may run administrative commands in
// a room. Backed by the transport (Discord member permission bits);
// a nil Permissions allows everything.
type Permissions interface {
	CanManageChannels(guildID, channelID, userID string) bool
	IsAdmin(guildID, channelID, userID string) bool
}

// Dispatcher consumes inbound messages and produces outbound responses.
// One Run loop processes messages in arrival order.
type Dispatcher struct {
	bus   *bus.MessageBus
	store *store.ChannelStore
	lib   *responses.Library
	games *games.Manager
	perms Permissions
	rnd   responses.Rand

	prefix  string
	started time.Time
}

// New creates a dispatcher. perms may be nil (all commands allowed).
func New(msgBus *bus.MessageBus, st *store.ChannelStore, lib *responses.Library, gm *games.Manager, perms Permissions, rnd responses.Rand, prefix string) *Dispatcher {
	return &Dispatcher{
		bus:     msgBus,
		store:   st,
		lib:     lib,
		games:   gm,
		perms:   perms,
		rnd:     rnd,
		prefix:  prefix,
		started: time.Now(),
	}
}

// Run consumes inbound messages until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("dispatcher started", "prefix", d.prefix)
	for {
		msg, ok := d.bus.ConsumeInbound(ctx)
		if !ok {
			slog.Info("dispatcher stopped")
			return
		}
		d.handle(msg)
	}
}

// handle fully processes one inbound message. A panic anywhere below is
// contained here: other rooms and later messages are unaffected.
func (d *Dispatcher) handle(msg bus.InboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("message processing panicked",
				"panic", r,
				"guild_id", msg.GuildID,
				"channel_id", msg.ChannelID,
				"stack", string(debug.Stack()))
			d.sendText(msg, "❌ حدث خطأ أثناء معالجة الرسالة")
		}
	}()

	// Commands take the whole message, even in inactive rooms: the
	// activation commands must work before activation. Command text never
	// reaches the games or the classifier, so "!مساعدة" does not also
	// trigger the keyword response for "مساعدة".
	if d.prefix != "" && strings.HasPrefix(strings.TrimSpace(msg.Content), d.prefix) {
		d.handleCommand(msg)
		return
	}

	if d.store.IsActive(msg.GuildID, msg.ChannelID) {
		room := games.Room{GuildID: msg.GuildID, ChannelID: msg.ChannelID}
		res := d.games.Feed(room, msg.SenderID, msg.Content, msg.Timestamp)
		if !res.Consumed {
			d.autoReact(msg)
		}
	}
}

// autoReact sends a canned response when the message matches the keyword
// taxonomy, subject to the room's auto-react switch and chance roll.
func (d *Dispatcher) autoReact(msg bus.InboundMessage) {
	settings := d.store.Settings(msg.GuildID, msg.ChannelID)
	if !settings.AutoReact {
		return
	}

	cat, ok := d.lib.Classify(msg.Content)
	if !ok {
		return
	}

	if d.rnd.IntN(100) >= settings.ResponseChance {
		slog.Debug("auto response suppressed by chance roll",
			"category", string(cat), "chance", settings.ResponseChance,
			"channel_id", msg.ChannelID)
		return
	}

	d.sendText(msg, d.lib.Pick(cat))
}

func (d *Dispatcher) sendText(msg bus.InboundMessage, content string) {
	d.bus.PublishOutbound(bus.OutboundMessage{
		Channel:   msg.Channel,
		ChannelID: msg.ChannelID,
		Content:   content,
	})
}

func (d *Dispatcher) sendRich(msg bus.InboundMessage, rich *bus.RichContent) {
	d.bus.PublishOutbound(bus.OutboundMessage{
		Channel:   msg.Channel,
		ChannelID: msg.ChannelID,
		Rich:      rich,
	})
}

func (d *Dispatcher) canManage(msg bus.InboundMessage) bool {
	return d.perms == nil || d.perms.CanManageChannels(msg.GuildID, msg.ChannelID, msg.SenderID)
}

func (d *Dispatcher) isAdmin(msg bus.InboundMessage) bool {
	return d.perms == nil || d.perms.IsAdmin(msg.GuildID, msg.ChannelID, msg.SenderID)
}

// mention returns the transport-provided mention token for the sender,
// falling back to the display name.
func mention(msg bus.InboundMessage) string {
	if m := msg.Metadata["mention"]; m != "" {
		return m
	}
	return msg.Sender
}

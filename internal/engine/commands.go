package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/marhaba-bot/marhaba/internal/bus"
	"github.com/marhaba-bot/marhaba/internal/games"
	"github.com/marhaba-bot/marhaba/internal/responses"
	"github.com/marhaba-bot/marhaba/internal/store"
)

// Embed colors, matching the bot's established palette.
const (
	colorSuccess = 0x2ecc71
	colorInfo    = 0x3498db
	colorStatus  = 0x0099ff
	colorHelp    = 0x00ff00
	colorDanger  = 0xe74c3c
	colorPurple  = 0x9b59b6
	colorOrange  = 0xf39c12
	colorPink    = 0xe91e63
	colorGreen   = 0x27ae60
	colorGray    = 0x95a5a6
	colorAmber   = 0xe67e22
)

const (
	msgNoPermission   = "❌ ليس لديك الصلاحيات المطلوبة لتنفيذ هذا الأمر"
	msgUnknownCommand = "❓ أمر غير معروف. استخدم `!مساعدة` لعرض قائمة الأوامر"
	msgCommandFailed  = "❌ حدث خطأ أثناء تنفيذ الأمر"
)

// handleCommand parses and runs a prefixed command. Non-command messages
// pass through silently.
func (d *Dispatcher) handleCommand(msg bus.InboundMessage) {
	content := strings.TrimSpace(msg.Content)
	if d.prefix == "" || !strings.HasPrefix(content, d.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(content, d.prefix))
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "مرحبا", "اهلا", "هلا":
		d.cmdHello(msg)
	case "مساعدة", "help_ar":
		d.cmdHelp(msg)
	case "حالة":
		d.cmdStatus(msg)
	case "إحصائيات", "احصائيات", "stats":
		d.cmdStats(msg)
	case "تفعيل_القناة":
		d.cmdActivate(msg, false)
	case "إلغاء_القناة":
		d.cmdDeactivate(msg, false)
	case "القنوات_النشطة":
		d.cmdListActive(msg)
	case "قناة", "channel":
		d.cmdChannelGroup(msg, args)
	case "لعبة", "تسلية", "ألعاب":
		d.cmdGames(msg, args)
	case "وقت", "الوقت", "الساعة":
		d.cmdTime(msg)
	case "تحفيز", "حماس", "دافع":
		d.cmdMotivation(msg)
	case "حكمة", "نصيحة", "موعظة":
		d.cmdWisdom(msg)
	case "مزاج", "شعور", "حالة_نفسية":
		d.cmdMood(msg, args)
	case "دعاء", "أدعية":
		d.cmdPrayer(msg)
	default:
		d.sendText(msg, msgUnknownCommand)
	}
}

func (d *Dispatcher) cmdHello(msg bus.InboundMessage) {
	d.sendText(msg, fmt.Sprintf("%s %s", d.lib.Pick(responses.CategoryGreetings), mention(msg)))
}

func (d *Dispatcher) cmdHelp(msg bus.InboundMessage) {
	d.sendRich(msg, &bus.RichContent{
		Title: "🤖 أوامر البوت العربي",
		Body:  "قائمة بجميع الأوامر المتاحة",
		Color: colorHelp,
		Fields: []bus.RichField{
			{
				Name: "🎯 الأوامر الأساسية",
				Value: "`!مرحبا` - ترحيب\n" +
					"`!مساعدة` - عرض هذه القائمة\n" +
					"`!حالة` - عرض حالة البوت\n" +
					"`!إحصائيات` - إحصائياتك في الخادم\n" +
					"`!قناة` - إدارة القنوات والإعدادات\n" +
					"`!لعبة` - ألعاب تفاعلية\n" +
					"`!وقت` - الوقت الحالي\n" +
					"`!تحفيز` `!حكمة` `!مزاج` `!دعاء` - ردود تفاعلية",
			},
			{
				Name:  "💬 التفاعل التلقائي",
				Value: "البوت يتفاعل تلقائياً مع الكلمات العربية مثل: مرحبا، شكراً، صباح الخير، مساء الخير",
			},
		},
		Footer: "البوت العربي التفاعلي 🇸🇦",
	})
}

func (d *Dispatcher) cmdStatus(msg bus.InboundMessage) {
	activeCount := len(d.store.ListActive(msg.GuildID))
	activeValue := fmt.Sprintf("%d", activeCount)
	if activeCount == 0 {
		activeValue = "الكل"
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "📊 حالة البوت",
		Color: colorStatus,
		Fields: []bus.RichField{
			{Name: "🟢 الحالة", Value: "متصل وجاهز", Inline: true},
			{Name: "⏱️ مدة التشغيل", Value: time.Since(d.started).Round(time.Second).String(), Inline: true},
			{Name: "📺 القنوات النشطة", Value: activeValue, Inline: true},
		},
	})
}

// cmdStats shows playful per-member statistics. The join date rides the
// transport metadata when the platform provides it.
func (d *Dispatcher) cmdStats(msg bus.InboundMessage) {
	joined := msg.Metadata["joined_at"]
	if joined == "" {
		joined = "غير معروف"
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "📊 إحصائياتك",
		Color: colorInfo,
		Fields: []bus.RichField{
			{Name: "👤 العضو", Value: mention(msg), Inline: true},
			{Name: "📅 تاريخ الانضمام", Value: joined, Inline: true},
			{Name: "🔥 مستوى النشاط", Value: fmt.Sprintf("%d%%", 50+d.rnd.IntN(50)), Inline: true},
		},
		Footer: "استمر في التفاعل! 🚀",
	})
}

// cmdActivate adds the current channel to the guild's allow-list.
// rich selects the embed rendering used by the قناة group.
func (d *Dispatcher) cmdActivate(msg bus.InboundMessage, rich bool) {
	if !d.canManage(msg) {
		d.sendText(msg, msgNoPermission)
		return
	}

	changed, err := d.store.Activate(msg.GuildID, msg.ChannelID)
	if err != nil {
		slog.Error("activate failed", "error", err, "guild_id", msg.GuildID, "channel_id", msg.ChannelID)
		d.sendText(msg, msgCommandFailed)
		return
	}

	if !rich {
		if changed {
			d.sendText(msg, "✅ تم تفعيل التفاعل في هذه القناة")
		} else {
			d.sendText(msg, "ℹ️ القناة مفعلة مسبقاً")
		}
		return
	}

	if changed {
		d.sendRich(msg, &bus.RichContent{
			Title: "✅ تم التفعيل",
			Body:  "تم تفعيل التفاعل في هذه القناة",
			Color: colorSuccess,
			Fields: []bus.RichField{
				{Name: "📊 الإحصائيات", Value: fmt.Sprintf("القنوات النشطة: %d", len(d.store.ListActive(msg.GuildID))), Inline: true},
			},
		})
	} else {
		d.sendRich(msg, &bus.RichContent{
			Title: "ℹ️ معلومة",
			Body:  "القناة مفعلة مسبقاً",
			Color: colorInfo,
		})
	}
}

func (d *Dispatcher) cmdDeactivate(msg bus.InboundMessage, rich bool) {
	if !d.canManage(msg) {
		d.sendText(msg, msgNoPermission)
		return
	}

	changed, err := d.store.Deactivate(msg.GuildID, msg.ChannelID)
	if err != nil {
		slog.Error("deactivate failed", "error", err, "guild_id", msg.GuildID, "channel_id", msg.ChannelID)
		d.sendText(msg, msgCommandFailed)
		return
	}

	if !rich {
		if changed {
			d.sendText(msg, "❌ تم إلغاء التفاعل في هذه القناة")
		} else {
			d.sendText(msg, "ℹ️ القناة غير مفعلة")
		}
		return
	}

	if changed {
		d.sendRich(msg, &bus.RichContent{
			Title: "❌ تم الإلغاء",
			Body:  "تم إلغاء التفاعل في هذه القناة",
			Color: colorDanger,
		})
	} else {
		d.sendRich(msg, &bus.RichContent{
			Title: "ℹ️ معلومة",
			Body:  "القناة غير مفعلة",
			Color: colorInfo,
		})
	}
}

func (d *Dispatcher) cmdListActive(msg bus.InboundMessage) {
	list := d.store.ListActive(msg.GuildID)
	if len(list) == 0 {
		d.sendText(msg, "📭 لا توجد قنوات نشطة حالياً")
		return
	}

	lines := make([]string, 0, len(list))
	for _, id := range list {
		lines = append(lines, "• <#"+id+">")
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "📺 القنوات النشطة",
		Body:  "قائمة القنوات التي يتفاعل فيها البوت",
		Color: colorHelp,
		Fields: []bus.RichField{
			{Name: "القنوات:", Value: strings.Join(lines, "\n")},
		},
	})
}

// cmdChannelGroup handles the قناة command group, mapping each
// subcommand onto one store operation.
func (d *Dispatcher) cmdChannelGroup(msg bus.InboundMessage, args []string) {
	if len(args) == 0 {
		d.sendRich(msg, &bus.RichContent{
			Title: "📺 إدارة القنوات",
			Body:  "أوامر إدارة القنوات والتحكم في التفاعل",
			Color: colorInfo,
			Fields: []bus.RichField{
				{
					Name: "🔧 الأوامر المتاحة",
					Value: "`!قناة تفعيل` - تفعيل التفاعل في هذه القناة\n" +
						"`!قناة إلغاء` - إلغاء التفاعل في هذه القناة\n" +
						"`!قناة قائمة` - عرض القنوات النشطة\n" +
						"`!قناة إعدادات` - عرض إعدادات القناة\n" +
						"`!قناة تخصيص` - تخصيص إعدادات القناة\n" +
						"`!قناة مسح` - مسح جميع الإعدادات",
				},
			},
		})
		return
	}

	switch args[0] {
	case "تفعيل", "activate", "enable":
		d.cmdActivate(msg, true)
	case "إلغاء", "deactivate", "disable":
		d.cmdDeactivate(msg, true)
	case "قائمة", "list", "show":
		d.cmdChannelList(msg)
	case "إعدادات", "settings", "config":
		d.cmdChannelSettings(msg)
	case "تخصيص", "customize", "set":
		d.cmdCustomize(msg, args[1:])
	case "مسح", "reset", "clear":
		d.cmdResetGuild(msg)
	default:
		d.sendText(msg, msgUnknownCommand)
	}
}

func (d *Dispatcher) cmdChannelList(msg bus.InboundMessage) {
	list := d.store.ListActive(msg.GuildID)
	if len(list) == 0 {
		d.sendRich(msg, &bus.RichContent{
			Title: "📺 القنوات النشطة",
			Body:  "🌐 جميع القنوات نشطة (لم يتم تحديد قنوات محددة)",
			Color: colorPurple,
			Fields: []bus.RichField{
				{Name: "💡 نصيحة", Value: "استخدم `!قناة تفعيل` لتحديد قنوات محددة للتفاعل"},
			},
		})
		return
	}

	lines := make([]string, 0, len(list))
	for _, id := range list {
		status := "🟡"
		if d.store.Settings(msg.GuildID, id).AutoReact {
			status = "🟢"
		}
		lines = append(lines, status+" <#"+id+">")
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "📺 القنوات النشطة",
		Body:  strings.Join(lines, "\n"),
		Color: colorPurple,
		Fields: []bus.RichField{
			{Name: "📊 الإحصائيات", Value: fmt.Sprintf("إجمالي القنوات: %d", len(lines)), Inline: true},
		},
		Footer: "🟢 نشط كاملاً | 🟡 نشط جزئياً",
	})
}

func (d *Dispatcher) cmdChannelSettings(msg bus.InboundMessage) {
	s := d.store.Settings(msg.GuildID, msg.ChannelID)
	onOff := func(v bool) string {
		if v {
			return "✅ مفعل"
		}
		return "❌ معطل"
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "⚙️ إعدادات القناة",
		Color: colorOrange,
		Fields: []bus.RichField{
			{Name: "🤖 التفاعل التلقائي", Value: onOff(s.AutoReact), Inline: true},
			{Name: "🎲 نسبة الرد", Value: fmt.Sprintf("%d%%", s.ResponseChance), Inline: true},
			{Name: "👋 رسائل الترحيب", Value: onOff(s.WelcomeMessages), Inline: true},
			{Name: "🕐 تحيات الوقت", Value: onOff(s.TimeGreetings), Inline: true},
			{Name: "🎮 الألعاب", Value: onOff(s.GamesEnabled), Inline: true},
		},
		Footer: "استخدم !قناة تخصيص لتعديل الإعدادات",
	})
}

func (d *Dispatcher) cmdCustomize(msg bus.InboundMessage, args []string) {
	if len(args) < 2 {
		d.sendRich(msg, &bus.RichContent{
			Title: "⚙️ الإعدادات المتاحة",
			Body:  "استخدم: `!قناة تخصيص <الإعداد> <القيمة>`",
			Color: colorOrange,
			Fields: []bus.RichField{
				{
					Name: "📝 الإعدادات",
					Value: "`auto_react` - التفاعل التلقائي (true/false)\n" +
						"`response_chance` - نسبة الرد (1-100)\n" +
						"`welcome_messages` - رسائل الترحيب (true/false)\n" +
						"`time_greetings` - تحيات الوقت (true/false)\n" +
						"`games_enabled` - الألعاب (true/false)",
				},
			},
		})
		return
	}

	if !d.canManage(msg) {
		d.sendText(msg, msgNoPermission)
		return
	}

	key, value := args[0], args[1]
	applied, err := d.store.SetSetting(msg.GuildID, msg.ChannelID, key, value)
	switch {
	case errors.Is(err, store.ErrUnknownSetting):
		d.sendText(msg, "❌ إعداد غير معروف")
		return
	case errors.Is(err, store.ErrInvalidValue):
		if key == store.SettingResponseChance {
			d.sendText(msg, "❌ النسبة يجب أن تكون بين 1 و 100")
		} else {
			d.sendText(msg, "❌ قيمة غير صحيحة. استخدم: true/false أو نعم/لا")
		}
		return
	case err != nil:
		slog.Error("set setting failed", "error", err, "guild_id", msg.GuildID, "key", key)
		d.sendText(msg, msgCommandFailed)
		return
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "✅ تم التحديث",
		Body:  fmt.Sprintf("تم تحديث `%s` إلى: %s", key, applied),
		Color: colorSuccess,
	})
}

func (d *Dispatcher) cmdResetGuild(msg bus.InboundMessage) {
	if !d.isAdmin(msg) {
		d.sendText(msg, msgNoPermission)
		return
	}

	if err := d.store.ResetGuild(msg.GuildID); err != nil {
		slog.Error("reset guild failed", "error", err, "guild_id", msg.GuildID)
		d.sendText(msg, msgCommandFailed)
		return
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "🗑️ تم المسح",
		Body:  "تم مسح جميع إعدادات القنوات والتفاعل في الخادم",
		Color: colorDanger,
		Fields: []bus.RichField{
			{Name: "ℹ️ ملاحظة", Value: "سيعود البوت للتفاعل في جميع القنوات بالإعدادات الافتراضية"},
		},
	})
}

// cmdGames starts an interactive game or runs the stateless luck check.
func (d *Dispatcher) cmdGames(msg bus.InboundMessage, args []string) {
	if len(args) == 0 {
		d.sendRich(msg, &bus.RichContent{
			Title: "🎮 الألعاب المتاحة",
			Body: "`!لعبة تخمين` - لعبة تخمين الرقم\n" +
				"`!لعبة سؤال` - أسئلة عامة\n" +
				"`!لعبة حظ` - اختبار الحظ",
			Color: colorOrange,
		})
		return
	}

	switch args[0] {
	case "تخمين":
		d.startGame(msg, games.KindGuess)
	case "سؤال":
		d.startGame(msg, games.KindTrivia)
	case "حظ":
		d.sendRich(msg, &bus.RichContent{
			Title: "🔮 اختبار الحظ",
			Body:  fmt.Sprintf("%s\n\nنسبة الحظ: %d%%", d.lib.Luck(), 60+d.rnd.IntN(40)),
			Color: colorPink,
		})
	default:
		d.sendText(msg, msgUnknownCommand)
	}
}

// startGame enforces the room gates (activation, games setting) and maps
// the session-manager errors to user notices.
func (d *Dispatcher) startGame(msg bus.InboundMessage, kind games.Kind) {
	if !d.store.IsActive(msg.GuildID, msg.ChannelID) {
		d.sendText(msg, "❌ التفاعل غير مفعل في هذه القناة")
		return
	}
	if !d.store.Settings(msg.GuildID, msg.ChannelID).GamesEnabled {
		d.sendText(msg, "🎮 الألعاب معطلة في هذه القناة")
		return
	}

	room := games.Room{GuildID: msg.GuildID, ChannelID: msg.ChannelID}
	var err error
	if kind == games.KindGuess {
		_, err = d.games.StartGuess(room, msg.SenderID)
	} else {
		_, err = d.games.StartTrivia(room, msg.SenderID)
	}

	switch {
	case errors.Is(err, games.ErrSessionActive):
		d.sendText(msg, "⚠️ هناك لعبة نشطة بالفعل في هذه القناة!")
	case err != nil:
		slog.Error("game start failed", "error", err, "kind", string(kind), "channel_id", msg.ChannelID)
		d.sendText(msg, msgCommandFailed)
	}
}

func (d *Dispatcher) cmdTime(msg bus.InboundMessage) {
	now := time.Now()
	fields := []bus.RichField{
		{Name: "⏰ الساعة", Value: now.Format("15:04:05"), Inline: true},
		{Name: "📅 التاريخ", Value: now.Format("2006-01-02"), Inline: true},
	}
	if d.store.Settings(msg.GuildID, msg.ChannelID).TimeGreetings {
		fields = append(fields, bus.RichField{Name: "💬 تحية", Value: d.lib.TimeGreeting(now)})
	}

	d.sendRich(msg, &bus.RichContent{
		Title:  "🕐 الوقت الحالي",
		Color:  colorInfo,
		Fields: fields,
	})
}

func (d *Dispatcher) cmdMotivation(msg bus.InboundMessage) {
	d.sendRich(msg, &bus.RichContent{
		Title:  fmt.Sprintf("💪 رسالة تحفيزية %s", d.lib.Emoji("success")),
		Body:   d.lib.Interactive("motivation"),
		Color:  colorDanger,
		Footer: "أنت قادر على تحقيق المستحيل!",
	})
}

func (d *Dispatcher) cmdWisdom(msg bus.InboundMessage) {
	d.sendRich(msg, &bus.RichContent{
		Title:  fmt.Sprintf("📚 حكمة اليوم %s", d.lib.Emoji("wisdom")),
		Body:   d.lib.Interactive("wisdom"),
		Color:  colorPurple,
		Footer: "الحكمة ضالة المؤمن",
	})
}

// moodKinds maps mood words to an emotion table. Tested in order; first
// matching word wins.
var moodKinds = []struct {
	kind  string
	color int
	words []string
}{
	{"happy", colorSuccess, []string{"سعيد", "فرحان", "مبسوط", "رائع"}},
	{"sad", colorInfo, []string{"حزين", "زعلان", "مكتئب", "تعبان"}},
	{"excited", colorAmber, []string{"متحمس", "نشيط", "حماسي", "متفائل"}},
	{"tired", colorGray, []string{"متعب", "مرهق", "نعسان", "كسلان"}},
}

func (d *Dispatcher) cmdMood(msg bus.InboundMessage, args []string) {
	if len(args) == 0 {
		d.sendText(msg, fmt.Sprintf("%s %s", mention(msg), d.lib.Question()))
		return
	}

	mood := strings.ToLower(strings.Join(args, " "))
	body := "أفهم مشاعرك، وأتمنى لك يوماً أفضل 💙"
	color := colorPurple

	for _, mk := range moodKinds {
		for _, w := range mk.words {
			if strings.Contains(mood, w) {
				body = d.lib.Emotion(mk.kind)
				color = mk.color
				break
			}
		}
		if color != colorPurple {
			break
		}
	}

	d.sendRich(msg, &bus.RichContent{
		Title: "💭 حالتك النفسية",
		Body:  body,
		Color: color,
	})
}

func (d *Dispatcher) cmdPrayer(msg bus.InboundMessage) {
	d.sendRich(msg, &bus.RichContent{
		Title:  "🤲 دعاء",
		Body:   d.lib.Prayer(),
		Color:  colorGreen,
		Footer: "آمين يا رب العالمين",
	})
}

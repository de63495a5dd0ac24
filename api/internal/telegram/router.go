package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ad-checker/api/internal/audit"
	"ad-checker/api/internal/llm"
)

// Router drives the bot surface: marketing copy comes in as a text message or
// a poster photo, the audit report goes back as a message. Per-chat state is
// limited to the selected publishing channel.
type Router struct {
	Bot   *tgbotapi.BotAPI
	Eng   llm.Engine
	Rules *audit.RuleSet

	channels sync.Map // chatID -> channel name
}

const defaultChannel = "facebook"

func (r *Router) channelFor(chatID int64) string {
	if v, ok := r.channels.Load(chatID); ok {
		return v.(string)
	}
	return defaultChannel
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	if text := strings.TrimSpace(upd.Message.Text); text != "" {
		r.runTextCheck(cid, text)
		return
	}
	r.send(cid, "Send me marketing copy as text, or a poster photo.")
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Send marketing copy (text or a poster photo) and I'll return a corrected version, a friendly rewrite, compliance warnings and a grade.\nCommands: /health, /channel")
	case "health":
		r.send(cid, "✅ OK")
	case "channel":
		args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(upd.Message.Text, "/channel")))
		if len(args) == 0 {
			r.send(cid, "Current channel: "+r.channelFor(cid)+"\nUsage: /channel facebook | /channel zalo")
			return
		}
		name := strings.ToLower(args[0])
		if _, ok := r.Rules.Forbidden[name]; !ok {
			r.send(cid, "Unknown channel. Available: facebook | zalo")
			return
		}
		r.channels.Store(cid, name)
		r.send(cid, "Ok, checking against channel: "+name)
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) runTextCheck(chatID int64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Second)
	defer cancel()

	rec := map[string]any{}
	raw, err := r.Eng.Check(ctx, llm.CheckInput{Text: text})
	if err != nil {
		log.Printf("bot: %s generation failed: %v", r.Eng.Name(), err)
	} else if m, err := audit.ExtractObject(raw); err != nil {
		log.Printf("bot: malformed %s response: %q", r.Eng.Name(), raw)
	} else {
		rec = m
	}

	report := audit.Run(r.Rules, rec, text, audit.Input{Channel: r.channelFor(chatID)})
	r.sendReport(chatID, report)
}

func (r *Router) runImageCheck(chatID int64, img []byte, mime string) {
	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Second)
	defer cancel()

	rec := map[string]any{}
	raw, err := r.Eng.Check(ctx, llm.CheckInput{Image: img, MIME: mime})
	if err != nil {
		log.Printf("bot: %s generation failed: %v", r.Eng.Name(), err)
	} else if m, err := audit.ExtractObject(raw); err != nil {
		log.Printf("bot: malformed %s response: %q", r.Eng.Name(), raw)
	} else {
		rec = m
	}

	report := audit.Run(r.Rules, rec, "", audit.Input{Channel: r.channelFor(chatID)})
	r.sendReport(chatID, report)
}

func (r *Router) sendReport(chatID int64, rep audit.Report) {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d (%s)\n%s\n", rep.Score, rep.Grade, rep.Reason)

	if n := len(rep.ForbiddenFindings) + len(rep.CompanyFindings) + len(rep.RequirementFindings); n > 0 {
		b.WriteString("\n⚠️ Warnings:\n")
		for _, f := range rep.ForbiddenFindings {
			fmt.Fprintf(&b, "• %s — %s\n", f.Message, f.Reason)
		}
		for _, f := range rep.CompanyFindings {
			fmt.Fprintf(&b, "• %s\n", f.Message)
		}
		for _, f := range rep.RequirementFindings {
			fmt.Fprintf(&b, "• %s\n", f.Message)
		}
	}

	if s := strings.TrimSpace(rep.RewriteText); s != "" {
		b.WriteString("\n📝 Friendly rewrite:\n")
		b.WriteString(s)
		b.WriteString("\n")
	}
	if len(rep.Hashtags) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(rep.Hashtags, " "))
		b.WriteString("\n")
	}

	text := b.String()
	if len(text) > 3900 {
		text = text[:3900] + "…"
	}
	r.send(chatID, text)
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("Error: %v", err))
}

package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"scriptsubmit/internal/workflow"
)

// adminNotifier DMs verified submissions to the configured admin:
// a summary embed followed by the raw script code, chunk by chunk.
type adminNotifier struct {
	bot *Bot
}

func (n *adminNotifier) Deliver(ctx context.Context, d *workflow.Delivery) error {
	b := n.bot
	s, err := b.currentSession()
	if err != nil {
		return err
	}

	ch, err := s.UserChannelCreate(b.cfg.AdminUserID)
	if err != nil {
		return fmt.Errorf("open admin DM: %w", err)
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := s.ChannelMessageSendEmbed(ch.ID, adminEmbed(d.Summary)); err != nil {
		return fmt.Errorf("send admin summary: %w", err)
	}

	for idx, chunk := range d.CodeChunks {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}
		header := fmt.Sprintf("**💻 Script Code from %s:**", d.Summary.Username)
		if len(d.CodeChunks) > 1 {
			header = fmt.Sprintf("**💻 Script Code from %s (part %d/%d):**", d.Summary.Username, idx+1, len(d.CodeChunks))
		}
		msg := fmt.Sprintf("%s\n```lua\n%s\n```", header, chunk)
		if _, err := s.ChannelMessageSend(ch.ID, msg); err != nil {
			return fmt.Errorf("send script code: %w", err)
		}
	}

	b.log.Successf("submission from %s sent to admin", d.Summary.Username)

	if b.arch != nil {
		if err := b.arch.Record(ctx, d.Summary, time.Now()); err != nil {
			// Archive trouble must not fail a delivery that already
			// reached the admin.
			b.log.Errorf("archive record: %v", err)
		}
	}
	return nil
}

func adminEmbed(sum workflow.Summary) *discordgo.MessageEmbed {
	keyStatus := "❌ Disabled"
	if sum.HasKeySystem {
		keyStatus = fmt.Sprintf("✅ Enabled\nKey: %s", sum.ScriptKey)
	}
	embed := &discordgo.MessageEmbed{
		Color:       0x00ff00,
		Title:       "✅ NEW VERIFIED SCRIPT SUBMISSION",
		Description: fmt.Sprintf("**Submitted by:** %s\n**User ID:** %s", sum.Username, sum.UserID),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📝 Script Name", Value: sum.ScriptName, Inline: true},
			{Name: "🎮 Game Link", Value: sum.GameLink, Inline: true},
			{Name: "📅 Submitted", Value: sum.SubmittedAt.Format(time.RFC1123), Inline: true},
			{Name: "🔑 Key System", Value: keyStatus, Inline: true},
			{Name: "⚡ Features", Value: sum.Features},
			{Name: "📄 Description", Value: sum.Description},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if sum.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: sum.ImageURL}
	}
	return embed
}

package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"scriptsubmit/internal/workflow"
)

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Successf("logged in as %s", s.State.User.Username)
	b.log.Infof("guilds: %d", len(s.State.Guilds))
	b.log.Infof("admin user: %s", b.cfg.AdminUserID)

	_ = s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: "online",
		Activities: []*discordgo.Activity{{
			Name: "!apply for script submission",
			Type: discordgo.ActivityTypeWatching,
		}},
	})
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	// Faults never propagate past the dispatch boundary.
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorf("message handler panic: %v", r)
		}
	}()

	switch m.Content {
	case "!ping":
		_ = b.sendThrottled(s, m.ChannelID, "🏓 Pong! Bot is up.")
		return
	case "!test":
		b.replyTestEmbed(s, m)
		return
	case "!apply":
		b.log.Infof("apply command used by %s", m.Author.String())
		_, err := s.ChannelMessageSendComplex(m.ChannelID, introMessage())
		if err != nil {
			b.log.Errorf("apply command: %v", err)
			_ = b.sendThrottled(s, m.ChannelID, "❌ Error creating application form. Please try again.")
		}
		return
	}

	user := workflow.User{ID: m.Author.ID, Name: m.Author.String()}
	ctx := context.Background()

	if len(m.Attachments) > 0 && m.Attachments[0] != nil {
		att := m.Attachments[0]
		reply := b.wf.Dispatch(ctx, workflow.AttachmentReceived{
			User:        user,
			URL:         att.URL,
			ContentType: att.ContentType,
		})
		if reply.Kind == workflow.ReplyImageSaved {
			b.log.Infof("image uploaded by %s", m.Author.String())
			_ = b.sendThrottled(s, m.ChannelID, "✅ **Image uploaded successfully!** You can now confirm your submission.")
		}
	}

	text := m.Content
	if text == "" {
		return
	}
	reply := b.wf.Dispatch(ctx, workflow.TextReceived{User: user, Text: text})
	b.renderTextReply(s, m, reply)
}

// renderTextReply renders outcomes of free-text messages (script keys
// and verification codes).
func (b *Bot) renderTextReply(s *discordgo.Session, m *discordgo.MessageCreate, reply workflow.Reply) {
	switch reply.Kind {
	case workflow.ReplyNone:
		return
	case workflow.ReplyKeyInvalid:
		_ = b.sendThrottled(s, m.ChannelID, "❌ **Key must be between 1-100 characters!** Please try again:")
	case workflow.ReplyKeySaved:
		b.log.Infof("script key saved for %s", m.Author.String())
		_ = b.sendThrottled(s, m.ChannelID, "✅ **Key saved!** This key is for admin use only.")
		_, err := s.ChannelMessageSendComplex(m.ChannelID, confirmMessage(reply.Submission))
		if err != nil {
			b.log.Errorf("confirmation message: %v", err)
		}
	case workflow.ReplyExpired:
		_ = b.sendThrottled(s, m.ChannelID, "❌ **Your verification task has expired!** Please start over with !apply.")
	case workflow.ReplyNotFound:
		_ = b.sendThrottled(s, m.ChannelID, "❌ **Form data not found!** Please start over with !apply.")
	case workflow.ReplyWrongCode:
		b.log.Infof("wrong verification code from %s", m.Author.String())
		_, _ = s.ChannelMessageSendEmbed(m.ChannelID, failEmbed())
	case workflow.ReplyDelivered:
		b.log.Successf("submission delivered for %s", m.Author.String())
		_, _ = s.ChannelMessageSendEmbed(m.ChannelID, successEmbed(reply.Submission))
	case workflow.ReplyDeliveryFailed:
		b.log.Errorf("admin delivery failed for %s: %s", m.Author.String(), reply.Detail)
		_ = b.sendThrottled(s, m.ChannelID, "❌ **Verification successful but failed to send to admin.** Contact support!")
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	responded := false
	// A fault here is reported back on the triggering interaction when
	// no response has gone out yet; otherwise it is only logged.
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorf("interaction handler panic: %v", r)
			if !responded {
				_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseChannelMessageWithSource,
					Data: &discordgo.InteractionResponseData{
						Content: "❌ **Something went wrong!** Please try again or contact support.",
						Flags:   discordgo.MessageFlagsEphemeral,
					},
				})
			}
		}
	}()

	user := interactionUser(i)
	if user.ID == "" {
		return
	}
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		responded = b.handleComponent(ctx, s, i, user)
	case discordgo.InteractionModalSubmit:
		responded = b.handleModalSubmit(ctx, s, i, user)
	}
}

func (b *Bot) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user workflow.User) bool {
	switch i.MessageComponentData().CustomID {
	case "open_form":
		b.log.Infof("%s opened the submission form", user.Name)
		reply := b.wf.Dispatch(ctx, workflow.StartRequested{User: user})
		if reply.Kind == workflow.ReplyPendingSubmission {
			return respondEphemeral(s, i, "❌ **You already have a pending submission!** Complete it or wait for expiry (48 hours).")
		}
		return respond(s, i, formModal())

	case "enable_key_system":
		reply := b.wf.Dispatch(ctx, workflow.ButtonPressed{User: user, Button: workflow.ButtonEnableKey})
		if r, done := b.respondStale(s, i, reply); done {
			return r
		}
		ok := respondEphemeral(s, i, "🔑 **Key System Enabled!**\n\nPlease type your script key in the chat (the key users will need to enter):")
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("🔑 <@%s>, please send your script key now (1-100 characters):", user.ID),
		})
		return ok

	case "disable_key_system":
		reply := b.wf.Dispatch(ctx, workflow.ButtonPressed{User: user, Button: workflow.ButtonDisableKey})
		if r, done := b.respondStale(s, i, reply); done {
			return r
		}
		return respond(s, i, ephemeralMessage(confirmMessage(reply.Submission)))

	case "upload_image":
		reply := b.wf.Dispatch(ctx, workflow.ButtonPressed{User: user, Button: workflow.ButtonUploadImage})
		if r, done := b.respondStale(s, i, reply); done {
			return r
		}
		return respondEphemeral(s, i, "📷 **Upload your image now!**\n\nSend an image in this channel within 2 minutes. First image will be saved.")

	case "confirm_submission":
		b.log.Infof("final confirmation clicked by %s", user.Name)
		reply := b.wf.Dispatch(ctx, workflow.ButtonPressed{User: user, Button: workflow.ButtonConfirm})
		if r, done := b.respondStale(s, i, reply); done {
			return r
		}
		b.log.Infof("verification task assigned to %s: %s", user.Name, reply.Link)
		ok := respond(s, i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{verificationEmbed(reply.Link, reply.ExpiresAt)},
				Components: []discordgo.MessageComponent{},
			},
		})
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("🔗 **Direct Link:** %s\n\n⚠️ **Remember: Only 1 attempt! and type the code**", reply.Link),
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return ok
	}
	return false
}

func (b *Bot) handleModalSubmit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user workflow.User) bool {
	data := i.ModalSubmitData()
	if data.CustomID != "script_form" {
		return false
	}
	b.log.Infof("form submitted by %s", user.Name)

	fields := workflow.FormFields{
		ScriptName:  modalValue(data, 0),
		GameLink:    modalValue(data, 1),
		Features:    modalValue(data, 2),
		ScriptCode:  modalValue(data, 3),
		Description: modalValue(data, 4),
	}
	reply := b.wf.Dispatch(ctx, workflow.FormSubmitted{User: user, Fields: fields})
	if reply.Kind == workflow.ReplyInvalidForm {
		return respondEphemeral(s, i, "❌ **Invalid form:** "+reply.Detail)
	}
	return respond(s, i, keySystemMessage())
}

// respondStale maps the shared expiry/not-found outcomes; done is false
// when the reply is a normal one the caller should render.
func (b *Bot) respondStale(s *discordgo.Session, i *discordgo.InteractionCreate, reply workflow.Reply) (responded, done bool) {
	switch reply.Kind {
	case workflow.ReplyNotFound:
		return respondEphemeral(s, i, "❌ **Form data not found!** Please start over with !apply."), true
	case workflow.ReplyExpired:
		return respondEphemeral(s, i, "❌ **Your submission has expired!** Please start over with !apply."), true
	}
	return false, false
}

func (b *Bot) replyTestEmbed(s *discordgo.Session, m *discordgo.MessageCreate) {
	st := b.Status()
	embed := &discordgo.MessageEmbed{
		Color:       0x00ff00,
		Title:       "✅ Bot Status Test",
		Description: "Bot is running.",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📊 Servers", Value: fmt.Sprintf("%d", st.Guilds), Inline: true},
			{Name: "📝 Live submissions", Value: fmt.Sprintf("%d", st.Submissions), Inline: true},
			{Name: "⏱️ Uptime", Value: time.Since(st.StartTime).Round(time.Second).String(), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	_, _ = s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

// interactionUser resolves the acting user for guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) workflow.User {
	if i.Member != nil && i.Member.User != nil {
		return workflow.User{ID: i.Member.User.ID, Name: i.Member.User.String()}
	}
	if i.User != nil {
		return workflow.User{ID: i.User.ID, Name: i.User.String()}
	}
	return workflow.User{}
}

// modalValue extracts the text input of the idx-th modal row.
func modalValue(data discordgo.ModalSubmitInteractionData, idx int) string {
	if idx >= len(data.Components) {
		return ""
	}
	row, ok := data.Components[idx].(*discordgo.ActionsRow)
	if !ok || len(row.Components) == 0 {
		return ""
	}
	in, ok := row.Components[0].(*discordgo.TextInput)
	if !ok {
		return ""
	}
	return in.Value
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, resp *discordgo.InteractionResponse) bool {
	return s.InteractionRespond(i.Interaction, resp) == nil
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) bool {
	return respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

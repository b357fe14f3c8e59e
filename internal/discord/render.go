package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"scriptsubmit/internal/workflow"
)

// previewLimit bounds features/description text inside user-facing embeds.
const previewLimit = 100

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLimit {
		return s
	}
	return string(r[:previewLimit]) + "..."
}

func discordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}

// introMessage is the reply to !apply: process overview plus the
// start-application button.
func introMessage() *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Color: 0x0099ff,
		Title: "🚀 Roblox Script Submission",
		Description: "Submit your Roblox script for review!\n\n**Process:**\n" +
			"1️⃣ Fill out the form with script details\n" +
			"2️⃣ Choose if you want a key system\n" +
			"3️⃣ Upload an image (optional)\n" +
			"4️⃣ Complete verification task (1 attempt only)\n" +
			"5️⃣ Send verification code",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "⚠️ Important",
				Value: "• You get **only 1 attempt** for verification\n" +
					"• Submissions expire after **48 hours**\n" +
					"• Key system is completely optional",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Click the button below to start!"},
	}
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: "open_form",
					Label:    "📝 Start Application",
					Style:    discordgo.PrimaryButton,
				},
			}},
		},
	}
}

// formModal opens the five-field submission form.
func formModal() *discordgo.InteractionResponse {
	row := func(c discordgo.TextInput) discordgo.ActionsRow {
		return discordgo.ActionsRow{Components: []discordgo.MessageComponent{c}}
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "script_form",
			Title:    "🎮 Roblox Script Submission",
			Components: []discordgo.MessageComponent{
				row(discordgo.TextInput{
					CustomID:    "script_name",
					Label:       "Script Name",
					Style:       discordgo.TextInputShort,
					Placeholder: "Enter your script name...",
					MaxLength:   100,
					Required:    true,
				}),
				row(discordgo.TextInput{
					CustomID:    "game_link",
					Label:       "Roblox Game Link",
					Style:       discordgo.TextInputShort,
					Placeholder: "https://www.roblox.com/games/...",
					Required:    true,
				}),
				row(discordgo.TextInput{
					CustomID:    "features",
					Label:       "Script Features",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "List the main features...",
					Required:    true,
				}),
				row(discordgo.TextInput{
					CustomID:    "script_code",
					Label:       "Script Code",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Paste your Lua/Roblox script here...",
					Required:    true,
				}),
				row(discordgo.TextInput{
					CustomID:    "description",
					Label:       "Script Description",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Describe your script...",
					Required:    false,
				}),
			},
		},
	}
}

// keySystemMessage follows a stored form: enable or skip the key system.
func keySystemMessage() *discordgo.InteractionResponse {
	embed := &discordgo.MessageEmbed{
		Color:       0xffaa00,
		Title:       "🔑 Key System Setup",
		Description: "**Do you want your script to have a key system?**",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "✅ With Key System", Value: "• More secure\n• You provide the key\n• Users must enter key", Inline: true},
			{Name: "❌ No Key System", Value: "• Public access\n• No key required\n• Anyone can use", Inline: true},
		},
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{
						CustomID: "enable_key_system",
						Label:    "✅ Enable Key System",
						Style:    discordgo.SuccessButton,
					},
					discordgo.Button{
						CustomID: "disable_key_system",
						Label:    "❌ No Key System",
						Style:    discordgo.SecondaryButton,
					},
				}},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// confirmMessage shows the submission summary with upload/confirm buttons.
func confirmMessage(sub *workflow.Submission) *discordgo.MessageSend {
	keyStatus := "❌ Disabled"
	if sub.HasKeySystem {
		keyStatus = fmt.Sprintf("✅ Enabled\nKey: ||%s|| (This key is for admin use only)", sub.ScriptKey)
	}
	embed := &discordgo.MessageEmbed{
		Color:       0x00ff00,
		Title:       "✅ Submission Ready!",
		Description: "**Review your submission:**",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📝 Script Name", Value: sub.ScriptName, Inline: true},
			{Name: "🎮 Game Link", Value: sub.GameLink, Inline: true},
			{Name: "🔑 Key System", Value: keyStatus, Inline: true},
			{Name: "⚡ Features", Value: preview(sub.Features)},
			{Name: "📄 Description", Value: preview(sub.Description)},
			{Name: "⏰ Expires", Value: discordTimestamp(sub.ExpiresAt)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Upload image (optional) then confirm to proceed"},
	}
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: "upload_image",
					Label:    "📷 Upload Image",
					Style:    discordgo.SecondaryButton,
				},
				discordgo.Button{
					CustomID: "confirm_submission",
					Label:    "✅ Confirm & Start Verification",
					Style:    discordgo.SuccessButton,
				},
			}},
		},
	}
}

// ephemeralMessage lifts a channel message into an ephemeral
// interaction response.
func ephemeralMessage(ms *discordgo.MessageSend) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     ms.Embeds,
			Components: ms.Components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	}
}

// verificationEmbed presents the one-attempt challenge.
func verificationEmbed(link string, expiresAt time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0xff6600,
		Title:       "🔐 Final Step: Verification",
		Description: "**Complete this verification to submit your script.**",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔗 Verification Link", Value: fmt.Sprintf("**[Click Here to Complete Task](%s)**", link)},
			{Name: "📝 Instructions:", Value: "1. Click the link above\n2. Complete the task\n3. Copy the code you get\n4. Send that code in this chat"},
			{Name: "⚠️ IMPORTANT:", Value: "• **ONLY 1 ATTEMPT** - no second chances!\n• Code is case-sensitive\n• Expires " + discordTimestamp(expiresAt)},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "ONE CHANCE ONLY - Be careful!"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// successEmbed confirms delivery to the submitter.
func successEmbed(sub *workflow.Submission) *discordgo.MessageEmbed {
	keyStatus := "❌ Disabled"
	if sub.HasKeySystem {
		keyStatus = "✅ Enabled"
	}
	return &discordgo.MessageEmbed{
		Color:       0x00ff00,
		Title:       "🎉 Verification Complete!",
		Description: "**Your script has been successfully submitted!**",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📝 Script Name", Value: sub.ScriptName, Inline: true},
			{Name: "🔑 Key System", Value: keyStatus, Inline: true},
			{Name: "✅ Status", Value: "Submitted for Review", Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Thank you! Admin will review soon."},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// failEmbed tells the submitter the single attempt is spent.
func failEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0xff0000,
		Title:       "❌ Verification Failed",
		Description: "**Incorrect verification code.**\n\n**Your submission has been cancelled (only 1 attempt allowed).**",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔄 Start Over", Value: "Use `!apply` to submit again"},
			{Name: "💡 Tips", Value: "• Complete the full task\n• Copy exact code\n• Check for extra spaces"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Be more careful next time!"},
	}
}

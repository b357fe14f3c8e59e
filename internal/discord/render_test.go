package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptsubmit/internal/workflow"
)

func TestPreviewTruncates(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	long := strings.Repeat("x", previewLimit+1)
	assert.Equal(t, strings.Repeat("x", previewLimit)+"...", preview(long))
}

func TestConfirmMessageSpoilersKey(t *testing.T) {
	sub := &workflow.Submission{
		ScriptName:   "Auto Farm",
		GameLink:     "https://roblox.com/games/1",
		Features:     "speed",
		Description:  "desc",
		HasKeySystem: true,
		ScriptKey:    "abc",
		ExpiresAt:    time.Now().Add(48 * time.Hour),
	}
	ms := confirmMessage(sub)
	require.Len(t, ms.Embeds, 1)
	keyField := ms.Embeds[0].Fields[2]
	assert.Contains(t, keyField.Value, "||abc||")

	sub.HasKeySystem = false
	ms = confirmMessage(sub)
	assert.Equal(t, "❌ Disabled", ms.Embeds[0].Fields[2].Value)
}

func TestAdminEmbedIncludesImage(t *testing.T) {
	sum := workflow.Summary{
		Username:   "alice#0",
		UserID:     "1001",
		ScriptName: "Auto Farm",
		GameLink:   "https://roblox.com/games/1",
		Features:   "speed",
		ImageURL:   "https://cdn/shot.png",
	}
	e := adminEmbed(sum)
	require.NotNil(t, e.Image)
	assert.Equal(t, "https://cdn/shot.png", e.Image.URL)

	sum.ImageURL = ""
	assert.Nil(t, adminEmbed(sum).Image)
}

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "script_form",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "script_name", Value: "Auto Farm"},
			}},
		},
	}
	assert.Equal(t, "Auto Farm", modalValue(data, 0))
	// Out of range and malformed rows degrade to empty.
	assert.Equal(t, "", modalValue(data, 3))
	assert.Equal(t, "", modalValue(discordgo.ModalSubmitInteractionData{}, 0))
}

func TestInteractionUser(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "1001", Username: "alice"}},
	}}
	assert.Equal(t, "1001", interactionUser(guild).ID)

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "2002", Username: "bob"},
	}}
	assert.Equal(t, "2002", interactionUser(dm).ID)

	assert.Empty(t, interactionUser(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}).ID)
}

package workflow

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDeliverySummary(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sub := &Submission{
		UserID:       "1001",
		Username:     "alice#0",
		ScriptName:   "Auto Farm",
		GameLink:     "https://roblox.com/games/1",
		ScriptCode:   "print('x')",
		Features:     "speed,farm",
		Description:  "does things",
		HasKeySystem: true,
		ScriptKey:    "abc",
		ImageURL:     "https://cdn/shot.png",
		CreatedAt:    created,
	}

	d := BuildDelivery(sub)
	assert.Equal(t, "alice#0", d.Summary.Username)
	assert.Equal(t, "abc", d.Summary.ScriptKey)
	assert.Equal(t, "https://cdn/shot.png", d.Summary.ImageURL)
	assert.Equal(t, created, d.Summary.SubmittedAt)
	assert.Equal(t, []string{"print('x')"}, d.CodeChunks)
}

func TestBuildDeliveryTruncatesLongFields(t *testing.T) {
	sub := &Submission{
		Features:    strings.Repeat("f", 600),
		Description: strings.Repeat("d", 500),
	}
	d := BuildDelivery(sub)
	assert.Equal(t, strings.Repeat("f", 500)+"...", d.Summary.Features)
	// Exactly at the limit is left alone.
	assert.Equal(t, strings.Repeat("d", 500), d.Summary.Description)
}

func TestBuildDeliveryChunksLongCode(t *testing.T) {
	sub := &Submission{ScriptCode: strings.Repeat("a", 1800*2+10)}
	d := BuildDelivery(sub)
	require.Len(t, d.CodeChunks, 3)
	assert.Len(t, d.CodeChunks[0], 1800)
	assert.Len(t, d.CodeChunks[1], 1800)
	assert.Len(t, d.CodeChunks[2], 10)
	assert.Equal(t, sub.ScriptCode, strings.Join(d.CodeChunks, ""))
}

func TestChunkIsRuneSafe(t *testing.T) {
	code := strings.Repeat("é", 1801) // multibyte
	d := BuildDelivery(&Submission{ScriptCode: code})
	require.Len(t, d.CodeChunks, 2)
	assert.Equal(t, code, strings.Join(d.CodeChunks, ""))
	assert.Equal(t, 1800, len([]rune(d.CodeChunks[0])))
}

func TestCatalogPickReturnsMemberPair(t *testing.T) {
	c := DefaultCatalog()
	for i := 0; i < 20; i++ {
		link, code := c.Pick()
		require.Contains(t, c, link)
		assert.Equal(t, c[link], code)
	}
}

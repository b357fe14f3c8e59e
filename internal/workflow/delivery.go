package workflow

import "time"

const (
	// codeChunkLimit keeps each raw-code chunk inside a Discord message
	// once the adapter adds code fencing.
	codeChunkLimit = 1800
	// summaryFieldLimit bounds the features/description text in the
	// admin summary.
	summaryFieldLimit = 500
)

// Summary is the structured part of an admin delivery.
type Summary struct {
	UserID       string
	Username     string
	ScriptName   string
	GameLink     string
	Features     string
	Description  string
	HasKeySystem bool
	ScriptKey    string
	ImageURL     string
	SubmittedAt  time.Time
}

// Delivery is what the admin notifier receives: a summary plus the raw
// script code split into message-sized chunks.
type Delivery struct {
	Summary    Summary
	CodeChunks []string
}

// BuildDelivery packages a verified submission for the admin notifier.
func BuildDelivery(sub *Submission) *Delivery {
	return &Delivery{
		Summary: Summary{
			UserID:       sub.UserID,
			Username:     sub.Username,
			ScriptName:   sub.ScriptName,
			GameLink:     sub.GameLink,
			Features:     truncate(sub.Features, summaryFieldLimit),
			Description:  truncate(sub.Description, summaryFieldLimit),
			HasKeySystem: sub.HasKeySystem,
			ScriptKey:    sub.ScriptKey,
			ImageURL:     sub.ImageURL,
			SubmittedAt:  sub.CreatedAt,
		},
		CodeChunks: chunk(sub.ScriptCode, codeChunkLimit),
	}
}

// truncate cuts s to at most n runes, appending "..." when it cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// chunk splits s into pieces of at most n runes each. The whole script
// is always delivered; nothing is dropped.
func chunk(s string, n int) []string {
	r := []rune(s)
	if len(r) == 0 {
		return []string{""}
	}
	var out []string
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	return append(out, string(r))
}

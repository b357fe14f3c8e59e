package workflow

import "time"

// SubmissionTTL is how long a submission (and its verification task)
// stays live before the sweeper evicts it.
const SubmissionTTL = 48 * time.Hour

// ImageWindowTTL bounds how long the bot listens for an uploaded image
// after the user presses the upload button.
const ImageWindowTTL = 2 * time.Minute

// DefaultSweepInterval is how often expired records are evicted.
const DefaultSweepInterval = 10 * time.Minute

// DefaultDescription is stored when the form's description field is left empty.
const DefaultDescription = "No description provided"

// User identifies the submitter as seen by the chat platform.
type User struct {
	ID   string
	Name string
}

// FormFields carries the five named inputs of the submission form.
// Description is the only optional field.
type FormFields struct {
	ScriptName  string `validate:"required,max=100"`
	GameLink    string `validate:"required,max=200"`
	Features    string `validate:"required"`
	ScriptCode  string `validate:"required"`
	Description string
}

// Submission is a user's in-progress script entry. At most one live
// submission exists per user.
type Submission struct {
	UserID       string
	Username     string
	ScriptName   string
	GameLink     string
	ScriptCode   string
	Features     string
	Description  string
	HasKeySystem bool
	ScriptKey    string
	ImageURL     string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the submission's deadline has passed.
func (s *Submission) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// VerificationTask is the single outstanding challenge bound to a
// submission. It is consumed after exactly one response attempt.
type VerificationTask struct {
	Link         string
	ExpectedCode string
	ExpiresAt    time.Time
}

// Expired reports whether the task's deadline has passed.
func (t *VerificationTask) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// KeySetupState marks a user whose next free-text message is a script
// key rather than a verification code.
type KeySetupState struct {
	AwaitingKey bool
}

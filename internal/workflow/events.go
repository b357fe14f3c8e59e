package workflow

// Event is an inbound event from the chat platform. The concrete types
// below are the only implementations; Dispatch switches over them.
type Event interface {
	event()
}

// StartRequested fires when the user presses the start-application button.
type StartRequested struct {
	User User
}

// FormSubmitted fires when the user submits the script form.
type FormSubmitted struct {
	User   User
	Fields FormFields
}

// Button identifies which workflow button was pressed.
type Button string

const (
	ButtonEnableKey   Button = "enable_key_system"
	ButtonDisableKey  Button = "disable_key_system"
	ButtonUploadImage Button = "upload_image"
	ButtonConfirm     Button = "confirm_submission"
)

// ButtonPressed fires for the key-system, image-upload and confirm buttons.
type ButtonPressed struct {
	User   User
	Button Button
}

// TextReceived fires for any free-text message from a user. The workflow
// decides whether it is a script key, a verification code, or noise.
type TextReceived struct {
	User User
	Text string
}

// AttachmentReceived fires when a user message carries an attachment.
type AttachmentReceived struct {
	User        User
	URL         string
	ContentType string
}

func (StartRequested) event()     {}
func (FormSubmitted) event()      {}
func (ButtonPressed) event()      {}
func (TextReceived) event()       {}
func (AttachmentReceived) event() {}

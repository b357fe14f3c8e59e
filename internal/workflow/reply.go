package workflow

import "time"

// ReplyKind tells the hosting adapter which user-visible response to
// render. Rendering itself (embeds, buttons, plain text) is adapter
// territory; the workflow only names the outcome.
type ReplyKind int

const (
	// ReplyNone means the event was not addressed to the workflow.
	ReplyNone ReplyKind = iota
	// ReplyOpenForm asks the adapter to present the submission form.
	ReplyOpenForm
	// ReplyPendingSubmission rejects a start while a live submission exists.
	ReplyPendingSubmission
	// ReplyChooseKeySystem follows a stored form: enable or skip the key system.
	ReplyChooseKeySystem
	// ReplyAwaitKey prompts the user to type the script key in chat.
	ReplyAwaitKey
	// ReplyKeyInvalid re-prompts after a key outside the 1-100 char bounds.
	ReplyKeyInvalid
	// ReplyKeySaved acknowledges the key and shows the confirmation summary.
	ReplyKeySaved
	// ReplyConfirmReady shows the confirmation summary with upload/confirm buttons.
	ReplyConfirmReady
	// ReplyImageWindowOpen tells the user to send an image within the window.
	ReplyImageWindowOpen
	// ReplyImageSaved acknowledges a stored image.
	ReplyImageSaved
	// ReplyChallenge presents the verification link; one attempt only.
	ReplyChallenge
	// ReplyDelivered confirms the submission reached the administrator.
	ReplyDelivered
	// ReplyDeliveryFailed: code matched but the admin could not be reached.
	ReplyDeliveryFailed
	// ReplyWrongCode: the single attempt failed, submission cancelled.
	ReplyWrongCode
	// ReplyExpired: the referenced submission or task passed its deadline.
	ReplyExpired
	// ReplyNotFound: no matching record, user must start over.
	ReplyNotFound
	// ReplyInvalidForm: the form fields failed validation.
	ReplyInvalidForm
)

// Reply is the workflow's outcome for one dispatched event.
// Submission, when set, is a snapshot safe to read without locking.
type Reply struct {
	Kind       ReplyKind
	Submission *Submission
	Link       string
	ExpiresAt  time.Time
	Detail     string
}

package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"scriptsubmit/internal/validate"
)

// Notifier delivers a verified submission to the administrator.
type Notifier interface {
	Deliver(ctx context.Context, d *Delivery) error
}

// Workflow owns the three per-user stores and drives the submission
// state machine. All transitions run under one mutex; the sweeper and
// the image-window timers share it, so interleavings are safe.
type Workflow struct {
	mu       sync.Mutex
	subs     *table[*Submission]
	tasks    *table[*VerificationTask]
	keySetup *table[*KeySetupState]
	windows  map[string]*imageWindow

	catalog  Catalog
	notifier Notifier

	// now is swapped out by tests to move time.
	now func() time.Time
}

// New builds a workflow around the given catalog and notifier.
// Panics on an empty catalog: that is a configuration error and the
// process should not come up with it.
func New(catalog Catalog, notifier Notifier) *Workflow {
	if len(catalog) == 0 {
		panic("workflow: verification catalog is empty")
	}
	return &Workflow{
		subs:     newTable[*Submission](),
		tasks:    newTable[*VerificationTask](),
		keySetup: newTable[*KeySetupState](),
		windows:  make(map[string]*imageWindow),
		catalog:  catalog,
		notifier: notifier,
		now:      time.Now,
	}
}

// Stats reports live record counts for status surfaces.
func (w *Workflow) Stats() (submissions, tasks int) {
	return w.subs.len(), w.tasks.len()
}

// Dispatch routes one inbound event through the state machine and
// returns the outcome the adapter should render.
func (w *Workflow) Dispatch(ctx context.Context, ev Event) Reply {
	switch ev := ev.(type) {
	case StartRequested:
		return w.start(ev.User)
	case FormSubmitted:
		return w.submitForm(ev.User, ev.Fields)
	case ButtonPressed:
		switch ev.Button {
		case ButtonEnableKey:
			return w.enableKeySystem(ev.User)
		case ButtonDisableKey:
			return w.disableKeySystem(ev.User)
		case ButtonUploadImage:
			return w.openImageWindow(ev.User)
		case ButtonConfirm:
			return w.confirm(ev.User)
		}
	case TextReceived:
		return w.handleText(ctx, ev.User, ev.Text)
	case AttachmentReceived:
		return w.handleAttachment(ev.User, ev.URL, ev.ContentType)
	}
	return Reply{Kind: ReplyNone}
}

// start guards the entry transition: one live submission per user.
// An expired leftover is cascade-deleted and the user may proceed.
func (w *Workflow) start(u User) Reply {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if sub, ok := w.subs.get(u.ID); ok {
		expired := sub.Expired(now)
		if task, ok := w.tasks.get(u.ID); ok && task.Expired(now) {
			expired = true
		}
		if !expired {
			return Reply{Kind: ReplyPendingSubmission, ExpiresAt: sub.ExpiresAt}
		}
		w.cascadeDelete(u.ID)
	}
	return Reply{Kind: ReplyOpenForm}
}

func (w *Workflow) submitForm(u User, f FormFields) Reply {
	if err := validate.Struct(f); err != nil {
		return Reply{Kind: ReplyInvalidForm, Detail: err.Error()}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	desc := f.Description
	if desc == "" {
		desc = DefaultDescription
	}
	sub := &Submission{
		UserID:      u.ID,
		Username:    u.Name,
		ScriptName:  f.ScriptName,
		GameLink:    f.GameLink,
		ScriptCode:  f.ScriptCode,
		Features:    f.Features,
		Description: desc,
		CreatedAt:   now,
		ExpiresAt:   now.Add(SubmissionTTL),
	}
	w.subs.set(u.ID, sub)
	return Reply{Kind: ReplyChooseKeySystem, Submission: snapshot(sub)}
}

func (w *Workflow) enableKeySystem(u User) Reply {
	w.mu.Lock()
	defer w.mu.Unlock()

	sub, ok := w.subs.get(u.ID)
	if !ok {
		return Reply{Kind: ReplyNotFound}
	}
	if sub.Expired(w.now()) {
		w.cascadeDelete(u.ID)
		return Reply{Kind: ReplyExpired}
	}
	w.keySetup.set(u.ID, &KeySetupState{AwaitingKey: true})
	return Reply{Kind: ReplyAwaitKey}
}

func (w *Workflow) disableKeySystem(u User) Reply {
	w.mu.Lock()
	defer w.mu.Unlock()

	sub, ok := w.subs.get(u.ID)
	if !ok {
		return Reply{Kind: ReplyNotFound}
	}
	if sub.Expired(w.now()) {
		w.cascadeDelete(u.ID)
		return Reply{Kind: ReplyExpired}
	}
	sub.HasKeySystem = false
	sub.ScriptKey = ""
	w.subs.set(u.ID, sub)
	return Reply{Kind: ReplyConfirmReady, Submission: snapshot(sub)}
}

// confirm draws a verification challenge and binds the task to the
// submission's deadline.
func (w *Workflow) confirm(u User) Reply {
	w.mu.Lock()
	defer w.mu.Unlock()

	sub, ok := w.subs.get(u.ID)
	if !ok {
		return Reply{Kind: ReplyNotFound}
	}
	if sub.Expired(w.now()) {
		w.cascadeDelete(u.ID)
		return Reply{Kind: ReplyExpired}
	}

	link, code := w.catalog.Pick()
	w.tasks.set(u.ID, &VerificationTask{
		Link:         link,
		ExpectedCode: code,
		ExpiresAt:    sub.ExpiresAt,
	})
	return Reply{Kind: ReplyChallenge, Link: link, ExpiresAt: sub.ExpiresAt}
}

// handleText resolves a free-text message: a script key while the
// key-setup tracker is set, otherwise a verification attempt while a
// task exists, otherwise nothing. The tracker check comes first so a
// key entry can never be consumed as a verification code.
func (w *Workflow) handleText(ctx context.Context, u User, text string) Reply {
	w.mu.Lock()

	if ks, ok := w.keySetup.get(u.ID); ok && ks.AwaitingKey {
		r := w.acceptKeyLocked(u, text)
		w.mu.Unlock()
		return r
	}

	task, ok := w.tasks.get(u.ID)
	if !ok {
		w.mu.Unlock()
		return Reply{Kind: ReplyNone}
	}
	if task.Expired(w.now()) {
		w.cascadeDelete(u.ID)
		w.mu.Unlock()
		return Reply{Kind: ReplyExpired}
	}

	code := strings.TrimSpace(text)
	if code != task.ExpectedCode {
		// One attempt only: a mismatch deletes all state immediately.
		w.cascadeDelete(u.ID)
		w.mu.Unlock()
		return Reply{Kind: ReplyWrongCode}
	}

	sub, ok := w.subs.get(u.ID)
	if !ok {
		w.cascadeDelete(u.ID)
		w.mu.Unlock()
		return Reply{Kind: ReplyNotFound}
	}
	d := BuildDelivery(sub)
	snap := snapshot(sub)
	w.cascadeDelete(u.ID)
	// Deliver outside the lock; the state is already consumed either way.
	w.mu.Unlock()

	if err := w.notifier.Deliver(ctx, d); err != nil {
		return Reply{Kind: ReplyDeliveryFailed, Submission: snap, Detail: err.Error()}
	}
	return Reply{Kind: ReplyDelivered, Submission: snap}
}

// acceptKeyLocked validates and stores the script key. Out-of-bounds
// keys re-prompt without consuming anything. Caller holds w.mu.
func (w *Workflow) acceptKeyLocked(u User, text string) Reply {
	sub, ok := w.subs.get(u.ID)
	if !ok {
		w.keySetup.delete(u.ID)
		return Reply{Kind: ReplyNotFound}
	}

	key := strings.TrimSpace(text)
	if err := validate.Var(key, "required,min=1,max=100"); err != nil {
		return Reply{Kind: ReplyKeyInvalid}
	}

	sub.ScriptKey = key
	sub.HasKeySystem = true
	w.subs.set(u.ID, sub)
	w.keySetup.delete(u.ID)
	return Reply{Kind: ReplyKeySaved, Submission: snapshot(sub)}
}

// cascadeDelete removes every record for the user. Deleting absent
// keys is a no-op, so this is safe to call from any guard.
// Caller holds w.mu.
func (w *Workflow) cascadeDelete(userID string) {
	w.subs.delete(userID)
	w.tasks.delete(userID)
	w.keySetup.delete(userID)
	w.closeWindowLocked(userID)
}

// snapshot copies a submission so adapters can render it after the
// workflow lock is released.
func snapshot(sub *Submission) *Submission {
	c := *sub
	return &c
}

package workflow

import (
	"strings"
	"time"
)

// imageWindow is the one-shot listening window opened by the upload
// button: the first attachment from the user or the deadline firing,
// whichever comes first, resolves it. The timer self-cancels the
// window, so an untouched window leaves no residue.
type imageWindow struct {
	deadline time.Time
	timer    *time.Timer
}

// openImageWindow arms (or re-arms) the user's upload window. This is
// a side transition: the submission state is untouched.
func (w *Workflow) openImageWindow(u User) Reply {
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

	w.closeWindowLocked(u.ID)
	win := &imageWindow{deadline: w.now().Add(ImageWindowTTL)}
	win.timer = time.AfterFunc(ImageWindowTTL, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		// Only remove the window this timer belongs to.
		if w.windows[u.ID] == win {
			delete(w.windows, u.ID)
		}
	})
	w.windows[u.ID] = win
	return Reply{Kind: ReplyImageWindowOpen}
}

// handleAttachment resolves an open window. The first attachment ends
// the window; only image-typed content is stored.
func (w *Workflow) handleAttachment(u User, url, contentType string) Reply {
	w.mu.Lock()
	defer w.mu.Unlock()

	win, ok := w.windows[u.ID]
	if !ok || w.now().After(win.deadline) {
		w.closeWindowLocked(u.ID)
		return Reply{Kind: ReplyNone}
	}
	w.closeWindowLocked(u.ID)

	if !strings.HasPrefix(contentType, "image/") {
		return Reply{Kind: ReplyNone}
	}
	sub, ok := w.subs.get(u.ID)
	if !ok {
		return Reply{Kind: ReplyNone}
	}
	sub.ImageURL = url
	w.subs.set(u.ID, sub)
	return Reply{Kind: ReplyImageSaved}
}

// closeWindowLocked stops and removes the user's window, if any.
// Caller holds w.mu.
func (w *Workflow) closeWindowLocked(userID string) {
	if win, ok := w.windows[userID]; ok {
		win.timer.Stop()
		delete(w.windows, userID)
	}
}

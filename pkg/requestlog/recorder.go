package requestlog

import (
	"context"
	"log/slog"

	"github.com/mockhub/mockhub/pkg/logging"
)

// Recorder hands finished log entries to the persistence store and the
// notifier. Both failures are reported to the operational logger and
// otherwise swallowed: the HTTP response is already on the wire.
type Recorder struct {
	store    Store
	notifier *Notifier
	log      *slog.Logger
}

// NewRecorder creates a Recorder. Store and notifier may each be nil, in
// which case that hand-off is skipped.
func NewRecorder(store Store, notifier *Notifier, log *slog.Logger) *Recorder {
	if log == nil {
		log = logging.Nop()
	}
	return &Recorder{store: store, notifier: notifier, log: log}
}

// Record persists the entry and broadcasts its reduced notification.
func (r *Recorder) Record(ctx context.Context, e *Entry) {
	if e == nil {
		return
	}
	if r.store != nil {
		if err := r.store.Save(ctx, e); err != nil {
			r.log.Error("request log persistence failed",
				"project", e.ProjectID, "path", e.Path, "error", err)
		}
	}
	if r.notifier != nil {
		r.notifier.Publish(NotificationFromEntry(e))
	}
}

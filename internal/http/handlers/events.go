package handlers

import (
	applog "shopadmin/internal/log"
	"shopadmin/internal/services"
	"shopadmin/internal/store"
)

// LogStoreEvent is the per-session store subscriber: successful mutations are
// audited, failures logged with the store's view of the error.
func LogStoreEvent(a *services.Admin, ev store.Event) {
	action := "store." + ev.Store + "." + ev.Op
	fields := map[string]any{"admin": a.Email, "kind": string(ev.Kind)}
	if ev.ID != 0 {
		fields["id"] = ev.ID
	}
	switch ev.Kind {
	case store.Fetched, store.Loaded:
		// reads are covered by the access log
		return
	}
	applog.Outcome(nil, action, ev.Err, fields)
}

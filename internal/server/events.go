package server

import (
	"fmt"
	"net/http"
	"time"
)

// events streams snapshots as server-sent events until the client goes away
// or the hub drops the subscription.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		s.logger.Error("events: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()
	id, snapshots, cancel := s.hub.Subscribe(ctx)
	defer cancel()
	s.logger.Debug("events: client connected", "subscriber", id, "remote", r.RemoteAddr)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	keepAlive := time.NewTicker(s.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("events: client disconnected", "subscriber", id)
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", snap)
			flusher.Flush()
		}
	}
}

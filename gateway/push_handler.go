// Package gateway exposes the trigger entry point over HTTP, so the
// workflow engine can drive config pushes with a blocking call.
package gateway

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/streamforge/flowsync/jsonrs"
)

type trigger interface {
	Run(ctx context.Context, groupID, streamID string) error
}

type Gateway struct {
	log     logger.Logger
	trigger trigger
}

func New(log logger.Logger, trigger trigger) *Gateway {
	return &Gateway{
		log:     log.Child("gateway"),
		trigger: trigger,
	}
}

func (g *Gateway) Handler() http.Handler {
	srvMux := chi.NewRouter()
	srvMux.Post("/v1/sort/groups/{group_id}/push", g.pushGroupConfig)
	srvMux.Get("/health", g.health)
	return srvMux
}

// pushGroupConfig runs the synthesis and publication pipeline for one
// group, optionally narrowed to a single stream via the streamId query
// parameter. The call blocks until the batch completes or fails.
func (g *Gateway) pushGroupConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID := chi.URLParam(r, "group_id")
	if groupID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	streamID := r.URL.Query().Get("streamId")

	if err := g.trigger.Run(ctx, groupID, streamID); err != nil {
		g.log.Errorf("push failed for group %s, stream %q: %v", groupID, streamID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "failed",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (g *Gateway) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = jsonrs.NewEncoder(w).Encode(body)
}

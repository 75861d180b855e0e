package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/repositories"
	"github.com/cbodonnell/melange/pkg/state"
	"github.com/gorilla/mux"
)

func HandleGetStatus(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get session state: %v", err)
			http.Error(w, "Failed to get session state", http.StatusInternalServerError)
			return
		}
		if status == nil {
			http.Error(w, "No session state published yet", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Error("failed to encode session state: %v", err)
			http.Error(w, "Failed to encode session state", http.StatusInternalServerError)
			return
		}
	}
}

func HandleListSnapshots(repository repositories.Repository, sessionID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := repository.ListSnapshots(r.Context(), sessionID)
		if err != nil {
			log.Error("failed to list snapshots: %v", err)
			http.Error(w, "Failed to list snapshots", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshots); err != nil {
			log.Error("failed to encode snapshots: %v", err)
			http.Error(w, "Failed to encode snapshots", http.StatusInternalServerError)
			return
		}
	}
}

func HandleGetSnapshot(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshotID := mux.Vars(r)["snapshotID"]
		snapshot, err := repository.LoadSnapshot(r.Context(), snapshotID)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Snapshot not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load snapshot: %v", err)
			http.Error(w, "Failed to load snapshot", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			log.Error("failed to encode snapshot: %v", err)
			http.Error(w, "Failed to encode snapshot", http.StatusInternalServerError)
			return
		}
	}
}

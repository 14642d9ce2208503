// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/duskline/demonbluff-engine/internal/engine"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
)

// predictResponse is the wire shape of a successful /v1/predict call.
type predictResponse struct {
	Actions []string `json:"actions"`
}

// predictErrorResponse is the wire shape of a failed /v1/predict call.
type predictErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	gs, err := gamestate.LoadSnapshot(body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := engine.Options{
		StabilityThreshold: s.cfg.StabilityThreshold,
		MaxIterations:      s.cfg.MaxIterations,
		Logger:             s.log,
		Debugger:           s.stream.debuggerFor(r.Context()),
	}

	actions, err := engine.Evaluate(r.Context(), s.root, gs, opts)
	if err != nil {
		status := http.StatusUnprocessableEntity
		var invErr *engine.InvariantError
		if errors.As(err, &invErr) {
			status = http.StatusInternalServerError
		}
		writeJSONError(w, status, err.Error())
		return
	}

	rendered := make([]string, 0, actions.Len())
	for _, act := range actions.Slice() {
		rendered = append(rendered, act.String())
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(predictResponse{Actions: rendered})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(predictErrorResponse{Error: msg})
}

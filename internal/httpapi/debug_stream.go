// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package httpapi

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/duskline/demonbluff-engine/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// debugStream fans out breakpoint events from whichever /v1/predict calls
// are in flight to every websocket client connected to
// GET /v1/debug/stream, throttled by a shared rate.Limiter so a burst of
// evaluator activity cannot overwhelm a slow client.
type debugStream struct {
	bufSize int
	limiter *rate.Limiter

	mu   sync.Mutex
	subs map[chan engine.Breakpoint]struct{}
}

func newDebugStream(bufSize int, limiter *rate.Limiter) *debugStream {
	return &debugStream{
		bufSize: bufSize,
		limiter: limiter,
		subs:    make(map[chan engine.Breakpoint]struct{}),
	}
}

// debuggerFor returns an engine.Debugger that fans every event out to this
// stream's subscribers. ctx is unused beyond documenting intent: broadcast
// is best-effort and outlives any single request.
func (s *debugStream) debuggerFor(ctx context.Context) engine.Debugger {
	return broadcastDebugger{stream: s}
}

func (s *debugStream) subscribe() chan engine.Breakpoint {
	ch := make(chan engine.Breakpoint, s.bufSize)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *debugStream) unsubscribe(ch chan engine.Breakpoint) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
	close(ch)
}

func (s *debugStream) broadcast(bp engine.Breakpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- bp:
		default:
		}
	}
}

func (s *debugStream) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case bp, ok := <-ch:
			if !ok {
				return
			}
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
			if err := conn.WriteJSON(bp); err != nil {
				return
			}
		}
	}
}

// broadcastDebugger adapts debugStream to engine.Debugger.
type broadcastDebugger struct {
	stream *debugStream
}

func (d broadcastDebugger) Emit(bp engine.Breakpoint) {
	d.stream.broadcast(bp)
}

var _ engine.Debugger = broadcastDebugger{}

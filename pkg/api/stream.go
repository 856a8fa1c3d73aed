// Copyright (c) 2026, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/NVIDIA/kubedrive/pkg/defaults"
	"github.com/NVIDIA/kubedrive/pkg/errors"
	"github.com/NVIDIA/kubedrive/pkg/event"
	"github.com/NVIDIA/kubedrive/pkg/kubectl"
	"github.com/NVIDIA/kubedrive/pkg/serializer"
	"github.com/NVIDIA/kubedrive/pkg/server"
)

// streamBuffer is how many events may queue between the relay and a slow client.
const streamBuffer = 64

type startFunc func(ctx context.Context, sink event.Sink) (*kubectl.Invocation, error)

// frameWriter writes SSE frames with a per-frame deadline and flushes each one.
type frameWriter struct {
	w   http.ResponseWriter
	rc  *http.ResponseController
	seq int
}

func (fw *frameWriter) write(fn func(io.Writer) error) error {
	err := fw.rc.SetWriteDeadline(time.Now().Add(defaults.StreamWriteTimeout))
	if err != nil && !stderrors.Is(err, http.ErrNotSupported) {
		return err
	}
	if err := fn(fw.w); err != nil {
		return err
	}
	return fw.rc.Flush()
}

func (fw *frameWriter) progress(id string, e event.Event) error {
	fw.seq++
	return fw.write(func(w io.Writer) error {
		return serializer.WriteSSE(w, "progress", strconv.Itoa(fw.seq), ProgressFrame{InvocationID: id, Event: e})
	})
}

// stream starts an invocation and relays its events as server-sent events.
// Nothing is written until kubectl has started, so validation and launch
// failures still get a JSON error with the right status.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request, start startFunc) {
	ctx := r.Context()
	events := make(chan event.Event, streamBuffer)

	inv, err := start(ctx, event.NewChannelSink(ctx, events))
	if err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}

	select {
	case <-inv.Launched():
	case <-ctx.Done():
		return
	}

	switch inv.State() {
	case kubectl.StateLaunchFailed:
		server.WriteErrorFromErr(w, r, inv.Err())
		return
	case kubectl.StateCanceled:
		return
	}

	log := h.logger.With("invocation", inv.ID, "operation", string(inv.Command.Operation),
		"requestID", server.RequestID(ctx))

	hdr := w.Header()
	hdr.Set("Content-Type", serializer.ContentTypeEventStream)
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	hdr.Set("X-Invocation-Id", inv.ID)
	w.WriteHeader(http.StatusOK)

	fw := &frameWriter{w: w, rc: http.NewResponseController(w)}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for running := true; running; {
		select {
		case e := <-events:
			if err := fw.progress(inv.ID, e); err != nil {
				log.Debug("client stopped reading", "error", err)
				return
			}
		case <-ticker.C:
			if err := fw.write(func(w io.Writer) error { return serializer.WriteSSEComment(w, "keepalive") }); err != nil {
				log.Debug("keepalive failed", "error", err)
				return
			}
		case <-inv.Done():
			running = false
		case <-ctx.Done():
			log.Debug("client disconnected", "error", ctx.Err())
			return
		}
	}

	// Every event has been queued by the time the invocation is done.
	for drained := false; !drained; {
		select {
		case e := <-events:
			if err := fw.progress(inv.ID, e); err != nil {
				return
			}
		default:
			drained = true
		}
	}

	code, err := inv.Wait()
	if err != nil {
		_ = fw.write(func(w io.Writer) error {
			return serializer.WriteSSE(w, "error", "", ErrorFrame{
				InvocationID: inv.ID,
				Code:         string(errors.CodeOf(err)),
				Message:      err.Error(),
				Timestamp:    time.Now().UTC(),
			})
		})
		return
	}

	if err := fw.write(func(w io.Writer) error {
		return serializer.WriteSSE(w, "result", "", ResultFrame{
			InvocationID: inv.ID,
			State:        inv.State().String(),
			ExitCode:     code,
			Duration:     inv.Duration().String(),
		})
	}); err != nil {
		log.Debug("result frame not delivered", "error", err)
	}
}

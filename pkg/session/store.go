// Copyright 2025 walteh LLC
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

package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/walteh/rxgrid/pkg/dataset"
	"gitlab.com/tozd/go/errors"
)

// ErrSuperseded is returned when a response arrives after a newer request was dispatched
var ErrSuperseded = errors.Base("superseded by a newer request")

// 🚦 Phase is the request lifecycle position of the session
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
)

// 📡 Status is the in-flight / error state of the session
type Status struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
}

// Idle is the resting status
func Idle() Status { return Status{Phase: PhaseIdle} }

// Loading marks a request in flight; it never carries a message
func Loading() Status { return Status{Phase: PhaseLoading} }

// Failed marks the most recent request as failed with msg
func Failed(msg string) Status { return Status{Phase: PhaseError, Message: msg} }

func (s Status) IsIdle() bool    { return s.Phase == PhaseIdle || s.Phase == "" }
func (s Status) IsLoading() bool { return s.Phase == PhaseLoading }
func (s Status) IsError() bool   { return s.Phase == PhaseError }

// String returns a short human readable status
func (s Status) String() string {
	if s.IsError() {
		return "error: " + s.Message
	}
	if s.Phase == "" {
		return string(PhaseIdle)
	}
	return string(s.Phase)
}

// 📸 Snapshot is the full, serializable session state
type Snapshot struct {
	SessionID   string           `json:"session_id"`
	Columns     []string         `json:"columns"`
	Rows        [][]dataset.Cell `json:"rows"`
	Filename    string           `json:"filename"`
	Pattern     string           `json:"pattern"`
	Explanation string           `json:"explanation,omitempty"`
	Stats       *dataset.Stats   `json:"stats,omitempty"`
	Status      Status           `json:"status"`
}

// Dataset returns the columns and rows as a dataset
func (s Snapshot) Dataset() dataset.Dataset {
	return dataset.Dataset{Columns: s.Columns, Rows: s.Rows}
}

// HasFile reports whether a file has been ingested in this session
func (s Snapshot) HasFile() bool {
	return s.Filename != ""
}

func (s Snapshot) clone() Snapshot {
	out := s
	ds := s.Dataset().Clone()
	out.Columns = ds.Columns
	out.Rows = ds.Rows
	if s.Stats != nil {
		st := *s.Stats
		out.Stats = &st
	}
	return out
}

// ✍️ Writer is the set of mutations the session accepts
type Writer interface {
	// ReplaceDataset overwrites columns and rows wholesale
	ReplaceDataset(columns []string, rows [][]dataset.Cell)
	SetFilename(name string)
	SetPattern(pattern string)
	SetExplanation(explanation string)
	// SetStats records change statistics; nil means empty
	SetStats(stats *dataset.Stats)
	SetStatus(status Status)
	// ResetDerived clears pattern, explanation and stats
	ResetDerived()
}

// 🎟️ Ticket identifies one dispatched request
type Ticket struct {
	seq uint64
}

// Seq returns the request sequence number
func (t Ticket) Seq() uint64 { return t.seq }

// 🗄️ Store is the single source of truth for a session.
// Every method is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	seq  uint64
}

var _ Writer = (*Store)(nil)

// 🏭 New creates an empty session with a fresh id
func New() *Store {
	return Restore(Snapshot{SessionID: uuid.NewString()})
}

// Restore creates a store from a previously captured snapshot.
// A snapshot captured mid-request comes back idle since nothing is in flight anymore.
func Restore(snap Snapshot) *Store {
	snap = snap.clone()
	if snap.SessionID == "" {
		snap.SessionID = uuid.NewString()
	}
	if snap.Columns == nil {
		snap.Columns = []string{}
	}
	if snap.Rows == nil {
		snap.Rows = [][]dataset.Cell{}
	}
	if snap.Status.Phase == "" || snap.Status.IsLoading() {
		snap.Status = Idle()
	}
	return &Store{snap: snap}
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// 🧮 Batch applies several mutations as one atomic step
func (s *Store) Batch(fn func(w Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&snapshotWriter{snap: &s.snap})
}

// 🚀 Begin dispatches a new request: the sequence advances and the status
// moves to loading, which clears any previous error.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.snap.Status = Loading()
	return Ticket{seq: s.seq}
}

// TryBegin is Begin for a request that must not preempt one in flight.
// While the session is loading it changes nothing and returns false.
func (s *Store) TryBegin() (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Status.IsLoading() {
		return Ticket{}, false
	}
	s.seq++
	s.snap.Status = Loading()
	return Ticket{seq: s.seq}, true
}

// Fail records msg as the error status unless a request is in flight, whose
// loading status is kept. It reports whether the status changed.
func (s *Store) Fail(msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Status.IsLoading() {
		return false
	}
	s.snap.Status = Failed(msg)
	return true
}

// Current reports whether t is still the latest dispatched request
func (s *Store) Current(t Ticket) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.seq == s.seq
}

// ✅ Commit applies fn only when t is still the latest request.
// A response for a superseded request is dropped and Commit returns false.
func (s *Store) Commit(t Ticket, fn func(w Writer)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.seq != s.seq {
		return false
	}
	fn(&snapshotWriter{snap: &s.snap})
	return true
}

// 🧯 Settle fails the request for t if it is still current and loading.
// Coordinators defer it so that no exit path can leave the session loading.
func (s *Store) Settle(t Ticket, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.seq != s.seq || !s.snap.Status.IsLoading() {
		return false
	}
	s.snap.Status = Failed(msg)
	return true
}

func (s *Store) ReplaceDataset(columns []string, rows [][]dataset.Cell) {
	s.Batch(func(w Writer) { w.ReplaceDataset(columns, rows) })
}

func (s *Store) SetFilename(name string) {
	s.Batch(func(w Writer) { w.SetFilename(name) })
}

func (s *Store) SetPattern(pattern string) {
	s.Batch(func(w Writer) { w.SetPattern(pattern) })
}

func (s *Store) SetExplanation(explanation string) {
	s.Batch(func(w Writer) { w.SetExplanation(explanation) })
}

func (s *Store) SetStats(stats *dataset.Stats) {
	s.Batch(func(w Writer) { w.SetStats(stats) })
}

func (s *Store) SetStatus(status Status) {
	s.Batch(func(w Writer) { w.SetStatus(status) })
}

func (s *Store) ResetDerived() {
	s.Batch(func(w Writer) { w.ResetDerived() })
}

// snapshotWriter mutates a snapshot the caller already holds the lock for
type snapshotWriter struct {
	snap *Snapshot
}

func (w *snapshotWriter) ReplaceDataset(columns []string, rows [][]dataset.Cell) {
	ds := dataset.Dataset{Columns: columns, Rows: rows}.Clone()
	w.snap.Columns = ds.Columns
	w.snap.Rows = ds.Rows
}

func (w *snapshotWriter) SetFilename(name string) { w.snap.Filename = name }

func (w *snapshotWriter) SetPattern(pattern string) { w.snap.Pattern = pattern }

func (w *snapshotWriter) SetExplanation(explanation string) { w.snap.Explanation = explanation }

func (w *snapshotWriter) SetStats(stats *dataset.Stats) {
	if stats == nil {
		w.snap.Stats = nil
		return
	}
	st := *stats
	w.snap.Stats = &st
}

func (w *snapshotWriter) SetStatus(status Status) { w.snap.Status = status }

func (w *snapshotWriter) ResetDerived() {
	w.snap.Pattern = ""
	w.snap.Explanation = ""
	w.snap.Stats = nil
}

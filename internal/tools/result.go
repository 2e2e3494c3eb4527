// Package tools exposes the governance engines as named, dispatchable tool
// operations. Each invocation receives structured arguments and returns a
// uniform result envelope; errors travel inside the envelope as classified
// values, never as faults the caller has to recover from.
package tools

import (
	"encoding/json"
	"errors"

	"github.com/harborcrew/quarterdeck/internal/codex"
	"github.com/harborcrew/quarterdeck/internal/journal"
	"github.com/harborcrew/quarterdeck/internal/taskstore"
)

// Status discriminates the two envelope shapes.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Kind classifies an error result for programmatic handling.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindTaskNotFound     Kind = "task_not_found"
	KindSectionNotFound  Kind = "section_not_found"
	KindDocumentNotFound Kind = "document_not_found"
	KindIO               Kind = "io_failure"
)

// ErrValidation covers malformed tool arguments detected before an engine
// is ever reached.
var ErrValidation = errors.New("tools: validation error")

// Result is the envelope every tool invocation returns. OpID ties the
// result to its audit-trail line.
type Result struct {
	Status       Status
	Payload      any
	Kind         Kind
	ErrorMessage string
	OpID         string
}

// Success builds a success envelope carrying payload.
func Success(opID string, payload any) Result {
	return Result{Status: StatusSuccess, Payload: payload, OpID: opID}
}

// Failure builds an error envelope, classifying err into a Kind.
func Failure(opID string, err error) Result {
	return Result{
		Status:       StatusError,
		Kind:         KindOf(err),
		ErrorMessage: err.Error(),
		OpID:         opID,
	}
}

// OK reports whether the result is a success envelope.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Err reconstructs an error value from an error envelope, nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return errors.New(r.ErrorMessage)
}

// MarshalJSON renders the boundary contract consumed by the orchestration
// layer: {"status": ..., "result": ..., "error_message": ...}.
func (r Result) MarshalJSON() ([]byte, error) {
	type wire struct {
		Status       Status  `json:"status"`
		Result       any     `json:"result"`
		ErrorMessage *string `json:"error_message"`
		Kind         Kind    `json:"error_kind,omitempty"`
		OpID         string  `json:"operation_id,omitempty"`
	}
	w := wire{Status: r.Status, Result: r.Payload, OpID: r.OpID}
	if r.Status == StatusError {
		msg := r.ErrorMessage
		w.ErrorMessage = &msg
		w.Kind = r.Kind
	}
	return json.Marshal(w)
}

// KindOf classifies an engine or argument error into an envelope Kind.
// Anything outside the known taxonomy is treated as a filesystem failure.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, taskstore.ErrValidation),
		errors.Is(err, taskstore.ErrInvalidUser),
		errors.Is(err, codex.ErrValidation),
		errors.Is(err, journal.ErrValidation):
		return KindValidation
	case errors.Is(err, taskstore.ErrTaskNotFound):
		return KindTaskNotFound
	case errors.Is(err, codex.ErrSectionNotFound):
		return KindSectionNotFound
	case errors.Is(err, codex.ErrDocumentNotFound),
		errors.Is(err, journal.ErrNotFound):
		return KindDocumentNotFound
	default:
		return KindIO
	}
}

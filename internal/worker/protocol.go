// Package worker implements the build execution side of the tool: a task
// loop intended to run in its own OS process so a crashing or hung native
// build tool can never take the controlling process down with it. Tasks and
// events travel as JSON lines over the process's stdin/stdout.
package worker

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
)

// GlobalIndex tags log and result events that concern the whole plan (or the
// worker itself) rather than a single node group.
const GlobalIndex = -1

// Task kinds accepted on the worker's task stream.
const (
	TaskPlan = "plan"
	TaskQuit = "quit"
)

// Task is one message on the task stream: a build plan to execute, or the
// quit token.
type Task struct {
	Kind string        `json:"kind"`
	Plan *compile.Plan `json:"plan,omitempty"`
}

// Event kinds produced on the worker's event stream.
const (
	EventLog    = "log"
	EventResult = "result"
)

// Event is one message on the event stream. Log events carry free text;
// result events carry a per-node (or, at GlobalIndex, whole-plan) verdict.
type Event struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Text  string `json:"text,omitempty"`
	OK    bool   `json:"ok,omitempty"`
}

// TaskEncoder writes tasks as JSON lines.
type TaskEncoder struct {
	enc *json.Encoder
}

// NewTaskEncoder creates a TaskEncoder on w.
func NewTaskEncoder(w io.Writer) *TaskEncoder {
	return &TaskEncoder{enc: json.NewEncoder(w)}
}

// Encode writes one task.
func (e *TaskEncoder) Encode(task Task) error {
	return e.enc.Encode(task)
}

// TaskDecoder reads tasks from a JSON line stream.
type TaskDecoder struct {
	dec *json.Decoder
}

// NewTaskDecoder creates a TaskDecoder on r.
func NewTaskDecoder(r io.Reader) *TaskDecoder {
	return &TaskDecoder{dec: json.NewDecoder(bufio.NewReader(r))}
}

// Decode reads the next task. io.EOF signals an exhausted stream.
func (d *TaskDecoder) Decode() (Task, error) {
	var task Task
	err := d.dec.Decode(&task)
	return task, err
}

// EventEncoder writes events as JSON lines.
type EventEncoder struct {
	enc *json.Encoder
}

// NewEventEncoder creates an EventEncoder on w.
func NewEventEncoder(w io.Writer) *EventEncoder {
	return &EventEncoder{enc: json.NewEncoder(w)}
}

// Encode writes one event.
func (e *EventEncoder) Encode(event Event) error {
	return e.enc.Encode(event)
}

// EventDecoder reads events from a JSON line stream.
type EventDecoder struct {
	dec *json.Decoder
}

// NewEventDecoder creates an EventDecoder on r.
func NewEventDecoder(r io.Reader) *EventDecoder {
	return &EventDecoder{dec: json.NewDecoder(bufio.NewReader(r))}
}

// Decode reads the next event. io.EOF signals an exhausted stream.
func (d *EventDecoder) Decode() (Event, error) {
	var event Event
	err := d.dec.Decode(&event)
	return event, err
}

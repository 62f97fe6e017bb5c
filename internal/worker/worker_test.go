package worker

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
)

func requirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}
}

func encodeTasks(t *testing.T, tasks ...Task) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	enc := NewTaskEncoder(&buf)
	for _, task := range tasks {
		require.NoError(t, enc.Encode(task))
	}
	return &buf
}

func decodeEvents(t *testing.T, r io.Reader) []Event {
	t.Helper()
	dec := NewEventDecoder(r)
	var events []Event
	for {
		event, err := dec.Decode()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, event)
	}
}

func commandStep(name, program string, args ...string) compile.Step {
	return compile.Step{Kind: compile.StepCommand, DisplayName: name, Program: program, Args: args}
}

func TestRun_QuitTokenExitsLoop(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Run(context.Background(), encodeTasks(t, Task{Kind: TaskQuit}), &out, Options{})
	require.NoError(t, err)

	events := decodeEvents(t, &out)
	require.NotEmpty(t, events)

	var texts []string
	for _, event := range events {
		require.Equal(t, EventLog, event.Kind)
		require.Equal(t, GlobalIndex, event.Index)
		texts = append(texts, event.Text)
	}
	joined := strings.Join(texts, "\n")
	assert.Contains(t, joined, "worker started")
	assert.Contains(t, joined, "received quit")
	assert.Contains(t, joined, "worker finished")
}

func TestRun_EOFEndsLoop(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(""), &out, Options{})
	require.NoError(t, err)

	events := decodeEvents(t, &out)
	require.NotEmpty(t, events)
	assert.Contains(t, events[len(events)-1].Text, "worker finished")
}

func TestRun_PlanSuccessEmitsPerNodeAndSentinelResults(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	plan := &compile.Plan{Groups: []compile.NodeGroup{
		{Index: 0, NodeID: 1, Title: "A", Steps: []compile.Step{commandStep("echo A", "echo", "A")}},
		{Index: 1, NodeID: 2, Title: "B", Steps: []compile.Step{commandStep("echo B", "echo", "B")}},
	}}

	var out bytes.Buffer
	err := Run(context.Background(), encodeTasks(t, Task{Kind: TaskPlan, Plan: plan}, Task{Kind: TaskQuit}), &out, Options{})
	require.NoError(t, err)

	var results []Event
	for _, event := range decodeEvents(t, &out) {
		if event.Kind == EventResult {
			results = append(results, event)
		}
	}

	require.Len(t, results, 3)
	require.Equal(t, Event{Kind: EventResult, Index: 0, OK: true}, results[0])
	require.Equal(t, Event{Kind: EventResult, Index: 1, OK: true}, results[1])
	require.Equal(t, Event{Kind: EventResult, Index: GlobalIndex, OK: true}, results[2])
}

func TestRun_StepFailureAbortsNodeAndRemainingNodes(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	marker := t.TempDir() + "/should-not-exist"
	plan := &compile.Plan{Groups: []compile.NodeGroup{
		{Index: 0, NodeID: 1, Title: "A", Steps: []compile.Step{
			commandStep("fail A", "sh", "-c", "exit 1"),
			commandStep("skipped A", "touch", marker),
		}},
		{Index: 1, NodeID: 2, Title: "B", Steps: []compile.Step{
			commandStep("skipped B", "touch", marker),
		}},
	}}

	var out bytes.Buffer
	err := Run(context.Background(), encodeTasks(t, Task{Kind: TaskPlan, Plan: plan}, Task{Kind: TaskQuit}), &out, Options{})
	require.NoError(t, err)

	var results []Event
	for _, event := range decodeEvents(t, &out) {
		if event.Kind == EventResult {
			results = append(results, event)
		}
	}

	require.Len(t, results, 2)
	require.Equal(t, Event{Kind: EventResult, Index: 0, OK: false}, results[0])
	require.Equal(t, Event{Kind: EventResult, Index: GlobalIndex, OK: false}, results[1])

	// Neither the node's remaining step nor the second node ever ran.
	assert.NoFileExists(t, marker)
}

func TestRun_LogEventsCarryGroupIndexInPlanOrder(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	plan := &compile.Plan{Groups: []compile.NodeGroup{
		{Index: 0, NodeID: 1, Title: "A", Steps: []compile.Step{commandStep("echo A", "echo", "A")}},
		{Index: 1, NodeID: 2, Title: "B", Steps: []compile.Step{commandStep("echo B", "echo", "B")}},
	}}

	var out bytes.Buffer
	err := Run(context.Background(), encodeTasks(t, Task{Kind: TaskPlan, Plan: plan}, Task{Kind: TaskQuit}), &out, Options{})
	require.NoError(t, err)

	lastIndex := GlobalIndex
	for _, event := range decodeEvents(t, &out) {
		if event.Kind != EventLog || event.Index == GlobalIndex {
			continue
		}
		require.GreaterOrEqual(t, event.Index, lastIndex, "node log events must arrive in plan order")
		lastIndex = event.Index
	}
	require.Equal(t, 1, lastIndex)
}

func TestRun_EmptyGroupSucceedsAndStillReports(t *testing.T) {
	t.Parallel()

	plan := &compile.Plan{Groups: []compile.NodeGroup{
		{Index: 0, NodeID: 1, Title: "empty"},
	}}

	var out bytes.Buffer
	err := Run(context.Background(), encodeTasks(t, Task{Kind: TaskPlan, Plan: plan}, Task{Kind: TaskQuit}), &out, Options{})
	require.NoError(t, err)

	var results []Event
	for _, event := range decodeEvents(t, &out) {
		if event.Kind == EventResult {
			results = append(results, event)
		}
	}
	require.Len(t, results, 2)
	require.Equal(t, Event{Kind: EventResult, Index: 0, OK: true}, results[0])
	require.Equal(t, Event{Kind: EventResult, Index: GlobalIndex, OK: true}, results[1])
}

func TestRun_UnknownTaskKindIsIgnored(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Run(context.Background(), encodeTasks(t, Task{Kind: "compress"}, Task{Kind: TaskQuit}), &out, Options{})
	require.NoError(t, err)

	var joined strings.Builder
	for _, event := range decodeEvents(t, &out) {
		joined.WriteString(event.Text)
		joined.WriteString("\n")
	}
	assert.Contains(t, joined.String(), `unknown task kind "compress"`)
}

func TestTaskRoundTrip(t *testing.T) {
	t.Parallel()

	plan := &compile.Plan{
		Stage:       "all",
		StartNodeID: 3,
		Groups: []compile.NodeGroup{{
			Index:  0,
			NodeID: 3,
			Title:  "core",
			Steps: []compile.Step{
				{Kind: compile.StepScript, DisplayName: "pre", Script: "print('x')"},
				commandStep("configure", "cmake", "-S", "/src", "-B", "/out"),
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewTaskEncoder(&buf).Encode(Task{Kind: TaskPlan, Plan: plan}))

	decoded, err := NewTaskDecoder(&buf).Decode()
	require.NoError(t, err)
	require.Equal(t, TaskPlan, decoded.Kind)
	require.Equal(t, plan, decoded.Plan)
}

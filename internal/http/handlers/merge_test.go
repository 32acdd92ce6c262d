package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/merge"
)

type stubQueue struct {
	tasks []merge.Task
	err   error
}

func (q *stubQueue) Submit(task merge.Task) error {
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

type stubProcessor struct {
	sessions []string
}

func (p *stubProcessor) Process(ctx context.Context, sessionID string) error {
	p.sessions = append(p.sessions, sessionID)
	return nil
}

func TestMergeHandler_Trigger(t *testing.T) {
	queue := &stubQueue{}
	processor := &stubProcessor{}
	handler := NewMergeHandler(queue, processor, nil)

	input := &MergeInput{}
	input.Body.SessionID = "sess-1"

	output, err := handler.Trigger(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, output.Body.Success)
	assert.Contains(t, output.Body.Message, "sess-1")

	// The pipeline runs on the pool, not in the request path.
	assert.Empty(t, processor.sessions)
	require.Len(t, queue.tasks, 1)

	queue.tasks[0](context.Background())
	assert.Equal(t, []string{"sess-1"}, processor.sessions)
}

func TestMergeHandler_Trigger_QueueFull(t *testing.T) {
	queue := &stubQueue{err: merge.ErrQueueFull}
	handler := NewMergeHandler(queue, &stubProcessor{}, nil)

	input := &MergeInput{}
	input.Body.SessionID = "sess-1"

	_, err := handler.Trigger(context.Background(), input)
	require.Error(t, err)

	se, ok := err.(huma.StatusError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, se.GetStatus())
}

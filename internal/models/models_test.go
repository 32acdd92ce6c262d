package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	id1 := NewULID()
	id2 := NewULID()

	assert.False(t, id1.IsZero())
	assert.NotEqual(t, id1.String(), id2.String())
	assert.Len(t, id1.String(), 26)
}

func TestParseULID(t *testing.T) {
	id := NewULID()

	parsed, err := ParseULID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseULID("not-a-ulid")
	assert.Error(t, err)
}

func TestULID_ScanValue(t *testing.T) {
	id := NewULID()

	v, err := id.Value()
	require.NoError(t, err)

	var scanned ULID
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, id, scanned)

	var zero ULID
	require.NoError(t, zero.Scan(nil))
	assert.True(t, zero.IsZero())

	v, err = ULID{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestULID_JSON(t *testing.T) {
	id := NewULID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var decoded ULID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	var null ULID
	require.NoError(t, json.Unmarshal([]byte("null"), &null))
	assert.True(t, null.IsZero())
}

func TestEvaluation_StatusHelpers(t *testing.T) {
	e := &Evaluation{SessionID: "sess-1", Status: EvaluationStatusPending}
	assert.True(t, e.IsPending())
	assert.False(t, e.IsDelivered())

	e.Status = EvaluationStatusProcessing
	assert.False(t, e.IsPending())
	assert.True(t, e.IsDelivered())

	e.Status = EvaluationStatusOneTimeSend
	assert.False(t, e.IsPending())
	assert.False(t, e.IsDelivered())
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, (&Evaluation{}).Validate(), ErrSessionIDRequired)
	assert.NoError(t, (&Evaluation{SessionID: "s"}).Validate())

	assert.ErrorIs(t, (&JobPosting{}).Validate(), ErrJobIDRequired)
	assert.NoError(t, (&JobPosting{JobID: "j"}).Validate())

	assert.ErrorIs(t, (&CandidateBatch{}).Validate(), ErrBatchIDRequired)
	assert.NoError(t, (&CandidateBatch{BatchID: "b"}).Validate())

	assert.ErrorIs(t, (&SessionBatch{}).Validate(), ErrSessionIDRequired)
	assert.NoError(t, (&SessionBatch{SessionID: "s"}).Validate())
}

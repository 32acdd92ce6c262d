package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// fakeUploader returns a canned URL per folder type and records uploads.
type fakeUploader struct {
	uploads map[string]string // folderType -> uploaded local path
	failOn  string
}

func (f *fakeUploader) Upload(ctx context.Context, localPath, sessionID, streamFolder string) (string, error) {
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	if streamFolder == f.failOn {
		return "", errors.New("upload refused")
	}
	f.uploads[streamFolder] = localPath
	return "https://bucket.s3.amazonaws.com/" + sessionID + "/" + streamFolder + "/" + filepath.Base(localPath), nil
}

// mockEvalRepo records SetUploadURLs calls.
type mockEvalRepo struct {
	sessionID string
	screenURL string
	cameraURL string
	calls     int
}

func (m *mockEvalRepo) Create(ctx context.Context, eval *models.Evaluation) error { return nil }
func (m *mockEvalRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Evaluation, error) {
	return nil, nil
}
func (m *mockEvalRepo) GetOldestPending(ctx context.Context) (*models.Evaluation, error) {
	return nil, nil
}
func (m *mockEvalRepo) UpdateStatus(ctx context.Context, sessionID string, status models.EvaluationStatus) error {
	return nil
}
func (m *mockEvalRepo) SetUploadURLs(ctx context.Context, sessionID, screenURL, cameraURL string) error {
	m.calls++
	m.sessionID = sessionID
	m.screenURL = screenURL
	m.cameraURL = cameraURL
	return nil
}

func newTestPipeline(t *testing.T, cameraRoot, screenRoot string, uploader *fakeUploader, evals *mockEvalRepo) *Pipeline {
	t.Helper()

	orch := NewOrchestrator(&fakeProber{}, &fakeNormalizer{}, &fakeConcat{})
	cfg := PipelineConfig{
		CameraRoot:         cameraRoot,
		ScreenRoot:         screenRoot,
		FolderWaitAttempts: 1,
		FolderWaitDelay:    time.Millisecond,
	}
	return NewPipeline(cfg, orch, uploader, evals)
}

func TestPipeline_Process_BothStreams(t *testing.T) {
	cameraRoot := t.TempDir()
	screenRoot := t.TempDir()

	cameraDir := filepath.Join(cameraRoot, "sess-1")
	screenDir := filepath.Join(screenRoot, "sess-1_screen")
	require.NoError(t, os.Mkdir(cameraDir, 0o755))
	require.NoError(t, os.Mkdir(screenDir, 0o755))
	writeFile(t, cameraDir, "chunk0.mp4")
	writeFile(t, screenDir, "chunk0.mp4")

	uploader := &fakeUploader{}
	evals := &mockEvalRepo{}
	p := newTestPipeline(t, cameraRoot, screenRoot, uploader, evals)

	require.NoError(t, p.Process(context.Background(), "sess-1"))

	assert.Equal(t, 1, evals.calls)
	assert.Equal(t, "sess-1", evals.sessionID)
	assert.Contains(t, evals.screenURL, "screen_uploads")
	assert.Contains(t, evals.cameraURL, "Camera_uploads")

	// Merged output path follows final_<session>.mp4 inside the input dir.
	assert.Equal(t, filepath.Join(cameraDir, "final_sess-1.mp4"), uploader.uploads[CameraFolderType])
	assert.Equal(t, filepath.Join(screenDir, "final_sess-1.mp4"), uploader.uploads[ScreenFolderType])
}

func TestPipeline_Process_PartialResult(t *testing.T) {
	cameraRoot := t.TempDir()
	screenRoot := t.TempDir()

	// Only the camera directory exists; the screen stream is skipped.
	cameraDir := filepath.Join(cameraRoot, "sess-1")
	require.NoError(t, os.Mkdir(cameraDir, 0o755))
	writeFile(t, cameraDir, "chunk0.mp4")

	evals := &mockEvalRepo{}
	p := newTestPipeline(t, cameraRoot, screenRoot, &fakeUploader{}, evals)

	require.NoError(t, p.Process(context.Background(), "sess-1"))

	assert.Equal(t, 1, evals.calls)
	assert.Empty(t, evals.screenURL)
	assert.NotEmpty(t, evals.cameraURL)
}

func TestPipeline_Process_NothingMerged(t *testing.T) {
	evals := &mockEvalRepo{}
	p := newTestPipeline(t, t.TempDir(), t.TempDir(), &fakeUploader{}, evals)

	require.NoError(t, p.Process(context.Background(), "sess-1"))

	// Neither directory existed: no database write at all.
	assert.Zero(t, evals.calls)
}

func TestPipeline_Process_UploadFailureSkipsStream(t *testing.T) {
	cameraRoot := t.TempDir()
	screenRoot := t.TempDir()

	cameraDir := filepath.Join(cameraRoot, "sess-1")
	screenDir := filepath.Join(screenRoot, "sess-1_screen")
	require.NoError(t, os.Mkdir(cameraDir, 0o755))
	require.NoError(t, os.Mkdir(screenDir, 0o755))
	writeFile(t, cameraDir, "chunk0.mp4")
	writeFile(t, screenDir, "chunk0.mp4")

	uploader := &fakeUploader{failOn: ScreenFolderType}
	evals := &mockEvalRepo{}
	p := newTestPipeline(t, cameraRoot, screenRoot, uploader, evals)

	require.NoError(t, p.Process(context.Background(), "sess-1"))

	assert.Equal(t, 1, evals.calls)
	assert.Empty(t, evals.screenURL)
	assert.NotEmpty(t, evals.cameraURL)
}

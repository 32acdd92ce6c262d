package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePutter struct {
	bucket string
	key    string
	body   []byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = *params.Bucket
	f.key = *params.Key
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_Upload(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "final_sess-1.mp4")
	require.NoError(t, os.WriteFile(localPath, []byte("video"), 0o644))

	putter := &fakePutter{}
	u := NewS3UploaderWithClient(putter, "recordings", testLogger())

	url, err := u.Upload(context.Background(), localPath, "sess-1", "Camera_uploads")
	require.NoError(t, err)

	assert.Equal(t, "https://recordings.s3.amazonaws.com/sess-1/Camera_uploads/final_sess-1.mp4", url)
	assert.Equal(t, "recordings", putter.bucket)
	assert.Equal(t, "sess-1/Camera_uploads/final_sess-1.mp4", putter.key)
	assert.Equal(t, []byte("video"), putter.body)

	// Local copy is removed once the object is stored.
	_, statErr := os.Stat(localPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestS3Uploader_Upload_PutFailureKeepsLocalFile(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "final_sess-1.mp4")
	require.NoError(t, os.WriteFile(localPath, []byte("video"), 0o644))

	putter := &fakePutter{err: errors.New("access denied")}
	u := NewS3UploaderWithClient(putter, "recordings", testLogger())

	_, err := u.Upload(context.Background(), localPath, "sess-1", "Camera_uploads")
	require.Error(t, err)

	_, statErr := os.Stat(localPath)
	assert.NoError(t, statErr)
}

func TestS3Uploader_Upload_MissingFile(t *testing.T) {
	u := NewS3UploaderWithClient(&fakePutter{}, "recordings", testLogger())

	_, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "absent.mp4"), "sess-1", "Camera_uploads")
	assert.Error(t, err)
}

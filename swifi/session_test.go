package swifi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine records the order of engine calls and the sinks handed to them.
type fakeEngine struct {
	downloadBps float64
	uploadBps   float64
	downloadErr error
	uploadErr   error

	calls []string
	sinks []ProgressSink
}

func (e *fakeEngine) Download(_ context.Context, _ *Server, sink ProgressSink) (float64, error) {
	e.calls = append(e.calls, "download")
	e.sinks = append(e.sinks, sink)
	return e.downloadBps, e.downloadErr
}

func (e *fakeEngine) Upload(_ context.Context, _ *Server, sink ProgressSink) (float64, error) {
	e.calls = append(e.calls, "upload")
	e.sinks = append(e.sinks, sink)
	return e.uploadBps, e.uploadErr
}

func testServer() *Server {
	return &Server{ID: 1001, Sponsor: "Sponsor A", Name: "Tokyo", URL: "http://near.example.com/speedtest/upload.php", Distance: 12.3}
}

func TestSessionRunBoth(t *testing.T) {
	engine := &fakeEngine{downloadBps: 42_000_000, uploadBps: 8_500_000}
	session := NewSession(engine, testServer(), Both, nil)

	result, err := session.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"download", "upload"}, engine.calls, "download must complete before upload begins")
	require.NotNil(t, result.Download)
	require.NotNil(t, result.Upload)
	assert.Equal(t, 42.0, result.Download.Mbps)
	assert.Equal(t, 8.5, result.Upload.Mbps)
	assert.Equal(t, uint32(1001), result.Server.ID)
}

func TestSessionRunDownloadOnly(t *testing.T) {
	engine := &fakeEngine{downloadBps: 10_000_000}
	session := NewSession(engine, testServer(), Download, nil)

	result, err := session.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"download"}, engine.calls)
	require.NotNil(t, result.Download)
	assert.Nil(t, result.Upload, "upload was not requested")
	assert.Equal(t, 10.0, result.Download.Mbps)
}

func TestSessionRunUploadOnly(t *testing.T) {
	engine := &fakeEngine{uploadBps: 5_000_000}
	session := NewSession(engine, testServer(), Upload, nil)

	result, err := session.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"upload"}, engine.calls)
	assert.Nil(t, result.Download, "download was not requested")
	require.NotNil(t, result.Upload)
	assert.Equal(t, 5.0, result.Upload.Mbps)
}

func TestSessionDownloadFailureAbortsSession(t *testing.T) {
	cause := errors.New("connection reset")
	engine := &fakeEngine{downloadErr: cause}
	session := NewSession(engine, testServer(), Both, nil)

	result, err := session.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []string{"download"}, engine.calls, "upload must not be attempted after a failed download")

	var merr *MeasurementError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, Download, merr.Direction)
	assert.ErrorIs(t, err, cause)
}

func TestSessionUploadFailure(t *testing.T) {
	cause := errors.New("timeout")
	engine := &fakeEngine{downloadBps: 1_000_000, uploadErr: cause}
	session := NewSession(engine, testServer(), Both, nil)

	_, err := session.Run(context.Background(), nil)
	require.Error(t, err)

	var merr *MeasurementError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, Upload, merr.Direction)
	assert.ErrorIs(t, err, cause)
}

func TestSessionPassesSinkUnchanged(t *testing.T) {
	engine := &fakeEngine{downloadBps: 1, uploadBps: 1}
	sink := ProgressFunc(func() {})
	session := NewSession(engine, testServer(), Both, nil)

	_, err := session.Run(context.Background(), sink)
	require.NoError(t, err)

	require.Len(t, engine.sinks, 2)
	for _, got := range engine.sinks {
		assert.NotNil(t, got)
	}
}

func TestMeasurementErrorMessage(t *testing.T) {
	err := &MeasurementError{Direction: Download, Cause: errors.New("boom")}
	assert.Equal(t, "download speed test failed: boom", err.Error())
}

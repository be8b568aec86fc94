package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysisusecase "github.com/seqlab/triplex-go/internal/analysis/usecase"
	"github.com/seqlab/triplex-go/internal/config"
	"github.com/seqlab/triplex-go/internal/pipeline"
	"github.com/seqlab/triplex-go/internal/storage"
	"github.com/seqlab/triplex-go/internal/workspace"
)

type recordingNotifier struct {
	addresses []string
}

func (f *recordingNotifier) SendResult(address string, artifactPath string) error {
	f.addresses = append(f.addresses, address)
	return nil
}

func writeStage(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// setupService points the package globals at a service wired to fake stage
// tools, the way main does against the real ones.
func setupService(t *testing.T, analysisBody string) *recordingNotifier {
	t.Helper()

	workdir := t.TempDir()
	toolDir := t.TempDir()

	if analysisBody == "" {
		analysisBody = "echo hits > blast_results_001.txt\necho blast_results_001.txt\n"
	}

	triplexConfig = config.TriplexConfig{
		Service: config.ServiceConfig{
			Address:      ":8080",
			Workdir:      workdir,
			MaxBodyBytes: 32 << 20,
			MaxPipelines: 2,
		},
		Tools: config.ToolsConfig{
			AnalysisCmd:         writeStage(t, toolDir, "analysis.sh", analysisBody),
			NativeCmd:           writeStage(t, toolDir, "native.sh", "echo primers > list_prim_tripl\n"),
			AnalysisWorkdir:     t.TempDir(),
			StageTimeoutSeconds: 60,
		},
	}

	db, err := storage.NewDB(filepath.Join(workdir, "triplex.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := &recordingNotifier{}
	analysisService = analysisusecase.NewAnalysisUsecase(
		triplexConfig,
		workspace.NewManager(workdir),
		pipeline.New(triplexConfig.Tools, triplexConfig.Service.MaxPipelines),
		notifier,
		storage.NewRequestStore(db, 100),
		nil,
		"test",
	)
	return notifier
}

func TestSequenceSubmitHandler(t *testing.T) {
	notifier := setupService(t, "")

	body := `{"dnaSequence": "ACGTACGT", "dnaSequence2": "TTTT", "email": "researcher@example.org"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()

	SequenceSubmitHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"DONE"`)
	assert.Contains(t, rec.Body.String(), `"requestId"`)
	assert.Equal(t, []string{"researcher@example.org"}, notifier.addresses)
}

func TestSequenceSubmitHandlerMalformedBody(t *testing.T) {
	notifier := setupService(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	SequenceSubmitHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, notifier.addresses)
}

func TestSequenceSubmitHandlerValidation(t *testing.T) {
	notifier := setupService(t, "")

	body := `{"dnaSequence": "ACGT", "dnaSequence2": "TTTT", "email": "not-an-address"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()

	SequenceSubmitHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, notifier.addresses)

	// no workspace may exist after a rejected submission
	_, err := os.Stat(filepath.Join(triplexConfig.Service.Workdir, workspace.RequestRootDirName))
	assert.True(t, os.IsNotExist(err))
}

func TestSequenceSubmitHandlerStage1Failure(t *testing.T) {
	notifier := setupService(t, "echo 'database unreachable' >&2\nexit 1\n")

	body := `{"dnaSequence": "ACGT", "dnaSequence2": "TTTT", "email": "researcher@example.org"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()

	SequenceSubmitHandler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error processing DNA sequence", rec.Body.String())
	assert.Empty(t, notifier.addresses)
}

func TestRequestStatusHandler(t *testing.T) {
	setupService(t, "")

	body := `{"dnaSequence": "ACGT", "dnaSequence2": "TTTT", "email": "researcher@example.org"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	SequenceSubmitHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var submitResp analysisusecase.SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitResp))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status?id="+submitResp.RequestID, nil)
	rec = httptest.NewRecorder()
	RequestStatusHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"DONE"`)
}

func TestRequestStatusHandlerMissingID(t *testing.T) {
	setupService(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	RequestStatusHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestStatusHandlerNotFound(t *testing.T) {
	setupService(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status?id=nope", nil)
	rec := httptest.NewRecorder()
	RequestStatusHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVersionHandler(t *testing.T) {
	setupService(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/version", nil)
	rec := httptest.NewRecorder()
	VersionHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"version":"test"}`, rec.Body.String())
}

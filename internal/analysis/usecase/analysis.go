package usecase

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	validator "gopkg.in/go-playground/validator.v9"

	"github.com/seqlab/triplex-go/internal/config"
	"github.com/seqlab/triplex-go/internal/monitoring"
	"github.com/seqlab/triplex-go/internal/pipeline"
	"github.com/seqlab/triplex-go/internal/storage"
	"github.com/seqlab/triplex-go/internal/workspace"
	"github.com/seqlab/triplex-go/pkg/systemutil"
)

// stage1FailureMessage is the exact body clients receive when the scripted
// analysis stage fails. Existing clients match on it.
const stage1FailureMessage = "Error processing DNA sequence"

// ResultNotifier delivers a verified artifact to a submitter.
type ResultNotifier interface {
	SendResult(address string, artifactPath string) error
}

type AnalysisUsecase struct {
	Config             config.TriplexConfig
	Workspaces         *workspace.Manager
	Pipeline           *pipeline.Pipeline
	Notifier           ResultNotifier
	Requests           *storage.RequestStore
	MonitoringRegistry *monitoring.Registry
	Version            string

	validate *validator.Validate
	active   int64
}

func NewAnalysisUsecase(
	cfg config.TriplexConfig,
	workspaces *workspace.Manager,
	pipe *pipeline.Pipeline,
	resultNotifier ResultNotifier,
	requests *storage.RequestStore,
	registry *monitoring.Registry,
	version string,
) *AnalysisUsecase {
	u := &AnalysisUsecase{
		Config:             cfg,
		Workspaces:         workspaces,
		Pipeline:           pipe,
		Notifier:           resultNotifier,
		Requests:           requests,
		MonitoringRegistry: registry,
		Version:            version,
		validate:           validator.New(),
	}

	if pipe != nil {
		pipe.OnStateChange = func(id string, state pipeline.State) {
			// FAILED is recorded by SubmitSequence together with the
			// failure kind.
			if state == pipeline.StateFailed || u.Requests == nil {
				return
			}
			if err := u.Requests.UpdateRequestState(id, string(state), ""); err != nil {
				log.Printf("Failed to update request state: %v\n", err)
			}
		}
	}

	return u
}

// ActivePipelines reports how many submissions are currently inside the
// pipeline. Used by the monitoring heartbeat.
func (u *AnalysisUsecase) ActivePipelines() int {
	return int(atomic.LoadInt64(&u.active))
}

func (u *AnalysisUsecase) logPath(requestID string) string {
	return filepath.Join(u.Config.Service.Workdir, "logs", requestID+".log")
}

// SubmitSequence drives one submission through workspace staging, both
// analysis stages and result delivery. It returns only after the email
// went out or the pipeline failed; the caller holds the client connection
// open for the whole run.
func (u *AnalysisUsecase) SubmitSequence(ctx context.Context, submission Submission) (SubmitResponse, error) {
	if err := u.validate.Struct(submission); err != nil {
		return SubmitResponse{}, UsecaseError{Code: http.StatusBadRequest, Message: "Invalid submission: " + err.Error()}
	}

	submission.Timestamp = time.Now()
	requestID := workspace.NewID()

	u.recordRequest(requestID, submission)

	ws, err := u.Workspaces.Create(requestID, submission.DNASequence)
	if err != nil {
		log.Println(err)
		u.recordFailure(requestID, string(pipeline.FailWorkspace))
		return SubmitResponse{}, UsecaseError{Code: http.StatusInternalServerError, Message: "Can't create request workspace"}
	}

	logPath := u.logPath(requestID)
	if u.Config.IsDev {
		go systemutil.StreamLog(logPath)
	}

	atomic.AddInt64(&u.active, 1)
	artifact, err := u.Pipeline.Run(ctx, ws, logPath)
	atomic.AddInt64(&u.active, -1)
	if err != nil {
		log.Println(err)
		kind := pipeline.KindOf(err)
		u.recordFailure(requestID, string(kind))
		return SubmitResponse{}, UsecaseError{Code: http.StatusInternalServerError, Message: failureMessage(kind)}
	}

	if err := u.Notifier.SendResult(submission.Email, artifact); err != nil {
		log.Println(err)
		u.recordFailure(requestID, "DeliveryError")
		return SubmitResponse{}, UsecaseError{Code: http.StatusInternalServerError, Message: "Can't deliver the result email"}
	}

	u.recordState(requestID, string(pipeline.StateDone))

	return SubmitResponse{RequestID: requestID, State: string(pipeline.StateDone)}, nil
}

func failureMessage(kind pipeline.FailureKind) string {
	switch kind {
	case pipeline.FailStage1:
		return stage1FailureMessage
	case pipeline.FailRelocation:
		return "Can't relocate the analysis results"
	case pipeline.FailStage2:
		return "Can't complete the primer computation"
	case pipeline.FailArtifactMissing:
		return "Can't find the computed primer list"
	default:
		return "Can't complete the analysis"
	}
}

// RequestStatus looks up the recorded state of a request.
func (u *AnalysisUsecase) RequestStatus(requestID string) (StatusResponse, error) {
	if u.Requests == nil {
		return StatusResponse{}, UsecaseError{Code: http.StatusServiceUnavailable, Message: "Request tracking is not available"}
	}

	info, err := u.Requests.GetRequest(requestID)
	if err != nil {
		return StatusResponse{}, UsecaseError{Code: http.StatusNotFound, Message: "Request not found: " + requestID}
	}

	return StatusResponse{
		RequestID:   info.RequestID,
		State:       info.State,
		FailureKind: info.FailureKind,
		SubmittedAt: info.SubmittedAt,
	}, nil
}

func (u *AnalysisUsecase) recordRequest(requestID string, submission Submission) {
	if u.Requests == nil {
		return
	}
	err := u.Requests.RecordRequest(storage.RequestInfo{
		RequestID:       requestID,
		Email:           submission.Email,
		SequenceLength:  len(submission.DNASequence),
		Sequence2Length: len(submission.DNASequence2),
		SubmittedAt:     submission.Timestamp,
		State:           "PENDING",
	})
	if err != nil {
		log.Printf("Failed to record request: %v\n", err)
	}
}

func (u *AnalysisUsecase) recordState(requestID, state string) {
	if u.Requests == nil {
		return
	}
	if err := u.Requests.UpdateRequestState(requestID, state, ""); err != nil {
		log.Printf("Failed to update request state: %v\n", err)
	}
}

func (u *AnalysisUsecase) recordFailure(requestID, kind string) {
	if u.Requests == nil {
		return
	}
	if err := u.Requests.UpdateRequestState(requestID, string(pipeline.StateFailed), kind); err != nil {
		log.Printf("Failed to record request failure: %v\n", err)
	}
}

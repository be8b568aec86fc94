package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/seqlab/triplex-go/internal/config"
	"github.com/seqlab/triplex-go/internal/runner"
	"github.com/seqlab/triplex-go/internal/workspace"
	"github.com/seqlab/triplex-go/pkg/systemutil"
)

// FinalArtifactName is the fixed name the native stage writes into the
// workspace directory. It is not derived from the request identifier; each
// workspace is a distinct directory, so only one final artifact can exist
// per request. Preserved as-is, attachment name included.
const FinalArtifactName = "list_prim_tripl"

// State of a running pipeline. Stages are strictly sequential within one
// request; Failed is reachable from every non-terminal state.
type State string

const (
	StateIdle             State = "IDLE"
	StateStaged           State = "STAGED"
	StateStage1Running    State = "STAGE1_RUNNING"
	StateStage1Complete   State = "STAGE1_COMPLETE"
	StateRelocating       State = "RELOCATING"
	StateStage2Running    State = "STAGE2_RUNNING"
	StateStage2Complete   State = "STAGE2_COMPLETE"
	StateArtifactVerified State = "ARTIFACT_VERIFIED"
	StateDone             State = "DONE"
	StateFailed           State = "FAILED"
)

// Pipeline sequences the two external analysis tools for one request at a
// time per slot. The semaphore bounds how many external-process pairs run
// concurrently across requests.
type Pipeline struct {
	Runner *runner.Runner
	Tools  config.ToolsConfig

	sem *semaphore.Weighted

	// OnStateChange, when set, observes every transition. Used to keep
	// the request store current.
	OnStateChange func(id string, state State)
}

func New(tools config.ToolsConfig, maxPipelines int64) *Pipeline {
	if maxPipelines <= 0 {
		maxPipelines = 1
	}
	return &Pipeline{
		Runner: runner.New(),
		Tools:  tools,
		sem:    semaphore.NewWeighted(maxPipelines),
	}
}

func (p *Pipeline) setState(id string, state State) {
	if p.OnStateChange != nil {
		p.OnStateChange(id, state)
	}
}

func (p *Pipeline) stageTimeout() time.Duration {
	return time.Duration(p.Tools.StageTimeoutSeconds) * time.Second
}

// Run drives one staged workspace through both stages and returns the
// verified final artifact path. Every failure is terminal for the request;
// nothing is retried.
func (p *Pipeline) Run(ctx context.Context, ws *workspace.Workspace, logPath string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", &Error{Kind: FailStage1, Err: err}
	}
	defer p.sem.Release(1)

	p.setState(ws.ID, StateStaged)

	// Stage 1: the scripted analysis tool, input FASTA path as its sole
	// argument, run inside the analysis base directory so its result file
	// lands there.
	p.setState(ws.ID, StateStage1Running)
	stage1Ctx, cancel1 := context.WithTimeout(ctx, p.stageTimeout())
	defer cancel1()

	res, err := p.Runner.Run(stage1Ctx, p.Tools.AnalysisWorkdir, p.Tools.AnalysisCmd, ws.InputPath)
	if err != nil {
		p.setState(ws.ID, StateFailed)
		return "", &Error{Kind: FailStage1, Err: err}
	}
	systemutil.WriteLogSection(logPath, "RUN "+p.Tools.AnalysisCmd+" "+ws.InputPath, res.Stdout+res.Stderr)
	if res.ExitCode != 0 {
		p.setState(ws.ID, StateFailed)
		return "", &Error{
			Kind:   FailStage1,
			Stderr: res.Stderr,
			Err:    fmt.Errorf("analysis stage exited with code %d", res.ExitCode),
		}
	}
	p.setState(ws.ID, StateStage1Complete)

	// The analysis tool reports the name of the file it wrote as its
	// single stdout line, relative to the analysis base directory. The
	// trimmed-stdout-as-filename contract is a hard requirement on that
	// tool's behavior.
	p.setState(ws.ID, StateRelocating)
	resultName := strings.TrimSpace(res.Stdout)
	if resultName == "" {
		p.setState(ws.ID, StateFailed)
		return "", &Error{
			Kind:   FailRelocation,
			Stderr: res.Stderr,
			Err:    fmt.Errorf("analysis stage reported no result file"),
		}
	}

	src := filepath.Join(p.Tools.AnalysisWorkdir, resultName)
	intermediate := ws.IntermediatePath()
	if err := Move(src, intermediate); err != nil {
		p.setState(ws.ID, StateFailed)
		return "", &Error{
			Kind: FailRelocation,
			Err:  fmt.Errorf("relocating %s: %w", resultName, err),
		}
	}
	systemutil.WriteLogSection(logPath, "MOVED "+src+" -> "+intermediate, "")

	// Stage 2: the native tool, input filename plus relocated artifact
	// path, run inside the workspace directory where it writes its
	// fixed-named output.
	p.setState(ws.ID, StateStage2Running)
	stage2Ctx, cancel2 := context.WithTimeout(ctx, p.stageTimeout())
	defer cancel2()

	res, err = p.Runner.Run(stage2Ctx, ws.Dir, p.Tools.NativeCmd, ws.InputFileName(), intermediate)
	if err != nil {
		p.setState(ws.ID, StateFailed)
		return "", &Error{Kind: FailStage2, Err: err}
	}
	systemutil.WriteLogSection(logPath, "RUN "+p.Tools.NativeCmd+" "+ws.InputFileName()+" "+intermediate, res.Stdout+res.Stderr)
	if res.ExitCode != 0 {
		p.setState(ws.ID, StateFailed)
		return "", &Error{
			Kind:   FailStage2,
			Stderr: res.Stderr,
			Err:    fmt.Errorf("native stage exited with code %d", res.ExitCode),
		}
	}
	p.setState(ws.ID, StateStage2Complete)

	artifact := filepath.Join(ws.Dir, FinalArtifactName)
	if _, err := os.Stat(artifact); err != nil {
		p.setState(ws.ID, StateFailed)
		return "", &Error{
			Kind: FailArtifactMissing,
			Err:  fmt.Errorf("final artifact %s: %w", FinalArtifactName, err),
		}
	}
	p.setState(ws.ID, StateArtifactVerified)

	return artifact, nil
}

// Move relocates a file by copy and remove, surviving cross-device moves.
func Move(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		in.Close()
		return err
	}

	_, err = io.Copy(out, in)
	if err != nil {
		in.Close()
		out.Close()
		return err
	}
	in.Close()
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	// RequestRootDirName is the shared root for all per-request workspaces.
	RequestRootDirName = "dna_request"

	// fastaLabel is the fixed single-record FASTA header label.
	fastaLabel = "query"
)

// Workspace is the isolated directory holding all artifacts for one
// submission. It is owned exclusively by that request's pipeline and is not
// cleaned up automatically.
type Workspace struct {
	ID        string
	Dir       string
	InputPath string
}

// InputFileName returns the workspace-relative name of the input FASTA file.
func (w *Workspace) InputFileName() string {
	return w.ID + ".fasta"
}

// IntermediatePath returns the destination path for the relocated analysis
// artifact. The literal "_blast" suffix is a fixed naming convention.
func (w *Workspace) IntermediatePath() string {
	return filepath.Join(w.Dir, w.ID+"_blast")
}

// Error wraps a workspace staging failure.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("workspace %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Manager stages per-request workspaces under a shared workdir.
type Manager struct {
	Workdir string
}

func NewManager(workdir string) *Manager {
	return &Manager{Workdir: workdir}
}

// RootDir is the shared request-storage directory.
func (m *Manager) RootDir() string {
	return filepath.Join(m.Workdir, RequestRootDirName)
}

// NewID derives a workspace identifier unique for the process lifetime.
func NewID() string {
	return time.Now().Format("20060102-150405") + "_" + uuid.New().String()
}

// Create makes a fresh workspace directory and writes the primary sequence
// into it as a single-record FASTA file. The identifier subdirectory must
// not already exist; a collision means identifier generation is broken and
// is reported loudly rather than papered over.
func (m *Manager) Create(id string, sequence string) (*Workspace, error) {
	if err := os.MkdirAll(m.RootDir(), 0755); err != nil {
		return nil, &Error{Op: "create root", Err: err}
	}

	dir := filepath.Join(m.RootDir(), id)
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, &Error{Op: "create dir", Err: err}
	}

	ws := &Workspace{
		ID:        id,
		Dir:       dir,
		InputPath: filepath.Join(dir, id+".fasta"),
	}

	fasta := fmt.Sprintf(">%s\n%s\n", fastaLabel, sequence)
	if err := os.WriteFile(ws.InputPath, []byte(fasta), 0644); err != nil {
		return nil, &Error{Op: "write input", Err: err}
	}

	return ws, nil
}

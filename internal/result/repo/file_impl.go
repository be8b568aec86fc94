package repo

import (
	"path/filepath"

	"github.com/seqlab/triplex-go/internal/pipeline"
	model "github.com/seqlab/triplex-go/internal/result/model"
	"github.com/seqlab/triplex-go/internal/workspace"
)

// FileRepo interface with file system based result information
type FileRepo struct {
	Workdir string
}

// NewFileRepo create new instance
func NewFileRepo(Workdir string) *FileRepo {
	return &FileRepo{
		Workdir: Workdir,
	}
}

// GetResultList ...
// paging is not implemented yet
func (R *FileRepo) GetResultList(pageNum int64, rows int64) (resultList ResultList, err error) {
	pattern := filepath.Join(R.Workdir, workspace.RequestRootDirName, "*", pipeline.FinalArtifactName)
	files, err := filepath.Glob(pattern)
	if err != nil {
		return
	}

	resultList.Results = []model.Result{}

	for _, file := range files {
		resultList.Results = append(resultList.Results, model.Result{RequestID: requestIDFromArtifactPath(file)})
	}
	resultList.TotalData = len(resultList.Results)

	return
}

func requestIDFromArtifactPath(artifactPath string) string {
	return filepath.Base(filepath.Dir(artifactPath))
}

package repo

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/seqlab/triplex-go/internal/pipeline"
	model "github.com/seqlab/triplex-go/internal/result/model"
	"github.com/seqlab/triplex-go/internal/workspace"
)

func TestMain(m *testing.M) {
	// prepare completed and incomplete request workspaces
	root := filepath.Join(".", workspace.RequestRootDirName)
	for _, id := range []string{"20240101-090000_aaa", "20240101-100000_bbb"} {
		os.MkdirAll(filepath.Join(root, id), os.ModePerm)
		f, _ := os.Create(filepath.Join(root, id, pipeline.FinalArtifactName))
		f.Close()
	}
	// workspace without a final artifact must not be listed
	os.MkdirAll(filepath.Join(root, "20240101-110000_ccc"), os.ModePerm)

	exitVal := m.Run()

	os.RemoveAll(root)

	os.Exit(exitVal)
}

func Test_requestIDFromArtifactPath(t *testing.T) {
	tests := []struct {
		name          string
		artifactPath  string
		wantRequestID string
	}{
		{
			name:          "nested workspace path",
			artifactPath:  "/var/lib/triplex/dna_request/20240101-090000_aaa/list_prim_tripl",
			wantRequestID: "20240101-090000_aaa",
		},
		{
			name:          "relative path",
			artifactPath:  "dna_request/xyz/list_prim_tripl",
			wantRequestID: "xyz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requestIDFromArtifactPath(tt.artifactPath); got != tt.wantRequestID {
				t.Errorf("requestIDFromArtifactPath() = %v, want %v", got, tt.wantRequestID)
			}
		})
	}
}

func TestFileRepo_GetResultList(t *testing.T) {
	tests := []struct {
		name           string
		workdir        string
		wantResultList ResultList
		wantErr        bool
	}{
		{
			name:    "get completed results",
			workdir: ".",
			wantResultList: ResultList{
				TotalData: 2,
				Results: []model.Result{
					{RequestID: "20240101-090000_aaa"},
					{RequestID: "20240101-100000_bbb"},
				},
			},
		},
		{
			name:           "empty workdir",
			workdir:        "./does-not-exist",
			wantResultList: ResultList{TotalData: 0, Results: []model.Result{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			R := &FileRepo{
				Workdir: tt.workdir,
			}
			gotResultList, err := R.GetResultList(1, 1)
			if (err != nil) != tt.wantErr {
				t.Errorf("FileRepo.GetResultList() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(gotResultList, tt.wantResultList) {
				t.Errorf("FileRepo.GetResultList() = %v, want %v", gotResultList, tt.wantResultList)
			}
		})
	}
}

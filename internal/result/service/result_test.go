package service

import (
	"fmt"
	"reflect"
	"testing"

	model "github.com/seqlab/triplex-go/internal/result/model"
	resultRepo "github.com/seqlab/triplex-go/internal/result/repo"
)

func TestNewResultService(t *testing.T) {
	tests := []struct {
		name string
		repo resultRepo.Repo
		want *ResultService
	}{
		{
			name: "empty",
			want: &ResultService{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewResultService(tt.repo); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewResultService() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultService_GetResultList(t *testing.T) {
	tests := []struct {
		name        string
		repo        resultRepo.Repo
		wantResults ResultList
		wantErr     bool
	}{
		{
			name: "empty",
			repo: &resultRepo.RepoMock{
				GetResultListFunc: func(pageNum int64, rows int64) (l resultRepo.ResultList, e error) {
					return
				},
			},
			wantResults: ResultList{TotalData: 0, Results: []ResultItem{}},
		},
		{
			name: "error",
			repo: &resultRepo.RepoMock{
				GetResultListFunc: func(pageNum int64, rows int64) (l resultRepo.ResultList, e error) {
					return l, fmt.Errorf("")
				},
			},
			wantErr: true,
		},
		{
			name: "2 items",
			repo: &resultRepo.RepoMock{
				GetResultListFunc: func(pageNum int64, rows int64) (l resultRepo.ResultList, e error) {
					l.Results = append(l.Results, model.Result{RequestID: "20240101-090000_aaa"})
					l.Results = append(l.Results, model.Result{RequestID: "20240101-100000_bbb"})
					l.TotalData = 2
					return
				},
			},
			wantResults: ResultList{
				TotalData: 2,
				Results: []ResultItem{
					{RequestID: "20240101-090000_aaa"},
					{RequestID: "20240101-100000_bbb"},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			R := &ResultService{
				repo: tt.repo,
			}
			gotResults, err := R.GetResultList(1, 1)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResultService.GetResultList() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(gotResults, tt.wantResults) {
				t.Errorf("ResultService.GetResultList() = %v, want %v", gotResults, tt.wantResults)
			}
		})
	}
}

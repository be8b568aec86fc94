package repo

import (
	model "github.com/seqlab/triplex-go/internal/result/model"
)

//go:generate moq -out result_repo_moq.go . Repo

// ResultList list of completed results
type ResultList struct {
	TotalData int
	Results   []model.Result
}

// Repo interface to operate with analysis results
type Repo interface {
	GetResultList(pageNum int64, rows int64) (ResultList, error)
}

package service

import (
	resultRepo "github.com/seqlab/triplex-go/internal/result/repo"
)

// ResultItem representation of a completed analysis artifact
type ResultItem struct {
	RequestID string `json:"requestId"`
}

// ResultList list of results
type ResultList struct {
	TotalData int          `json:"totalData"`
	Results   []ResultItem `json:"results"`
}

// Service interface for result service
type Service interface {
	GetResultList(pageNum int64, rows int64) (ResultList, error)
}

// ResultService implement service
type ResultService struct {
	repo resultRepo.Repo
}

// NewResultService return result service instance
func NewResultService(repo resultRepo.Repo) *ResultService {
	return &ResultService{
		repo: repo,
	}
}

// GetResultList get list of completed results
// paging is not yet functional
func (R *ResultService) GetResultList(pageNum int64, rows int64) (list ResultList, err error) {
	rlist, err := R.repo.GetResultList(pageNum, rows)
	if err != nil {
		return
	}

	list.TotalData = rlist.TotalData
	list.Results = []ResultItem{}

	for _, r := range rlist.Results {
		list.Results = append(list.Results, ResultItem{RequestID: r.RequestID})
	}

	return
}

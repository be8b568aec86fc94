package endpoint

import (
	"net/http"

	service "github.com/seqlab/triplex-go/internal/result/service"
	httputil "github.com/seqlab/triplex-go/pkg/httputil"
)

// ResultHTTPEndpoint http endpoint for results
type ResultHTTPEndpoint struct {
	service service.Service
}

// NewResultHTTPEndpoint returns new result endpoint instance
func NewResultHTTPEndpoint(service service.Service) *ResultHTTPEndpoint {
	return &ResultHTTPEndpoint{
		service: service,
	}
}

// GetResultListHandler get completed results
func (R *ResultHTTPEndpoint) GetResultListHandler(w http.ResponseWriter, r *http.Request) {
	resultList, err := R.service.GetResultList(1, 1)
	if err != nil {
		httputil.ResponseError("Can't get results", http.StatusInternalServerError, w)
		return
	}

	httputil.ResponseJSON(resultList, http.StatusOK, w)
}

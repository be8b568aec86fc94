package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	analysisusecase "github.com/seqlab/triplex-go/internal/analysis/usecase"
	"github.com/seqlab/triplex-go/pkg/httputil"
)

func writeUsecaseError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if useErr, ok := err.(analysisusecase.UsecaseError); ok {
		httputil.ResponseText(useErr.Message, useErr.Code, w)
		return
	}
	httputil.ResponseText("500", http.StatusInternalServerError, w)
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html, err := analysisService.RenderIndexHTML()
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	fmt.Fprint(w, html)
}

// SequenceSubmitHandler accepts one analysis request and responds only
// after the pipeline and delivery finished. The connection stays open for
// the whole run.
func SequenceSubmitHandler(w http.ResponseWriter, r *http.Request) {
	maxBody := triplexConfig.Service.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	submission := analysisusecase.Submission{}
	if err := httputil.DecodeJSON(r.Body, &submission); err != nil {
		log.Println(err.Error())
		httputil.ResponseText("Invalid request body", http.StatusBadRequest, w)
		return
	}

	payload, err := analysisService.SubmitSequence(r.Context(), submission)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	jsonStr, _ := json.Marshal(payload)
	fmt.Fprint(w, string(jsonStr))
}

func RequestStatusHandler(w http.ResponseWriter, r *http.Request) {
	keys, ok := r.URL.Query()["id"]
	if !ok || len(keys[0]) < 1 {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "id parameter is required"}`)
		return
	}
	requestID := keys[0]

	status, err := analysisService.RequestStatus(requestID)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	jsonStr, _ := json.Marshal(status)
	fmt.Fprint(w, string(jsonStr))
}

func VersionHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "{\"version\":\""+analysisService.Version+"\"}")
}

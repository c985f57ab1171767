// Package server runs a loader's cases on request over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/loader"
	"github.com/webgpu-cts/cts-harness/framework/query"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const httpListenerTimeout = time.Second * 10

// Server exposes a listing of cases and a way to run them. Only one run happens at a time.
type Server struct {
	loader  *loader.Loader
	logger  framework.Logger
	runLock sync.Mutex
}

// CaseResult is the JSON form of one case's result.
type CaseResult struct {
	Query      string   `json:"query"`
	Status     string   `json:"status"`
	Errors     []string `json:"errors,omitempty"`
	SkipReason string   `json:"skipReason,omitempty"`
	DurationMS int64    `json:"durationMs"`
}

// RunResponse is the JSON body returned by /run.
type RunResponse struct {
	OK      bool         `json:"ok"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Skipped int          `json:"skipped"`
	Tests   []CaseResult `json:"tests"`
}

func New(l *loader.Loader, logger framework.Logger) *Server {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Server{loader: l, logger: logger}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Head("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK) // we use this to test whether our own listener is active yet
	})
	r.Get("/listing", s.listingHandler)
	r.Get("/run", s.runHandler)
	return r
}

func (s *Server) listingHandler(w http.ResponseWriter, r *http.Request) {
	queries, err := parseQueries(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	listing, err := s.loader.Listing(queries...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if listing == nil {
		listing = []string{}
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	queries, err := parseQueries(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, makeRunResponse(s.run(queries)))
}

func (s *Server) run(queries []query.Query) framework.Results {
	s.runLock.Lock()
	defer s.runLock.Unlock()
	s.logger.Printf("Running %d queries", len(queries))
	return s.loader.Run(nil, nil, queries...)
}

func parseQueries(r *http.Request) ([]query.Query, error) {
	var ret []query.Query
	for _, s := range r.URL.Query()["q"] {
		q, err := query.Parse(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, q)
	}
	return ret, nil
}

func makeRunResponse(results framework.Results) RunResponse {
	resp := RunResponse{OK: results.OK(), Tests: []CaseResult{}}
	resp.Passed, resp.Failed, resp.Skipped = results.Summary()
	for _, t := range results.Tests {
		cr := CaseResult{
			Query:      t.TestID.String(),
			Status:     "pass",
			SkipReason: t.SkipReason,
			DurationMS: t.Duration.Milliseconds(),
		}
		switch {
		case t.Failed:
			cr.Status = "fail"
		case t.Skipped:
			cr.Status = "skip"
		}
		for _, err := range t.Errors {
			cr.Errors = append(cr.Errors, err.Error())
		}
		resp.Tests = append(resp.Tests, cr)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Start listens on addr and serves the handler in the background. It returns once the listener
// is answering requests.
func Start(addr string, handler http.Handler, logger framework.Logger) (*http.Server, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	server := &http.Server{Handler: handler}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("HTTP server stopped: %s", err)
		}
	}()

	// Wait till the server is definitely listening for requests before returning
	url := fmt.Sprintf("http://%s/", listener.Addr())
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			_ = server.Close()
			return nil, fmt.Errorf("could not detect own listener at %s", listener.Addr())
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(url)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					logger.Printf("Listening at %s", url)
					return server, nil
				}
			}
		}
	}
}

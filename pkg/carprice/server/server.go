package server

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/history"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/predictor"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/specs"
	gometrics "github.com/rcrowley/go-metrics"
)

// Options holds the collaborators of the HTTP server
type Options struct {
	Specs     *specs.Provider
	Predictor predictor.Predictor
	// History is optional
	History history.Store
	Logger  *log.Logger
}

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(addr string, opts Options) *http.Server {
	server := newHTTPServer(opts)
	return &http.Server{
		Addr:    addr,
		Handler: server.router(),
	}
}

type httpServer struct {
	log       *log.Logger
	specs     *specs.Provider
	predictor predictor.Predictor
	history   history.Store
	metrics   *telemetry
}

func newHTTPServer(opts Options) *httpServer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "logs: ", log.LstdFlags)
	}
	return &httpServer{
		log:       logger,
		specs:     opts.Specs,
		predictor: opts.Predictor,
		history:   opts.History,
		metrics:   newTelemetry(gometrics.NewRegistry()),
	}
}

func (h *httpServer) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.GetHealth).Methods(http.MethodGet)
	r.HandleFunc("/brands", h.GetBrands).Methods(http.MethodGet)
	r.HandleFunc("/brands/{brand}/models", h.GetModels).Methods(http.MethodGet)
	r.HandleFunc("/specs", h.GetSpecs).Methods(http.MethodGet)
	r.HandleFunc("/predict", h.GetPrediction).Methods(http.MethodGet)
	r.HandleFunc("/predict", h.PostPrediction).Methods(http.MethodPost)
	r.HandleFunc("/metrics", h.GetMetrics).Methods(http.MethodGet)
	if h.history != nil {
		r.HandleFunc("/predictions", h.GetPredictions).Methods(http.MethodGet)
	}
	return r
}

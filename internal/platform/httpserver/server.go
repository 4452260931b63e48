package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	admissionengine "solon/contexts/registry-governance/admission-engine"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "solon/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	admission admissionengine.Module
}

func New(
	admission admissionengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		admission: admission,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/governance/{kind}/applications", s.handleSubmitApplication)
	s.mux.HandleFunc("GET /v1/governance/{kind}/applications/{candidate}", s.handleApplicationStatus)
	s.mux.HandleFunc("POST /v1/governance/{kind}/applications/{candidate}/deposits", s.handlePlaceDeposit)
	s.mux.HandleFunc("POST /v1/governance/{kind}/applications/{candidate}/finalize", s.handleFinalizeRound)
	s.mux.HandleFunc("POST /v1/governance/{kind}/applications/{candidate}/challenge", s.handleChallenge)
	s.mux.HandleFunc("POST /v1/governance/{kind}/applications/{candidate}/lame-duck", s.handleEnterLameDuck)
	s.mux.HandleFunc("POST /v1/governance/{kind}/applications/{candidate}/register", s.handleRegister)
	s.mux.HandleFunc("POST /v1/governance/{kind}/applications/{candidate}/withdrawals", s.handleWithdraw)
	s.mux.HandleFunc("GET /v1/governance/{kind}/applications/{candidate}/rounds/{round_index}", s.handleGetRound)
	s.mux.HandleFunc("GET /v1/governance/{kind}/applications/{candidate}/rounds/{round_index}/deposits/{participant}", s.handleGetDeposit)
	s.mux.HandleFunc("GET /v1/governance/{kind}/applications/{candidate}/withdrawable/{participant}", s.handleWithdrawable)
	s.mux.HandleFunc("GET /v1/governance/{kind}/applications/{candidate}/annotations", s.handleAnnotations)
	s.mux.HandleFunc("PUT /v1/governance/{kind}/settings/asset-address", s.handleSetAssetAddress)
	s.mux.HandleFunc("PUT /v1/governance/{kind}/settings/registry-address", s.handleSetRegistryAddress)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveCallerAddress(bodyAddress string, r *http.Request) string {
	if strings.TrimSpace(bodyAddress) != "" {
		return bodyAddress
	}
	return strings.TrimSpace(r.Header.Get("X-Caller-Address"))
}

// Package api exposes the REST surface of the account opening service: a
// health probe, the agent chat endpoint, and direct account creation.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gowrivallaban/account-open-agenticAI/account"
	"github.com/gowrivallaban/account-open-agenticAI/logging"
	"github.com/gowrivallaban/account-open-agenticAI/orchestrator"
)

const (
	// ServiceName and ServiceVersion identify the service in health responses.
	ServiceName    = "Apex Financial API"
	ServiceVersion = "2.0.0"
)

// Processor runs one user message through the dialogue loop. Satisfied by
// *orchestrator.Orchestrator.
type Processor interface {
	Process(ctx context.Context, sessionID, userMessage string) (*orchestrator.Result, error)
}

// Server exposes the REST endpoints over an orchestrator.
type Server struct {
	addr      string
	processor Processor
	logger    *slog.Logger
}

// NewServer constructs a Server listening on cfg.Addr.
func NewServer(cfg Config, processor Processor) *Server {
	merged := DefaultConfig()
	merged.Merge(&cfg)
	return &Server{
		addr:      merged.Addr,
		processor: processor,
		logger:    logging.Named("api"),
	}
}

// Handler returns the routed HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/accounts", s.handleCreateAccount)
	return withCORS(mux)
}

// Start runs the HTTP server until the context is cancelled or the listener
// fails. Shutdown drains in-flight requests for up to five seconds.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type addressPayload struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type accountRequest struct {
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	DateOfBirth   string         `json:"dateOfBirth"`
	SSN           string         `json:"ssn"`
	Address       addressPayload `json:"address"`
	AgreedToTerms bool           `json:"agreedToTerms"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := s.processor.Process(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.logger.Error("chat turn failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Agent error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acct, err := account.Open(account.OpenRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		SSN:           req.SSN,
		Street:        req.Address.Street,
		City:          req.Address.City,
		State:         req.Address.State,
		Zip:           req.Address.Zip,
		AgreedToTerms: req.AgreedToTerms,
	})
	if err != nil {
		var fieldErr *account.FieldError
		if errors.As(err, &fieldErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": fieldErr.Message,
				"field": string(fieldErr.Field),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logging.Audit().Info("account.created",
		"accountType", acct.AccountType,
		"customerName", acct.CustomerName,
	)
	writeJSON(w, http.StatusOK, acct)
}

func withCORS(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

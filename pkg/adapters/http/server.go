package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/aura/internal/logging"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"golang.org/x/time/rate"
)

//go:embed openapi.yaml
var rawSpec []byte

// Server serves the bank API on top of a ports.Bank.
type Server struct {
	bank       ports.Bank
	logger     *slog.Logger
	router     routers.Router
	middleware []func(http.Handler) http.Handler

	loginRate  rate.Limit
	loginBurst int
	limitersMu sync.Mutex
	limiters   map[string]*rate.Limiter
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithServerLogger sets the structured logger used for request logs.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLoginRate throttles login attempts per identifier. A zero limit disables throttling.
func WithLoginRate(limit rate.Limit, burst int) ServerOption {
	return func(s *Server) {
		s.loginRate = limit
		s.loginBurst = burst
	}
}

// WithMiddleware wraps every route, e.g. with metrics.
func WithMiddleware(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

// Spec returns the embedded OpenAPI document.
func Spec() []byte {
	return rawSpec
}

// NewHandler creates the HTTP handler for the bank.
func NewHandler(bank ports.Bank, opts ...ServerOption) (http.Handler, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	s := &Server{
		bank:     bank,
		logger:   logging.NewNop(),
		router:   router,
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.middleware...)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.validate)
		r.Post("/login", s.Login)
		r.Post("/transfer", s.Transfer)
		r.Get("/accounts/{id}", s.GetAccounts)
	})

	return r, nil
}

type requestIDKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// validate checks requests against the embedded OpenAPI document.
func (s *Server) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := s.router.FindRoute(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "route not found")
			return
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.logger.Warn("Request rejected by schema",
				"path", r.URL.Path,
				"request_id", requestIDFrom(r.Context()),
				"err", err,
			)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Login handles POST /login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.allowLogin(body.ID) {
		s.logger.Warn("Login throttled", "user_id", body.ID, "request_id", requestIDFrom(r.Context()))
		writeError(w, http.StatusTooManyRequests, "too many attempts")
		return
	}

	granted, err := s.bank.Authenticate(r.Context(), body.ID, body.Password)
	if err != nil {
		s.logger.Error("Login failed", "user_id", body.ID, "request_id", requestIDFrom(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "login unavailable")
		return
	}

	s.logger.Info("Login evaluated", "user_id", body.ID, "granted", granted, "request_id", requestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, loginReply{Granted: granted})
}

// Transfer handles POST /transfer.
func (s *Server) Transfer(w http.ResponseWriter, r *http.Request) {
	var body transferBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req, err := mapTransferFromWire(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	receipt, err := s.bank.Transfer(r.Context(), req)
	if err != nil {
		if isRefusal(err) {
			s.logger.Info("Transfer refused",
				"sender", req.SenderID,
				"recipient", req.RecipientID,
				"amount", req.Amount.String(),
				"request_id", requestIDFrom(r.Context()),
				"err", err,
			)
			writeJSON(w, http.StatusOK, transferReply{Result: false})
			return
		}
		s.logger.Error("Transfer failed", "request_id", requestIDFrom(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "transfer unavailable")
		return
	}

	s.logger.Info("Transfer applied",
		"receipt_id", receipt.ID,
		"sender", receipt.SenderID,
		"recipient", receipt.RecipientID,
		"amount", receipt.Amount.String(),
		"request_id", requestIDFrom(r.Context()),
	)
	writeJSON(w, http.StatusOK, transferReply{Result: true})
}

// GetAccounts handles GET /accounts/{id}.
func (s *Server) GetAccounts(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid format for parameter id: %v", err))
		return
	}

	accounts, err := s.bank.Accounts(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		s.logger.Error("Accounts lookup failed", "user_id", id, "request_id", requestIDFrom(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "accounts unavailable")
		return
	}

	writeJSON(w, http.StatusOK, mapAccountsToWire(accounts))
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) allowLogin(id string) bool {
	if s.loginRate == 0 {
		return true
	}
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()

	l, ok := s.limiters[id]
	if !ok {
		l = rate.NewLimiter(s.loginRate, s.loginBurst)
		s.limiters[id] = l
	}
	return l.Allow()
}

func isRefusal(err error) bool {
	return errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrSameAccount) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrCustomerNotFound) ||
		errors.Is(err, domain.ErrNoPrimaryAccount)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorReply{Error: msg})
}

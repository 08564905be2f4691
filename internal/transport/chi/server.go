package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Norte-Development/lexsearch/internal/domain"
	healthuc "github.com/Norte-Development/lexsearch/internal/usecase/health"
	normativeuc "github.com/Norte-Development/lexsearch/internal/usecase/normative"
	rulinguc "github.com/Norte-Development/lexsearch/internal/usecase/ruling"
	searchuc "github.com/Norte-Development/lexsearch/internal/usecase/search"
)

// Server exposes the retrieval pipeline over HTTP. Each endpoint mirrors
// the agent tool contract: a call always resolves with a well-shaped JSON
// body, and failures are reported inside that body rather than as bare
// transport errors.
type Server struct {
	search     *searchuc.Service
	normatives *normativeuc.Service
	rulings    *rulinguc.Service
	health     *healthuc.Service
	logger     *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(
	search *searchuc.Service,
	normatives *normativeuc.Service,
	rulings *rulinguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:     search,
		normatives: normatives,
		rulings:    rulings,
		health:     health,
		logger:     logger,
	}
}

// Register mounts the API routes on the given router. Middleware is the
// caller's concern.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/search", s.Search)
	r.Get("/v1/normatives/{documentID}", s.GetNormative)
	r.Post("/v1/rulings/content", s.GetRulingContent)

	r.Get("/healthz", s.Healthz)
	r.Get("/readyz", s.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Search handles POST /v1/search. The response is always a searchResponse:
// on failure the buckets come back empty with an explanatory message, so
// callers never need a separate error path.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeSearchError(w, "Cuerpo de la solicitud inválido: "+err.Error())
		return
	}

	q, err := queryFromRequest(req)
	if err != nil {
		s.writeSearchError(w, safeMessage(err))
		return
	}

	resp, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err), zap.String("query", q.Text()))
		s.writeSearchError(w, "Error al realizar la búsqueda. Intente nuevamente.")
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromDomain(resp))
}

// GetNormative handles GET /v1/normatives/{documentID}.
func (s *Server) GetNormative(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	jurisdiction := r.URL.Query().Get("jurisdiction")

	doc, err := s.normatives.Fetch(r.Context(), documentID, jurisdiction)
	if err != nil {
		s.logger.Warn("normative fetch failed",
			zap.Error(err), zap.String("document_id", documentID))
		writeJSON(w, statusFor(err), normativeResponse{
			Success: false,
			Message: "Error al obtener el documento normativo",
			Error:   safeMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, normativeResponse{
		Success:  true,
		Document: documentToDTO(doc),
		Message:  "Documento normativo " + documentID + " obtenido exitosamente",
	})
}

// GetRulingContent handles POST /v1/rulings/content.
func (s *Server) GetRulingContent(w http.ResponseWriter, r *http.Request) {
	var req rulingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, rulingResponse{
			Success: false,
			URL:     req.URL,
			Message: "Error al obtener el contenido de la sentencia",
			Error:   "invalid request body: " + err.Error(),
		})
		return
	}

	content, err := s.rulings.Fetch(r.Context(), req.URL)
	if err != nil {
		s.logger.Warn("ruling fetch failed", zap.Error(err), zap.String("url", req.URL))
		writeJSON(w, statusFor(err), rulingResponse{
			Success: false,
			URL:     req.URL,
			Message: "Error al obtener el contenido de la sentencia",
			Error:   safeMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, rulingResponse{
		Success: true,
		Content: content,
		URL:     req.URL,
		Message: "Contenido de la sentencia obtenido exitosamente",
	})
}

// Healthz handles GET /healthz: liveness plus dependency checks.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Readyz handles GET /readyz. Readiness is the same dependency check; the
// split endpoint lets orchestrators probe them independently.
func (s *Server) Readyz(w http.ResponseWriter, r *http.Request) {
	s.Healthz(w, r)
}

func (s *Server) writeSearchError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, searchResponse{
		Sentencias: []resultItem{},
		Normativas: []resultItem{},
		Message:    message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain sentinels to HTTP statuses for the fetch endpoints.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamService):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrContentParse):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// safeMessage exposes sentinel error text to clients without leaking
// wrapped internals.
func safeMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	for _, sentinel := range []error{
		domain.ErrDocumentNotFound,
		domain.ErrUpstreamService,
		domain.ErrContentParse,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal error"
}

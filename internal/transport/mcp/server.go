package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
	"github.com/Norte-Development/lexsearch/internal/domain/response"
	normativeuc "github.com/Norte-Development/lexsearch/internal/usecase/normative"
	rulinguc "github.com/Norte-Development/lexsearch/internal/usecase/ruling"
	searchuc "github.com/Norte-Development/lexsearch/internal/usecase/search"
	"github.com/Norte-Development/lexsearch/internal/version"
)

// Server exposes the retrieval pipeline as MCP tools for agent runtimes.
// Every tool always resolves: failures come back as structured results
// with success=false, never as protocol errors, so a model can read and
// relay them.
type Server struct {
	search     *searchuc.Service
	normatives *normativeuc.Service
	rulings    *rulinguc.Service
	logger     *zap.Logger
}

// New returns an MCP server with the three legal research tools registered.
func New(
	search *searchuc.Service,
	normatives *normativeuc.Service,
	rulings *rulinguc.Service,
	logger *zap.Logger,
) *server.MCPServer {
	srv := &Server{
		search:     search,
		normatives: normatives,
		rulings:    rulings,
		logger:     logger,
	}

	s := server.NewMCPServer(
		"lexsearch",
		version.Version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(newDocumentSearchTool(), srv.handleDocumentSearch)
	s.AddTool(newGetFullNormativeTool(), srv.handleGetFullNormative)
	s.AddTool(newGetSentenciaContentTool(), srv.handleGetSentenciaContent)

	return s
}

// ServeStdio runs the server over stdio until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func newDocumentSearchTool() mcp.Tool {
	return mcp.NewTool(
		"document_search",
		mcp.WithDescription("Realiza una búsqueda semántica híbrida en todas las fuentes de datos disponibles (normativas legales, sentencias y documentos personales). Por defecto busca en todas las fuentes, pero permite filtrar por tipo de documento si el contexto o el usuario lo requiere específicamente. Utiliza búsqueda híbrida y reranking automático de los mejores resultados."),
		mcp.WithString("query", mcp.Description("The search query to find relevant legal documents"), mcp.Required()),
		mcp.WithObject("filters",
			mcp.Description("Filtros opcionales de búsqueda"),
			mcp.Properties(map[string]any{
				"categories": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Filter by normativa categories",
				},
				"startDate": map[string]any{
					"type":        "string",
					"description": "Start date filter in YYYY-MM-DD format",
				},
				"endDate": map[string]any{
					"type":        "string",
					"description": "End date filter in YYYY-MM-DD format",
				},
				"jurisdiction": map[string]any{
					"type":        "string",
					"description": "Filter by jurisdiction",
				},
				"provincia": map[string]any{
					"type":        "string",
					"description": "Filtra por provincia. Esto es para normativas",
				},
				"documentTypes": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Tipos de documentos a incluir. Por defecto incluye todos.",
				},
				"maxResults": map[string]any{
					"type":        "number",
					"description": "Maximum number of results to return",
				},
			}),
		),
	)
}

func newGetFullNormativeTool() mcp.Tool {
	return mcp.NewTool(
		"get_full_normative",
		mcp.WithDescription("Obtiene el texto completo de una normativa legal específica usando su ID de documento."),
		mcp.WithString("documentId", mcp.Description("El ID del documento normativo"), mcp.Required()),
		mcp.WithString("jurisdiction", mcp.Description("La jurisdicción del documento (opcional)")),
	)
}

func newGetSentenciaContentTool() mcp.Tool {
	return mcp.NewTool(
		"get_sentencia_content",
		mcp.WithDescription("Obtiene el contenido completo de una sentencia judicial desde su URL de PDF."),
		mcp.WithString("url", mcp.Description("La URL del PDF de la sentencia"), mcp.Required()),
	)
}

type searchArgs struct {
	Query   string      `json:"query"`
	Filters *filterArgs `json:"filters"`
}

type filterArgs struct {
	Categories    []string `json:"categories"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Jurisdiction  string   `json:"jurisdiction"`
	Provincia     string   `json:"provincia"`
	DocumentTypes []string `json:"documentTypes"`
	MaxResults    int      `json:"maxResults"`
}

type searchResult struct {
	Sentencias []resultItem `json:"sentencias"`
	Normativas []resultItem `json:"normativas"`
	Message    string       `json:"message,omitempty"`
	Filters    *filterArgs  `json:"filters,omitempty"`
}

type resultItem struct {
	Type           string   `json:"type"`
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title,omitempty"`
	Text           string   `json:"text"`
	Category       string   `json:"category,omitempty"`
	Number         string   `json:"number,omitempty"`
	Date           string   `json:"date,omitempty"`
	Jurisdiction   string   `json:"jurisdiction,omitempty"`
	URL            string   `json:"url,omitempty"`
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`
	IsInfoMessage  bool     `json:"isInfoMessage,omitempty"`
}

func (srv *Server) handleDocumentSearch(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	var args searchArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultStructuredOnly(
			errorShapedSearch("Argumentos inválidos: " + err.Error())), nil
	}

	q, err := buildQuery(args)
	if err != nil {
		return mcp.NewToolResultStructuredOnly(errorShapedSearch(err.Error())), nil
	}

	resp, err := srv.search.Search(ctx, q)
	if err != nil {
		srv.logger.Error("document_search failed",
			zap.Error(err), zap.String("query", q.Text()))
		return mcp.NewToolResultStructuredOnly(
			errorShapedSearch("Error al realizar la búsqueda. Intente nuevamente.")), nil
	}

	return mcp.NewToolResultStructuredOnly(searchResultFromDomain(resp)), nil
}

func (srv *Server) handleGetFullNormative(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	documentID, err := req.RequireString("documentId")
	if err != nil {
		return mcp.NewToolResultStructuredOnly(map[string]any{
			"success": false,
			"message": "Error al obtener el documento normativo",
			"error":   err.Error(),
		}), nil
	}
	jurisdiction := req.GetString("jurisdiction", "")

	doc, err := srv.normatives.Fetch(ctx, documentID, jurisdiction)
	if err != nil {
		srv.logger.Warn("get_full_normative failed",
			zap.Error(err), zap.String("document_id", documentID))
		return mcp.NewToolResultStructuredOnly(map[string]any{
			"success": false,
			"message": "Error al obtener el documento normativo",
			"error":   err.Error(),
		}), nil
	}

	return mcp.NewToolResultStructuredOnly(map[string]any{
		"success": true,
		"document": map[string]any{
			"content":    doc.Content,
			"title":      doc.Title,
			"category":   doc.Category,
			"number":     doc.Number,
			"isMarkdown": doc.Format == domain.FormatStructuredText,
			"url":        doc.SourceURL,
		},
		"message": fmt.Sprintf("Documento normativo %s obtenido exitosamente", documentID),
	}), nil
}

func (srv *Server) handleGetSentenciaContent(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultStructuredOnly(map[string]any{
			"success": false,
			"message": "Error al obtener el contenido de la sentencia",
			"error":   err.Error(),
		}), nil
	}

	content, err := srv.rulings.Fetch(ctx, url)
	if err != nil {
		srv.logger.Warn("get_sentencia_content failed",
			zap.Error(err), zap.String("url", url))
		return mcp.NewToolResultStructuredOnly(map[string]any{
			"success": false,
			"message": "Error al obtener el contenido de la sentencia",
			"error":   err.Error(),
			"url":     url,
		}), nil
	}

	return mcp.NewToolResultStructuredOnly(map[string]any{
		"success": true,
		"content": content,
		"url":     url,
		"message": "Contenido de la sentencia obtenido exitosamente",
	}), nil
}

func buildQuery(args searchArgs) (query.Query, error) {
	var f query.Filters
	if args.Filters != nil {
		for _, c := range args.Filters.Categories {
			f.Categories = append(f.Categories, query.Category(c))
		}
		for _, t := range args.Filters.DocumentTypes {
			f.DocumentTypes = append(f.DocumentTypes, query.DocumentType(t))
		}
		f.Jurisdiction = args.Filters.Jurisdiction
		f.Provincia = args.Filters.Provincia
		f.MaxResults = args.Filters.MaxResults

		if args.Filters.StartDate != "" {
			t, err := time.Parse("2006-01-02", args.Filters.StartDate)
			if err != nil {
				return query.Query{}, fmt.Errorf("startDate: expected YYYY-MM-DD, got %q", args.Filters.StartDate)
			}
			f.StartDate = &t
		}
		if args.Filters.EndDate != "" {
			t, err := time.Parse("2006-01-02", args.Filters.EndDate)
			if err != nil {
				return query.Query{}, fmt.Errorf("endDate: expected YYYY-MM-DD, got %q", args.Filters.EndDate)
			}
			f.EndDate = &t
		}
	}
	return query.New(args.Query, f)
}

func errorShapedSearch(message string) searchResult {
	return searchResult{
		Sentencias: []resultItem{},
		Normativas: []resultItem{},
		Message:    message,
	}
}

func searchResultFromDomain(resp response.Response) searchResult {
	return searchResult{
		Sentencias: entriesToItems(resp.Sentencias),
		Normativas: entriesToItems(resp.Normativas),
		Message:    resp.Message,
		Filters:    filtersToArgs(resp.Filters),
	}
}

func entriesToItems(entries []response.Entry) []resultItem {
	items := make([]resultItem, len(entries))
	for i, e := range entries {
		item := resultItem{
			Type:           string(e.Kind),
			ID:             e.ID,
			Title:          e.Title,
			Text:           e.Text,
			Category:       e.Category,
			Number:         e.Number,
			Jurisdiction:   e.Jurisdiction,
			URL:            e.URL,
			RelevanceScore: e.RelevanceScore,
			IsInfoMessage:  e.IsInfoMessage,
		}
		if !e.Date.IsZero() {
			item.Date = e.Date.UTC().Format(time.RFC3339)
		}
		items[i] = item
	}
	return items
}

func filtersToArgs(f query.Filters) *filterArgs {
	out := &filterArgs{
		Jurisdiction: f.Jurisdiction,
		Provincia:    f.Provincia,
		MaxResults:   f.MaxResults,
	}
	for _, c := range f.Categories {
		out.Categories = append(out.Categories, string(c))
	}
	for _, t := range f.DocumentTypes {
		out.DocumentTypes = append(out.DocumentTypes, string(t))
	}
	if f.StartDate != nil {
		out.StartDate = f.StartDate.Format("2006-01-02")
	}
	if f.EndDate != nil {
		out.EndDate = f.EndDate.Format("2006-01-02")
	}
	return out
}

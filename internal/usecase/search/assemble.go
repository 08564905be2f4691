package search

import (
	"fmt"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
	"github.com/Norte-Development/lexsearch/internal/domain/response"
)

// restrictionNotice is appended to the statute bucket when a provincial
// statute search was downgraded to national scope.
const restrictionNotice = "Su plan actual no incluye búsqueda por provincia para normativas. " +
	"Mostrando resultados nacionales."

// assemble builds the final response from the two ranked buckets. The
// summary is only produced for reranked result sets; a degraded
// (rerank-skipped) response carries its buckets without one.
func assemble(
	queryText string,
	sentencias, normativas []candidate.Candidate,
	filters query.Filters,
	reranked bool,
	restricted bool,
) response.Response {
	resp := response.Response{
		Sentencias: make([]response.Entry, 0, len(sentencias)),
		Normativas: make([]response.Entry, 0, len(normativas)+1),
		Filters:    filters,
	}
	for _, c := range sentencias {
		resp.Sentencias = append(resp.Sentencias, response.FromCandidate(c))
	}
	for _, c := range normativas {
		resp.Normativas = append(resp.Normativas, response.FromCandidate(c))
	}

	if reranked {
		resp.Message = buildMessage(queryText, len(sentencias), len(normativas))
	}

	if restricted {
		id := fmt.Sprintf("info-%d", time.Now().UnixMilli())
		resp.Normativas = append(resp.Normativas, response.NewInfoNotice(id, restrictionNotice))
	}

	return resp
}

// buildMessage summarizes the result set and steers the consumer toward
// using rulings as precedent and statutes as regulatory evidence.
func buildMessage(queryText string, sentencias, normativas int) string {
	msg := fmt.Sprintf("Se encontraron %d resultados relevantes para %q. ", sentencias+normativas, queryText)
	if sentencias > 0 {
		msg += fmt.Sprintf(
			"Incluye %d sentencias judiciales (prioriza estas si el usuario busca precedentes legales). ",
			sentencias)
	}
	if normativas > 0 {
		msg += fmt.Sprintf(
			"Incluye %d normativas (útiles para análisis normativo o regulatorio). ",
			normativas)
	}
	msg += "Por favor, utiliza estos resultados para responder de forma precisa y contextualizada. " +
		"Revisa siempre el campo number para saber el número de la normativa. " +
		"Recuerda usar jurisdiccion == provincia para generar las URL de citación."
	return msg
}

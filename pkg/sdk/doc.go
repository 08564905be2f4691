// Package lexsearch provides an embedded Go client for the lexsearch
// legal research engine: hybrid retrieval over case law and statutes with
// cross-source reranking, plus full-document fetchers.
//
// The client wires the whole pipeline in-process against a Redis-compatible
// store with search modules; only the embedding, reranking, and statute
// search providers are remote.
//
//	client, _ := lexsearch.New(ctx,
//	    lexsearch.WithRedis("localhost:6379", ""),
//	    lexsearch.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	    lexsearch.WithCohere(os.Getenv("COHERE_API_KEY")),
//	    lexsearch.WithStatuteAPI("https://normas.example.com", apiKey),
//	)
//	defer client.Close()
//
//	res, _ := client.DocumentSearch(ctx, "requisitos divorcio", nil)
//	doc, _ := client.GetFullNormative(ctx, "123456", "chaco")
//	text, _ := client.GetSentenciaContent(ctx, pdfURL)
package lexsearch

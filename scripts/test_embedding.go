//go:build ignore

package main

import (
	"fmt"
	"log"
	"math"

	"parts-assist-be/internal/config"
	"parts-assist-be/pkg/embedding"
)

// Quick manual check that the configured Ollama embedding endpoint is up and
// returns unit-length vectors. Run with: go run scripts/test_embedding.go
func main() {
	cfg := config.Load()
	fmt.Printf("Loaded Config > Embedding Provider: %s\n", cfg.Ai.EmbeddingProvider)
	fmt.Printf("Loaded Config > Ollama URL: %s\n", cfg.Ai.OllamaBaseURL)
	fmt.Printf("Loaded Config > Ollama Model: %s\n", cfg.Ai.OllamaEmbeddingModel)

	provider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)

	text := "Is part PS11752778 compatible with my WDT780SAEM1 model?"
	fmt.Printf("\nGenerating embedding for: %q\n", text)

	resp, err := provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		log.Fatalf("Error generating embedding: %v", err)
	}

	dims := len(resp.Embedding.Values)
	fmt.Printf("Success! Generated Embedding Dimensions: %d\n", dims)
	if dims > 5 {
		fmt.Printf("First 5 values: %v...\n", resp.Embedding.Values[:5])
	}

	var sumSquares float64
	for _, v := range resp.Embedding.Values {
		sumSquares += float64(v) * float64(v)
	}
	fmt.Printf("Vector norm (should be ~1.0): %.6f\n", math.Sqrt(sumSquares))
}

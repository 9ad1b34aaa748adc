package constant

const (
	// GROUNDED ANSWERING - Internal Logic, Natural Output
	AssistantSystemPromptV1 = `### SYSTEM INSTRUCTIONS
Role: Appliance Parts Support Assistant
Task: Answer the customer's question using ONLY the provided catalog documents.

### CRITICAL RULES (MUST FOLLOW)
1. GROUNDING:
   - Every fact must come from the documents below.
   - If the documents do not contain the answer, say "I don't have information about that in our catalog."
   - Do not invent part numbers, prices, or compatibility claims.

2. COMPATIBILITY:
   - Only confirm a part fits a model if the model appears in that part's Compatible Models list.
   - If the model is not listed, say compatibility cannot be confirmed.

3. ORDERS:
   - For order documents, report status, carrier, and items exactly as written.

### RESPONSE STYLE
- Direct, concise, and helpful.
- 2-4 sentences unless the customer asks for step-by-step instructions.
- No meta-talk ("Here is the answer...").

=== CATALOG DOCUMENTS ===
%s

### CUSTOMER QUESTION
%s`

	// Document renderings fed to the LLM, one per retrieved row.
	ProductDocTemplate = `Content: %s
Part Number: %s
Name: %s
Manufacturer: %s
Manufacturer Part Number: %s
Category: %s
Price: %.2f
Installation Guide: %s
Troubleshooting: %s
Compatible Models: %s`

	TransactionDocTemplate = `Content: %s
Order ID: %s
Customer ID: %s
Created Date: %s
Status: %s
Carrier: %s
Items: %s
Address City: %s`

	// Deterministic user-facing texts for the order flow.
	OrderIdClarificationAnswer = "To help with your order, please provide your Order ID (e.g., PSO1234)."
	OrderNotFoundAnswer        = "Order not found."
	NoAnswerFallback           = "No answer found for the question."
	InternalErrorPrefix        = "Internal server error: "

	// Embedding task types (Gemini vocabulary, ignored by Ollama).
	EmbeddingTaskDocument = "RETRIEVAL_DOCUMENT"
	EmbeddingTaskQuery    = "RETRIEVAL_QUERY"
)

package service

import (
	"context"
	"fmt"
	"strings"

	"parts-assist-be/internal/constant"
	"parts-assist-be/internal/dto"
	"parts-assist-be/internal/entity"
	"parts-assist-be/internal/pkg/logger"
	"parts-assist-be/internal/repository/contract"
	"parts-assist-be/internal/repository/unitofwork"
	"parts-assist-be/pkg/embedding"
	"parts-assist-be/pkg/events"
	"parts-assist-be/pkg/llm"
	"parts-assist-be/pkg/normalize"
	"parts-assist-be/pkg/policy"
	"parts-assist-be/pkg/retrieval"
	"parts-assist-be/pkg/route"
	"parts-assist-be/pkg/store"

	"github.com/google/uuid"
)

// TurnFaultKind names the collaborator a turn failed on.
type TurnFaultKind string

const (
	FaultSessionStore TurnFaultKind = "session_store"
	FaultEmbedding    TurnFaultKind = "embedding"
	FaultRetrieval    TurnFaultKind = "retrieval"
	FaultOrderStore   TurnFaultKind = "order_store"
	FaultLLM          TurnFaultKind = "llm"
)

// TurnFault is the typed failure a turn can end in. The transport boundary
// decides how to render it; the service never collapses faults into answer
// text itself. Context written before the fault survives it.
type TurnFault struct {
	Kind      TurnFaultKind
	SessionId string
	Err       error
}

func (f *TurnFault) Error() string {
	return f.Err.Error()
}

func (f *TurnFault) Unwrap() error {
	return f.Err
}

// IOrderEventPublisher pushes order lifecycle events onto the bus.
// Satisfied by pkg/nats.Publisher; nil disables event emission.
type IOrderEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatService interface {
	// HandleTurn runs one conversational exchange. A non-nil error is
	// always a *TurnFault carrying the session id.
	HandleTurn(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	SessionContext(ctx context.Context, sessionId string) (*dto.SessionContextResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	sessions          contract.SessionContextRepository
	resolver          IContextResolverService
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	eventPublisher    IOrderEventPublisher
	logger            logger.ILogger
	topK              int
	historyDepth      int
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionContextRepository,
	resolver IContextResolverService,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	eventPublisher IOrderEventPublisher,
	log logger.ILogger,
	topK int,
	historyDepth int,
) IChatService {
	if topK <= 0 {
		topK = 10
	}
	return &chatService{
		uowFactory:        uowFactory,
		sessions:          sessions,
		resolver:          resolver,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		eventPublisher:    eventPublisher,
		logger:            log,
		topK:              topK,
		historyDepth:      historyDepth,
	}
}

func (s *chatService) HandleTurn(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	part, model, order, sc, err := s.resolver.Resolve(ctx, sessionId, req.Message)
	if err != nil {
		return nil, &TurnFault{Kind: FaultSessionStore, SessionId: sessionId, Err: err}
	}

	intent := route.Route(req.Message, sc)
	s.logger.Debug("chat", "routed turn", map[string]interface{}{
		"session_id": sessionId,
		"intent":     string(intent),
		"part":       part,
		"model":      model,
		"order":      order,
	})

	var answer string
	switch intent {
	case route.IntentTransactionsPolicy:
		answer, err = s.policyAnswer(ctx, req.Message, sc)
	case route.IntentTransactionsOrder:
		answer, err = s.orderAnswer(ctx, sessionId, req.Message, part, order, sc)
	default:
		answer, err = s.productAnswer(ctx, req.Message, part, model, sc)
	}
	if err != nil {
		if fault, ok := err.(*TurnFault); ok {
			fault.SessionId = sessionId
			return nil, fault
		}
		return nil, &TurnFault{Kind: FaultRetrieval, SessionId: sessionId, Err: err}
	}

	s.recordTurn(ctx, sc, req.Message, answer)

	return &dto.ChatResponse{SessionId: sessionId, Answer: answer}, nil
}

func (s *chatService) SessionContext(ctx context.Context, sessionId string) (*dto.SessionContextResponse, error) {
	sc, found := s.sessions.Get(ctx, sessionId)
	if !found {
		return nil, fmt.Errorf("session not found")
	}

	res := &dto.SessionContextResponse{
		SessionId:   sc.SessionId,
		ActivePart:  sc.ActivePart,
		ActiveModel: sc.ActiveModel,
		ActiveOrder: sc.ActiveOrder,
		LastQuery:   sc.LastQuery,
		History:     make([]dto.ChatTurnDTO, 0, len(sc.History)),
	}
	for _, t := range sc.History {
		res.History = append(res.History, dto.ChatTurnDTO{Role: t.Role, Content: t.Content})
	}
	return res, nil
}

// policyAnswer serves canned policy text when a table phrase appears in the
// message; otherwise it falls through to a broad transactions search.
func (s *chatService) policyAnswer(ctx context.Context, message string, sc *store.SessionContext) (string, error) {
	if answer, ok := policy.Lookup(message); ok {
		return answer, nil
	}
	return s.semanticAnswer(ctx, retrieval.Request{
		Namespace: retrieval.NamespaceTransactions,
		Query:     message,
		TopK:      s.topK,
	}, sc)
}

// orderAnswer handles the deterministic order flow: clarification when no
// order id can be resolved, then keyword-dispatched status/cancel/return
// actions, with an LLM free-form fallback for everything else.
func (s *chatService) orderAnswer(ctx context.Context, sessionId, message, part, order string, sc *store.SessionContext) (string, error) {
	if order == "" {
		order = sc.ActiveOrder
	}
	if order == "" {
		return constant.OrderIdClarificationAnswer, nil
	}

	orderNorm := normalize.Identifier(order)
	lowered := strings.ToLower(message)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.OrderRepository().FindByNormalizedId(ctx, orderNorm)
	if err != nil {
		return "", &TurnFault{Kind: FaultOrderStore, Err: err}
	}

	switch {
	case containsAny(lowered, "status", "track", "tracking"):
		if record == nil {
			return constant.OrderNotFoundAnswer, nil
		}
		return s.statusSummary(record), nil

	case strings.Contains(lowered, "cancel"):
		if record == nil {
			return constant.OrderNotFoundAnswer, nil
		}
		if record.Status != entity.OrderStatusPlaced {
			return fmt.Sprintf("Order %s cannot be cancelled because status is '%s'.", record.OrderId, record.Status), nil
		}
		s.publishEvent(ctx, events.NewOrderCancelRequested(record.OrderId, sessionId))
		return fmt.Sprintf("Order %s cancellation request submitted.", record.OrderId), nil

	case containsAny(lowered, "return", "refund", "exchange"):
		if record == nil {
			return constant.OrderNotFoundAnswer, nil
		}
		s.publishEvent(ctx, events.NewOrderReturnRequested(record.OrderId, sessionId))
		answer := fmt.Sprintf("Return initiated for order %s", record.OrderId)
		if part != "" {
			answer += fmt.Sprintf(", item %s", part)
		}
		return answer + ".", nil

	default:
		if record == nil {
			return constant.OrderNotFoundAnswer, nil
		}
		return s.freeFormOrderAnswer(ctx, record, message, sc)
	}
}

// productAnswer builds the per-turn metadata filter and runs a products
// namespace search. Part number wins over model; no entity means broad
// search.
func (s *chatService) productAnswer(ctx context.Context, message, part, model string, sc *store.SessionContext) (string, error) {
	var filter retrieval.Filter
	if part != "" {
		filter = retrieval.Filter{}.Equals(retrieval.FieldPartNumberNorm, normalize.Identifier(part))
	} else if model != "" {
		filter = retrieval.Filter{}.OneOf(retrieval.FieldCompatibleModelsNorm, normalize.Identifier(model))
	}

	return s.semanticAnswer(ctx, retrieval.Request{
		Namespace: retrieval.NamespaceProducts,
		Query:     message,
		Filter:    filter,
		TopK:      s.topK,
	}, sc)
}

// semanticAnswer embeds the query, runs the namespace search and asks the
// LLM for a grounded answer over the retrieved documents.
func (s *chatService) semanticAnswer(ctx context.Context, req retrieval.Request, sc *store.SessionContext) (string, error) {
	emb, err := s.embeddingProvider.Generate(req.Query, constant.EmbeddingTaskQuery)
	if err != nil {
		return "", &TurnFault{Kind: FaultEmbedding, Err: err}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var docs []string
	switch req.Namespace {
	case retrieval.NamespaceTransactions:
		scored, err := uow.OrderRepository().SearchSimilar(ctx, emb.Embedding.Values, req.Filter, req.TopK)
		if err != nil {
			return "", &TurnFault{Kind: FaultRetrieval, Err: err}
		}
		for _, m := range scored {
			docs = append(docs, renderTransactionDoc(m.Order))
		}
	default:
		scored, err := uow.ProductRepository().SearchSimilar(ctx, emb.Embedding.Values, req.Filter, req.TopK)
		if err != nil {
			return "", &TurnFault{Kind: FaultRetrieval, Err: err}
		}
		for _, m := range scored {
			docs = append(docs, renderProductDoc(m.Product))
		}
	}

	prompt := fmt.Sprintf(constant.AssistantSystemPromptV1, strings.Join(docs, "\n\n---\n\n"), req.Query)
	answer, err := s.llmProvider.Chat(ctx, s.historyMessages(sc, prompt), llm.WithTemperature(0.0))
	if err != nil {
		return "", &TurnFault{Kind: FaultLLM, Err: err}
	}
	if answer == "" {
		return constant.NoAnswerFallback, nil
	}
	return answer, nil
}

// freeFormOrderAnswer delegates an order question with no action keyword to
// the LLM, grounded on the single matched order record.
func (s *chatService) freeFormOrderAnswer(ctx context.Context, record *entity.Order, message string, sc *store.SessionContext) (string, error) {
	prompt := fmt.Sprintf(constant.AssistantSystemPromptV1, renderTransactionDoc(record), message)
	answer, err := s.llmProvider.Chat(ctx, s.historyMessages(sc, prompt), llm.WithTemperature(0.0))
	if err != nil {
		return "", &TurnFault{Kind: FaultLLM, Err: err}
	}
	if answer == "" {
		return constant.NoAnswerFallback, nil
	}
	return answer, nil
}

func (s *chatService) historyMessages(sc *store.SessionContext, finalPrompt string) []llm.Message {
	msgs := make([]llm.Message, 0, len(sc.History)+1)
	for _, t := range sc.History {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return append(msgs, llm.Message{Role: store.RoleUser, Content: finalPrompt})
}

// recordTurn appends the exchange to the rolling history. Best-effort: a
// store failure here loses history, not the answer.
func (s *chatService) recordTurn(ctx context.Context, sc *store.SessionContext, question, answer string) {
	sc.AppendTurn(store.RoleUser, question, s.historyDepth)
	sc.AppendTurn(store.RoleAssistant, answer, s.historyDepth)
	if err := s.sessions.Upsert(ctx, sc); err != nil {
		s.logger.Warn("chat", "failed to persist chat history", map[string]interface{}{
			"session_id": sc.SessionId,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("chat", "failed to publish order event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

// statusSummary renders the deterministic status/tracking answer.
func (s *chatService) statusSummary(record *entity.Order) string {
	carrier := record.Carrier
	if carrier == "" {
		carrier = "the carrier"
	}
	city := record.AddressCity
	if city == "" {
		city = "your address"
	}
	return fmt.Sprintf(
		"Your order %s is currently %s with %s. It's heading to %s. Items in this order: %s.",
		record.OrderId, statusPhrase(record.Status), carrier, city, formatItems(record.ItemList()),
	)
}

// statusPhrase maps stored status codes to customer wording. Unknown codes
// fall back to the code with underscores spaced out.
func statusPhrase(raw string) string {
	if raw == "" {
		return "being processed"
	}
	phrases := map[string]string{
		entity.OrderStatusPlaced:          "placed and awaiting shipment",
		entity.OrderStatusProcessing:      "being prepared for shipment",
		entity.OrderStatusShipped:         "shipped",
		entity.OrderStatusOutForDelivery:  "out for delivery",
		entity.OrderStatusDelivered:       "delivered",
		entity.OrderStatusReturnInitiated: "in return processing",
		entity.OrderStatusCancelled:       "cancelled",
	}
	key := strings.TrimSpace(strings.ToLower(raw))
	if phrase, ok := phrases[key]; ok {
		return phrase
	}
	return strings.ReplaceAll(key, "_", " ")
}

// formatItems renders line items as "1 x PS123, 2 x PS456, and 1 x PS789".
func formatItems(items []entity.OrderItem) string {
	if len(items) == 0 {
		return "no items listed"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		partNumber := it.PartNumber
		if partNumber == "" {
			partNumber = "unknown"
		}
		qty := it.Qty
		if qty == 0 {
			qty = 1
		}
		parts[i] = fmt.Sprintf("%d x %s", qty, partNumber)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + fmt.Sprintf(", and %s", parts[len(parts)-1])
}

func renderProductDoc(p *entity.Product) string {
	return fmt.Sprintf(constant.ProductDocTemplate,
		p.Document,
		p.PartNumber,
		p.Name,
		p.Manufacturer,
		p.ManufacturerPartNumber,
		p.Category,
		p.Price,
		p.InstallationGuide,
		p.Troubleshooting,
		strings.Join(p.CompatibleModelList(), ", "),
	)
}

func renderTransactionDoc(o *entity.Order) string {
	items := o.ItemList()
	rendered := make([]string, len(items))
	for i, it := range items {
		rendered[i] = fmt.Sprintf("%dx %s @ $%.2f", it.Qty, it.PartNumber, it.Price)
	}
	return fmt.Sprintf(constant.TransactionDocTemplate,
		o.Document,
		o.OrderId,
		o.CustomerId,
		o.CreatedDate,
		o.Status,
		o.Carrier,
		strings.Join(rendered, "; "),
		o.AddressCity,
	)
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

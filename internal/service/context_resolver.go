package service

import (
	"context"
	"strings"

	"parts-assist-be/internal/repository/contract"
	"parts-assist-be/pkg/extract"
	"parts-assist-be/pkg/normalize"
	"parts-assist-be/pkg/store"
)

// IContextResolverService resolves a turn's entities against session state.
//
// Resolve must be called exactly once per turn and its outputs reused: a
// second call re-applies the substitution-then-overwrite sequence and can
// lose fallback values.
type IContextResolverService interface {
	Resolve(ctx context.Context, sessionId string, text string) (part string, model string, order string, sc *store.SessionContext, err error)
}

type contextResolverService struct {
	sessions contract.SessionContextRepository
}

func NewContextResolverService(sessions contract.SessionContextRepository) IContextResolverService {
	return &contextResolverService{sessions: sessions}
}

// Resolve runs the extractors, substitutes "this part"/"this order"
// references from session context, then writes every entity the turn carries
// back into the context. This is the only place the active_* fields mutate.
func (r *contextResolverService) Resolve(ctx context.Context, sessionId string, text string) (string, string, string, *store.SessionContext, error) {
	ents := extract.All(text)
	part, model, order := ents.PartNumber, ents.ModelNumber, ents.OrderId

	sc, found := r.sessions.Get(ctx, sessionId)
	if !found {
		sc = store.NewSessionContext(sessionId)
	}

	lowered := strings.ToLower(text)
	if part == "" && (strings.Contains(lowered, "this part") || strings.Contains(lowered, "does this part")) {
		part = sc.ActivePart
	}
	if order == "" && strings.Contains(lowered, "this order") {
		order = sc.ActiveOrder
	}

	if part != "" {
		sc.ActivePart = normalize.Identifier(part)
	}
	if model != "" {
		sc.ActiveModel = normalize.Identifier(model)
	}
	if order != "" {
		sc.ActiveOrder = normalize.Identifier(order)
	}
	sc.LastQuery = text

	if err := r.sessions.Upsert(ctx, sc); err != nil {
		return "", "", "", nil, err
	}

	return part, model, order, sc, nil
}

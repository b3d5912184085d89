package router

import (
	"strings"

	"tabletalk-service/internal/usecase"
	"tabletalk-service/pkg/logger"
)

type intentRule struct {
	intent   usecase.Intent
	keywords []string
}

// IntentRouter maps a raw utterance to a dialogue intent by keyword match.
// Rules are checked in registration order; the first keyword hit wins.
type IntentRouter struct {
	rules  []intentRule
	logger logger.Logger
}

// NewIntentRouter creates an intent router with the default reservation rules
func NewIntentRouter(logger logger.Logger) *IntentRouter {
	r := &IntentRouter{logger: logger}

	// Order matters: "cancel my reservation" must not hit the lookup rule
	r.Register(usecase.IntentCancel, "cancel", "delete my reservation", "call it off")
	r.Register(usecase.IntentCheck, "available", "availability", "open at", "open on", "are you open")
	r.Register(usecase.IntentLookup, "look up", "lookup", "find my", "my reservation", "existing reservation", "check my")
	r.Register(usecase.IntentDetails, "details", "what do you have")
	r.Register(usecase.IntentCreate, "book", "reserve", "reservation for", "table for", "make a reservation")
	r.Register(usecase.IntentQuestion, "hours", "menu", "parking", "where", "what", "when", "do you")

	return r
}

// Register appends a rule for the intent
func (r *IntentRouter) Register(intent usecase.Intent, keywords ...string) {
	r.rules = append(r.rules, intentRule{intent: intent, keywords: keywords})
}

// Route returns the first intent whose keywords appear in the utterance,
// or IntentUnrecognized when nothing matches
func (r *IntentRouter) Route(utterance string) usecase.Intent {
	lowered := strings.ToLower(utterance)
	for _, rule := range r.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				r.logger.Debug("Routed utterance", "intent", rule.intent, "keyword", kw)
				return rule.intent
			}
		}
	}
	return usecase.IntentUnrecognized
}

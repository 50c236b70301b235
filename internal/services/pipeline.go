// Package services contains the use-case orchestration. The pipeline wires
// validation, recognition, knowledge lookup, execution and caching into one
// Process call; everything it touches is reached through ports.
package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// QueryPipeline processes natural-language queries end-to-end. Stages run
// in a fixed order: admission, input validation, cache lookup, recognition,
// entity validation, resolution, spec validation, execution, formatting,
// cache store.
type QueryPipeline struct {
	Validator  ports.SecurityValidator
	Recognizer ports.IntentRecognizer
	Knowledge  ports.KnowledgeBase
	Engine     ports.ExecutionEngine
	Cache      ports.CacheStore
	Formatter  ports.Formatter
	Logger     ports.Logger

	group singleflight.Group
}

// Process implements domain.Pipeline. The returned error, when non-nil, is
// one of the typed errors in domain; the Response is always renderable.
func (p *QueryPipeline) Process(q domain.Query) (domain.Response, error) {
	if p.Validator == nil || p.Recognizer == nil || p.Knowledge == nil ||
		p.Engine == nil || p.Formatter == nil {
		return domain.Response{}, errors.New("services.QueryPipeline dependencies not satisfied")
	}

	if q.Context == nil {
		q.Context = context.Background()
	}
	identity := q.ProfileID

	if result := p.Validator.Admit(identity); !result.OK {
		resp := p.Formatter.Violation(q, *result.Violation)
		return resp, &domain.RateLimitError{Wait: result.Violation.Wait}
	}

	if result := p.Validator.Validate(identity, q.Text); !result.OK {
		resp := p.Formatter.Violation(q, *result.Violation)
		return resp, &domain.ValidationError{Violation: *result.Violation}
	}

	key := domain.CacheKey(q.Text, identity, q.DryRun)
	if p.Cache != nil {
		if entry, ok, err := p.Cache.Get(key); err == nil && ok {
			resp := entry.Value
			resp.FromCache = true
			p.log("query served from cache", resp.Intent, true)
			return resp, nil
		}
	}

	// Identical concurrent queries collapse into one recognition and
	// execution; every caller gets the shared result.
	value, err, _ := p.group.Do(key, func() (interface{}, error) {
		resp, err := p.handleMiss(q, identity, key)
		return resp, err
	})
	resp, _ := value.(domain.Response)
	return resp, err
}

func (p *QueryPipeline) handleMiss(q domain.Query, identity, key string) (domain.Response, error) {
	intent := p.Recognizer.Recognize(q.Text)

	for name, value := range intent.Entities {
		if result := p.Validator.ValidateEntity(identity, name, value); !result.OK {
			resp := p.Formatter.Violation(q, *result.Violation)
			return resp, &domain.ValidationError{Violation: *result.Violation}
		}
	}

	spec, err := p.Knowledge.Resolve(intent)
	if err != nil {
		p.enrichSuggestions(intent, err)
		resp := p.Formatter.Failure(q, intent, err)
		return resp, err
	}

	if result := p.Validator.ValidateSpec(identity, spec); !result.OK {
		resp := p.Formatter.Violation(q, *result.Violation)
		return resp, &domain.ValidationError{Violation: *result.Violation}
	}

	if spec.Mutating && !spec.Reversible && !q.DryRun && !q.Confirmed {
		confirmErr := &domain.ConfirmationError{Spec: spec}
		resp := p.Formatter.Failure(q, intent, confirmErr)
		return resp, confirmErr
	}

	result, err := p.Engine.Execute(q.Context, spec, q.DryRun)
	if err != nil {
		resp := p.Formatter.Failure(q, intent, err)
		return resp, err
	}

	resp := p.Formatter.Success(q, intent, spec, result)
	resp.Intent = intent
	p.store(key, intent, resp)
	p.log("query processed", intent, false)
	return resp, nil
}

// enrichSuggestions replaces generic not-found suggestions with "did you
// mean" candidates when the intent carried a target we can match against
// the vocabulary.
func (p *QueryPipeline) enrichSuggestions(intent domain.Intent, err error) {
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		return
	}
	target := intent.Entity("package")
	if target == "" {
		target = intent.Entity("topic")
	}
	if target == "" {
		return
	}
	if candidates := p.Knowledge.Suggestions(target); len(candidates) > 0 {
		suggestions := make([]string, 0, len(candidates))
		for _, c := range candidates {
			suggestions = append(suggestions, "did you mean "+c+"?")
		}
		notFound.Suggestions = suggestions
	}
}

// store caches the response according to the per-kind TTL. Kinds with no
// TTL, rollback above all, are never cached.
func (p *QueryPipeline) store(key string, intent domain.Intent, resp domain.Response) {
	if p.Cache == nil || !resp.Success {
		return
	}
	ttl := domain.CacheTTL(intent.Kind)
	if ttl <= 0 {
		return
	}
	entry := domain.CacheEntry{
		Key:        key,
		Value:      resp,
		Kind:       intent.Kind,
		CreatedAt:  time.Now(),
		TTLSeconds: int(ttl / time.Second),
	}
	if err := p.Cache.Put(entry); err != nil && p.Logger != nil {
		p.Logger.Warn("cache store failed", map[string]interface{}{"error": err.Error()})
	}
}

func (p *QueryPipeline) log(msg string, intent domain.Intent, fromCache bool) {
	if p.Logger == nil {
		return
	}
	p.Logger.Info(msg, map[string]interface{}{
		"kind":       string(intent.Kind),
		"stage":      string(intent.Stage),
		"confidence": intent.Confidence,
		"from_cache": fromCache,
	})
}

var _ domain.Pipeline = (*QueryPipeline)(nil)

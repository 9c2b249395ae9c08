package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hantec-labs/support-engine/internal/cache"
	"github.com/hantec-labs/support-engine/internal/classifier"
	"github.com/hantec-labs/support-engine/internal/completion"
	"github.com/hantec-labs/support-engine/internal/followup"
	"github.com/hantec-labs/support-engine/internal/observability"
	"github.com/hantec-labs/support-engine/internal/retrieval"
	"github.com/hantec-labs/support-engine/internal/sanitize"
	"github.com/hantec-labs/support-engine/internal/storage"
)

// Validation errors surfaced to the HTTP layer before processing starts.
var (
	ErrEmptyQuery   = errors.New("query is empty")
	ErrQueryTooLong = errors.New("query exceeds maximum length")
)

// Options configure a Pipeline.
type Options struct {
	Logger            *observability.Logger
	Searcher          retrieval.Searcher
	Completer         completion.Completer
	Responder         *Responder
	Recorder          storage.Recorder
	Cache             cache.Client
	Thresholds        retrieval.Thresholds
	CompanyName       string
	TopK              int
	MaxQueryLength    int
	CacheTTL          time.Duration
	CompletionTimeout time.Duration
}

// Pipeline processes one chat request end to end. It holds no per-request
// state; concurrent calls are independent.
type Pipeline struct {
	logger            *observability.Logger
	searcher          retrieval.Searcher
	completer         completion.Completer
	responder         *Responder
	recorder          storage.Recorder
	cache             cache.Client
	thresholds        retrieval.Thresholds
	companyName       string
	topK              int
	maxQueryLength    int
	cacheTTL          time.Duration
	completionTimeout time.Duration
	counters          *Counters
}

// New creates a pipeline. Recorder and Cache are optional; absent they
// default to no-ops.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = observability.Nop()
	}
	responder := opts.Responder
	if responder == nil {
		responder = NewResponder("support@hmarkets.com")
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = storage.NopRecorder{}
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}
	maxLen := opts.MaxQueryLength
	if maxLen <= 0 {
		maxLen = 500
	}
	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	completionTimeout := opts.CompletionTimeout
	if completionTimeout <= 0 {
		completionTimeout = 30 * time.Second
	}
	thresholds := opts.Thresholds
	if thresholds == (retrieval.Thresholds{}) {
		thresholds = retrieval.DefaultThresholds()
	}
	companyName := opts.CompanyName
	if companyName == "" {
		companyName = "Hantec Markets"
	}

	return &Pipeline{
		logger:            logger.WithComponent("pipeline"),
		searcher:          opts.Searcher,
		completer:         opts.Completer,
		responder:         responder,
		recorder:          recorder,
		cache:             opts.Cache,
		thresholds:        thresholds,
		companyName:       companyName,
		topK:              topK,
		maxQueryLength:    maxLen,
		cacheTTL:          cacheTTL,
		completionTimeout: completionTimeout,
		counters:          NewCounters(),
	}
}

// Counters exposes the request counters for the stats endpoint.
func (p *Pipeline) Counters() *Counters {
	return p.counters
}

// Process runs one query through the pipeline. Invalid input returns a nil
// envelope with a validation error. Downstream failures return BOTH an
// error-tier envelope (always safe to show the user) and the cause, so the
// HTTP layer can pick a status code without seeing internal detail leak into
// the envelope text.
func (p *Pipeline) Process(ctx context.Context, query string, history []Turn) (*ResponseEnvelope, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if len(query) > p.maxQueryLength {
		return nil, ErrQueryTooLong
	}

	start := time.Now()
	env, cause := p.process(ctx, query, history)
	env.Metadata.DurationMs = time.Since(start).Milliseconds()
	if env.Sources == nil {
		env.Sources = []string{}
	}

	p.counters.observe(env)
	p.record(ctx, query, env)

	return env, cause
}

func (p *Pipeline) process(ctx context.Context, query string, history []Turn) (*ResponseEnvelope, error) {
	logger := p.logger.WithContext(ctx)

	workingQuery := query
	meta := Metadata{}

	// Follow-up resolution only looks at the immediately preceding
	// assistant turn.
	if last := lastAssistantTurn(history); last != "" {
		decision := followup.Resolve(query, last)
		if decision.IsFollowUp {
			meta.IsFollowUp = true
			meta.FollowUpResponse = string(decision.ResponseType)

			if decision.ResponseType == followup.ResponseDeclined {
				meta.Category = string(classifier.Classify(query))
				logger.Info().Str("query", query).Msg("Follow-up declined")
				return &ResponseEnvelope{
					Text:       p.responder.Declined(),
					Confidence: ConfidenceHigh,
					Metadata:   meta,
				}, nil
			}

			if decision.RewrittenQuery != "" {
				workingQuery = decision.RewrittenQuery
				meta.RewrittenQuery = decision.RewrittenQuery
			}
		}
	}

	category := classifier.Classify(workingQuery)
	meta.Category = string(category)

	if !category.NeedsRetrieval() {
		text, confidence := p.responder.Canned(category)
		logger.Info().
			Str("query", query).
			Str("category", string(category)).
			Msg("Canned response")
		return &ResponseEnvelope{Text: text, Confidence: confidence, Metadata: meta}, nil
	}

	if IsEscalation(workingQuery) {
		logger.Warn().Str("query", query).Msg("Escalation trigger matched")
		return &ResponseEnvelope{
			Text:       p.responder.Escalation(),
			Confidence: ConfidenceEscalation,
			Metadata:   meta,
		}, nil
	}

	// Only single-shot knowledge queries are cacheable: history changes
	// the meaning of short replies.
	cacheable := len(history) == 0 && p.cache != nil
	if cacheable {
		if env, ok := p.cacheGet(ctx, workingQuery); ok {
			env.Metadata.Cached = true
			env.Metadata.IsFollowUp = meta.IsFollowUp
			logger.Debug().Str("query", workingQuery).Msg("Response cache hit")
			return env, nil
		}
	}

	env, err := p.answer(ctx, workingQuery, &meta)
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Pipeline failure")
		return &ResponseEnvelope{
			Text:       p.responder.Error(),
			Confidence: ConfidenceError,
			Metadata:   meta,
		}, err
	}

	if cacheable && env.Confidence != ConfidenceLow {
		p.cacheSet(ctx, workingQuery, env)
	}

	return env, nil
}

// answer runs retrieval, scoring, completion and sanitization for a knowledge
// query. Errors from external calls bubble up to be converted by the caller.
func (p *Pipeline) answer(ctx context.Context, query string, meta *Metadata) (*ResponseEnvelope, error) {
	docs, err := p.searcher.Search(ctx, query, p.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval: %w", err)
	}

	meta.RetrievedDocCount = len(docs)
	if len(docs) > 0 {
		meta.TopScore = docs[0].Score
	}

	tier := p.thresholds.Score(meta.TopScore, len(docs))
	if tier == retrieval.TierLow {
		return &ResponseEnvelope{
			Text:       p.responder.Fallback(),
			Confidence: ConfidenceLow,
			Metadata:   *meta,
		}, nil
	}

	completionCtx, cancel := context.WithTimeout(ctx, p.completionTimeout)
	defer cancel()

	raw, err := p.completer.Complete(completionCtx, buildMessages(p.companyName, buildContext(docs), query))
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	return &ResponseEnvelope{
		Text:       sanitize.Sanitize(raw),
		Confidence: Confidence(tier),
		Sources:    formatSources(docs),
		Metadata:   *meta,
	}, nil
}

// record persists the interaction without blocking or failing the request.
func (p *Pipeline) record(ctx context.Context, query string, env *ResponseEnvelope) {
	logger := p.logger.WithContext(ctx)

	go func() {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		err := p.recorder.Record(recordCtx, &storage.Interaction{
			Query:          query,
			RewrittenQuery: env.Metadata.RewrittenQuery,
			Category:       env.Metadata.Category,
			Confidence:     string(env.Confidence),
			ResponseText:   env.Text,
			Sources:        env.Sources,
			TopScore:       env.Metadata.TopScore,
			DocumentCount:  env.Metadata.RetrievedDocCount,
			DurationMs:     env.Metadata.DurationMs,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to record interaction")
		}
	}()
}

func (p *Pipeline) cacheGet(ctx context.Context, query string) (*ResponseEnvelope, bool) {
	data, err := p.cache.Get(ctx, cache.QueryKey(query))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Debug().Err(err).Msg("Cache get error")
		}
		return nil, false
	}

	var env ResponseEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to unmarshal cached response")
		return nil, false
	}
	return &env, true
}

func (p *Pipeline) cacheSet(ctx context.Context, query string, env *ResponseEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, cache.QueryKey(query), data, p.cacheTTL); err != nil {
		p.logger.Debug().Err(err).Msg("Cache set error")
	}
}

func lastAssistantTurn(history []Turn) string {
	if len(history) == 0 {
		return ""
	}
	last := history[len(history)-1]
	if last.Role != RoleAssistant {
		return ""
	}
	return last.Content
}

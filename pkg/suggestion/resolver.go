// Package suggestion turns one issue on one sentence into a rewritten
// sentence. Tiers are tried in order: remote generator, reference retrieval,
// deterministic rewrite. The last tier always answers, so Resolve never
// fails.
package suggestion

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/llm"
	"ai-style-review-be/pkg/metrics"
	"ai-style-review-be/pkg/quota"
	"ai-style-review-be/pkg/retrieval"
	"ai-style-review-be/pkg/rewrite"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/segmenter"
)

const (
	DefaultTimeout = 5 * time.Second

	// Snippets scoring at least this much make a pattern substitution
	// high-confidence.
	highScore = 0.8

	systemPrompt = "You are a technical editor. Rewrite the sentence so that it no longer has the reported " +
		"style issue. Keep its meaning and any product names. Reply with the rewritten sentence only."
)

type Options struct {
	Generator llm.LLMProvider
	Retriever retrieval.Retriever
	Quota     quota.Tracker
	Notifier  Notifier
	Metrics   *metrics.Metrics
	Logger    logger.ILogger

	Timeout time.Duration
	TopK    int
}

// Resolver memoizes suggestions per (sentence text, issue message) for the
// life of the process.
type Resolver struct {
	generator llm.LLMProvider
	retriever retrieval.Retriever
	quota     quota.Tracker
	notifier  Notifier
	metrics   *metrics.Metrics
	logger    logger.ILogger
	tracer    trace.Tracer

	timeout time.Duration
	topK    int

	cache  *cache.Cache
	flight singleflight.Group
}

func NewResolver(opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.TopK <= 0 {
		opts.TopK = retrieval.DefaultTopK
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	return &Resolver{
		generator: opts.Generator,
		retriever: opts.Retriever,
		quota:     opts.Quota,
		notifier:  opts.Notifier,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		tracer:    otel.Tracer("ai-style-review-be/suggestion"),
		timeout:   opts.Timeout,
		topK:      opts.TopK,
		cache:     cache.New(cache.NoExpiration, 0),
	}
}

func cacheKey(sentence segmenter.Sentence, issue rules.Issue) string {
	return sentence.PlainText + "\x00" + issue.Message
}

// Resolve returns the best available suggestion. Concurrent calls for the
// same key share one resolution, which runs detached from any single caller
// and is cached once it completes. A caller whose ctx ends first gets the
// deterministic rewrite; that fallback is not cached.
func (r *Resolver) Resolve(ctx context.Context, sentence segmenter.Sentence, issue rules.Issue) Suggestion {
	key := cacheKey(sentence, issue)
	ref := RefOf(issue)

	if s, ok := r.cached(key); ok {
		r.metrics.CacheHit()
		return withRef(s, ref)
	}
	if ctx.Err() != nil {
		return r.ruleBased(sentence, issue)
	}

	ch := r.flight.DoChan(key, func() (any, error) {
		if s, ok := r.cached(key); ok {
			return s, nil
		}
		// Bounded by one remote call plus retrieval.
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*r.timeout)
		defer cancel()
		s, complete := r.resolveTiers(flightCtx, sentence, issue)
		if complete {
			r.cache.Set(key, s, cache.NoExpiration)
			r.notify(flightCtx, withRef(s, ref))
		}
		return s, nil
	})

	select {
	case res := <-ch:
		return withRef(res.Val.(Suggestion), ref)
	case <-ctx.Done():
		return r.ruleBased(sentence, issue)
	}
}

func withRef(s Suggestion, ref IssueRef) Suggestion {
	s.Issue = ref
	return s
}

func (r *Resolver) cached(key string) (Suggestion, bool) {
	v, ok := r.cache.Get(key)
	if !ok {
		return Suggestion{}, false
	}
	return v.(Suggestion), true
}

// CacheSize is the number of memoized suggestions.
func (r *Resolver) CacheSize() int {
	return r.cache.ItemCount()
}

// resolveTiers reports complete=false when ctx ended before a definitive
// answer; such results must not be cached.
func (r *Resolver) resolveTiers(ctx context.Context, sentence segmenter.Sentence, issue rules.Issue) (Suggestion, bool) {
	ctx, span := r.tracer.Start(ctx, "suggestion.resolve", trace.WithAttributes(
		attribute.String("rule_id", issue.RuleID),
		attribute.Int("sentence_index", sentence.Index),
	))
	defer span.End()

	var s Suggestion
	complete := true
	if out, ok := r.remote(ctx, sentence, issue); ok {
		s = out
	} else if ctx.Err() != nil {
		s, complete = r.ruleBased(sentence, issue), false
	} else if out, ok := r.retrieve(ctx, sentence, issue); ok {
		s = out
	} else {
		s = r.ruleBased(sentence, issue)
		complete = ctx.Err() == nil
	}

	span.SetAttributes(attribute.String("method", string(s.Method)), attribute.Bool("cached", complete))
	r.metrics.Suggestion(string(s.Method))
	return s, complete
}

func (r *Resolver) remote(ctx context.Context, sentence segmenter.Sentence, issue rules.Issue) (Suggestion, bool) {
	if r.generator == nil {
		return Suggestion{}, false
	}
	if r.quota != nil && !r.quota.TryConsume(ctx) {
		r.metrics.QuotaDenied()
		r.logger.Warn("SUGGESTION", "Daily generation quota exhausted", map[string]interface{}{
			"rule_id": issue.RuleID,
		})
		return Suggestion{}, false
	}

	ctx, span := r.tracer.Start(ctx, "suggestion.remote_ai")
	defer span.End()
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.generator.Chat(callCtx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Issue: %s\nSentence: %s", issue.Message, sentence.PlainText)},
	}, llm.WithMaxTokens(256))
	if err == nil && callCtx.Err() != nil {
		err = fmt.Errorf("reply after deadline: %w", callCtx.Err())
	}
	if err != nil {
		span.RecordError(err)
		r.metrics.Tier("remote_ai", "error", time.Since(start))
		r.logger.Warn("SUGGESTION", "Remote generation failed, falling back", map[string]interface{}{
			"rule_id": issue.RuleID,
			"error":   err.Error(),
		})
		return Suggestion{}, false
	}

	text, ok := ParseRewrite(reply)
	if !ok || text == sentence.PlainText {
		r.metrics.Tier("remote_ai", "malformed", time.Since(start))
		r.logger.Warn("SUGGESTION", "Remote generation returned no usable rewrite", map[string]interface{}{
			"rule_id": issue.RuleID,
		})
		return Suggestion{}, false
	}
	r.metrics.Tier("remote_ai", "ok", time.Since(start))

	return Suggestion{
		OriginalText:  sentence.PlainText,
		RewrittenText: text,
		Method:        MethodRemoteAI,
		Confidence:    ConfidenceHigh,
		Rationale:     "Rewritten by the language model for: " + issue.Message,
	}, true
}

func (r *Resolver) retrieve(ctx context.Context, sentence segmenter.Sentence, issue rules.Issue) (Suggestion, bool) {
	if r.retriever == nil {
		return Suggestion{}, false
	}
	ctx, span := r.tracer.Start(ctx, "suggestion.retrieval")
	defer span.End()
	start := time.Now()

	category := rules.PrimaryCategory(issue.Message)
	snippets, err := r.retriever.Retrieve(ctx, retrieval.Query{Category: category, Text: sentence.PlainText, TopK: r.topK})
	if err != nil {
		span.RecordError(err)
		r.metrics.Tier("retrieval", "error", time.Since(start))
		r.logger.Warn("SUGGESTION", "Reference retrieval failed, falling back", map[string]interface{}{
			"category": string(category),
			"error":    err.Error(),
		})
		return Suggestion{}, false
	}
	if len(snippets) == 0 {
		r.metrics.Tier("retrieval", "miss", time.Since(start))
		return Suggestion{}, false
	}

	text := sentence.PlainText
	for _, sn := range substitutable(snippets, issue.Message) {
		out, ok := substitute(text, sn.Pattern, sn.Replacement)
		if !ok || out == text {
			continue
		}
		confidence := ConfidenceMedium
		if sn.Score >= highScore {
			confidence = ConfidenceHigh
		}
		rationale := sn.Guidance
		if rationale == "" {
			rationale = fmt.Sprintf("Reference rewrite: %q becomes %q.", sn.Pattern, sn.Replacement)
		}
		r.metrics.Tier("retrieval", "pattern", time.Since(start))
		return Suggestion{
			OriginalText:  text,
			RewrittenText: out,
			Method:        MethodRetrieval,
			Confidence:    confidence,
			Rationale:     rationale,
		}, true
	}

	res, ok := rewrite.ForCategory(category, text, issue.Message)
	if !ok {
		r.metrics.Tier("retrieval", "miss", time.Since(start))
		return Suggestion{}, false
	}
	rationale := snippets[0].Guidance
	if rationale == "" {
		rationale = res.Rationale
	}
	r.metrics.Tier("retrieval", "template", time.Since(start))
	return Suggestion{
		OriginalText:  text,
		RewrittenText: res.Text,
		Method:        MethodRetrieval,
		Confidence:    ConfidenceMedium,
		Rationale:     rationale,
	}, true
}

// substitutable narrows snippets to those whose pattern is a phrase quoted
// in the message. A substitution of any other phrase would leave the issue
// in place. Messages that quote nothing keep every snippet.
func substitutable(snippets []retrieval.Snippet, message string) []retrieval.Snippet {
	named := rules.QuotedArgs(message)
	if len(named) == 0 {
		return snippets
	}
	var out []retrieval.Snippet
	for _, sn := range snippets {
		pattern := strings.TrimSpace(sn.Pattern)
		if slices.ContainsFunc(named, func(p string) bool { return strings.EqualFold(p, pattern) }) {
			out = append(out, sn)
		}
	}
	return out
}

// substitute replaces the first word-bounded occurrence of pattern. An empty
// replacement deletes the phrase.
func substitute(text, pattern, replacement string) (string, bool) {
	if strings.TrimSpace(pattern) == "" {
		return "", false
	}
	start, end, ok := rules.FindPhrase(text, pattern)
	if !ok {
		return "", false
	}
	repl := replacement
	if repl != "" {
		repl = rules.MatchCase(text[start:end], replacement)
	}
	out := text[:start] + repl + text[end:]
	out = strings.Join(strings.Fields(out), " ")
	out = strings.NewReplacer(" ,", ",", " .", ".").Replace(out)
	if start == 0 {
		out = rules.UpperFirst(out)
	}
	return out, out != ""
}

// ruleBased is the terminal tier: pure, cheap and total.
func (r *Resolver) ruleBased(sentence segmenter.Sentence, issue rules.Issue) Suggestion {
	s := Suggestion{
		Issue:        RefOf(issue),
		OriginalText: sentence.PlainText,
	}
	res, ok := rewrite.Apply(sentence.PlainText, issue.Message)
	if !ok {
		s.RewrittenText = sentence.PlainText
		s.Method = MethodUnavailable
		s.Confidence = ConfidenceLow
		s.Rationale = "No automatic rewrite is available for this issue."
		return s
	}
	s.RewrittenText = res.Text
	s.Method = MethodRuleBased
	s.Confidence = ruleConfidence(res.Category)
	s.Rationale = res.Rationale
	return s
}

// Substitutions are exact; structural rewrites may need a human pass.
func ruleConfidence(c rules.Category) Confidence {
	switch c {
	case rules.CategoryPassiveVoice, rules.CategoryLongSentence:
		return ConfidenceMedium
	}
	return ConfidenceHigh
}

func (r *Resolver) notify(ctx context.Context, s Suggestion) {
	if r.notifier == nil {
		return
	}
	go r.notifier.SuggestionResolved(context.WithoutCancel(ctx), s)
}

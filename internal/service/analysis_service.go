package service

import (
	"context"
	"errors"
	"strings"

	"ai-style-review-be/internal/dto"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/metrics"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/segmenter"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyDocument means no block produced a single sentence.
var ErrEmptyDocument = errors.New("document has no text to analyze")

type IAnalysisService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
	RuleIDs() []string
}

type analysisService struct {
	segmenter   *segmenter.Segmenter
	engine      *rules.Engine
	metrics     *metrics.Metrics
	logger      logger.ILogger
	concurrency int
}

func NewAnalysisService(
	seg *segmenter.Segmenter,
	engine *rules.Engine,
	m *metrics.Metrics,
	log logger.ILogger,
	concurrency int,
) IAnalysisService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &analysisService{
		segmenter:   seg,
		engine:      engine,
		metrics:     m,
		logger:      log,
		concurrency: concurrency,
	}
}

// Analyze segments blocks concurrently, numbers the sentences across the
// whole document and runs the rules. Issues come back ordered by sentence.
func (s *analysisService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	blocks := make([]dto.BlockRequest, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		if strings.TrimSpace(b.Content) == "" {
			continue
		}
		if b.Id == "" {
			b.Id = uuid.NewString()
		}
		blocks = append(blocks, b)
	}
	if len(blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	perBlock := make([][]segmenter.Sentence, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, b := range blocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perBlock[i] = s.segmenter.Segment(b.Id, b.Content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sentences []segmenter.Sentence
	for _, block := range perBlock {
		for _, sent := range block {
			sent.Index = len(sentences)
			sentences = append(sentences, sent)
		}
	}
	if len(sentences) == 0 {
		return nil, ErrEmptyDocument
	}

	// Rules run per block so a large document spreads over the workers;
	// results are joined in block order to keep issues sorted.
	perIssues := make([][]rules.Issue, len(perBlock))
	offset := 0
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, block := range perBlock {
		chunk := sentences[offset : offset+len(block)]
		offset += len(block)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perIssues[i] = s.engine.Check(chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	issues := make([]rules.Issue, 0)
	for _, is := range perIssues {
		issues = append(issues, is...)
	}

	s.metrics.SentencesAnalyzed(len(sentences))
	s.logger.Info("ANALYSIS", "Document analyzed", map[string]interface{}{
		"blocks":    len(blocks),
		"sentences": len(sentences),
		"issues":    len(issues),
	})

	return &dto.AnalyzeResponse{Sentences: sentences, Issues: issues}, nil
}

func (s *analysisService) RuleIDs() []string {
	return s.engine.RuleIDs()
}

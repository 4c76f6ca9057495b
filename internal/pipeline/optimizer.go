// Package pipeline wires classification, analysis, synthesis, scoring and
// selection into a single optimize call.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sant0-9/promptr/internal/classify"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/prefs"
	"github.com/sant0-9/promptr/internal/prompt"
	"github.com/sant0-9/promptr/internal/score"
	"github.com/sant0-9/promptr/internal/selector"
	"github.com/sant0-9/promptr/internal/synth"
)

// Stage represents a pipeline stage
type Stage int

const (
	StageClassifying Stage = iota
	StageAnalyzing
	StageSynthesizing
	StageScoring
	StageDone
)

const totalStages = 4

func (s Stage) String() string {
	switch s {
	case StageClassifying:
		return "Classifying"
	case StageAnalyzing:
		return "Analyzing"
	case StageSynthesizing:
		return "Synthesizing"
	case StageScoring:
		return "Scoring"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents pipeline progress
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	ItemIndex   int
	TotalItems  int
	Message     string
}

// Request is one optimize call
type Request struct {
	Text        string
	FileContent string
	FileType    prompt.FileType
}

// Result contains everything produced for one request
type Result struct {
	RequestID       string                             `json:"request_id"`
	Input           string                             `json:"input"`
	Classification  prompt.ClassificationResult        `json:"classification"`
	Set             prompt.OptimizedPromptSet          `json:"set"`
	Scores          map[prompt.VersionKey]score.Result `json:"scores"`
	BestKey         prompt.VersionKey                  `json:"best_key"`
	BestText        string                             `json:"best_text"`
	EstimatedTokens int                                `json:"estimated_tokens"`
	Duration        time.Duration                      `json:"duration_ns"`
}

// Config holds the optimizer's collaborators. Nil components get offline
// defaults.
type Config struct {
	Classifier  *classify.Classifier
	Synthesizer *synth.Synthesizer
	Scorer      *score.Scorer
	Prefs       *prefs.Store
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	// Concurrency bounds parallel scoring and batch items
	Concurrency int
}

// Optimizer runs the full pipeline
type Optimizer struct {
	classifier  *classify.Classifier
	synth       *synth.Synthesizer
	scorer      *score.Scorer
	prefs       *prefs.Store
	metrics     *metrics.Metrics
	logger      *slog.Logger
	concurrency int
	onProgress  func(Progress)
}

func New(cfg Config) *Optimizer {
	o := &Optimizer{
		classifier:  cfg.Classifier,
		synth:       cfg.Synthesizer,
		scorer:      cfg.Scorer,
		prefs:       cfg.Prefs,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		concurrency: cfg.Concurrency,
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.classifier == nil {
		o.classifier = classify.New(nil, classify.WithLogger(o.logger))
	}
	if o.synth == nil {
		o.synth = synth.New(nil, synth.WithLogger(o.logger))
	}
	if o.scorer == nil {
		o.scorer = score.New(nil, score.WithLogger(o.logger))
	}
	if o.prefs == nil {
		o.prefs = prefs.NewStore()
	}
	if o.concurrency <= 0 {
		o.concurrency = 4
	}
	return o
}

// SetProgressCallback sets the progress callback
func (o *Optimizer) SetProgressCallback(fn func(Progress)) {
	o.onProgress = fn
}

// Prefs returns the preference store results are tracked in
func (o *Optimizer) Prefs() *prefs.Store {
	return o.prefs
}

// Classify runs only the classification step
func (o *Optimizer) Classify(ctx context.Context, text string) prompt.ClassificationResult {
	return o.classifier.Classify(ctx, text)
}

func (o *Optimizer) progress(pr Progress) {
	if o.onProgress != nil {
		o.onProgress(pr)
	}
}

// Optimize never fails; any LLM failure takes the local path for that step
func (o *Optimizer) Optimize(ctx context.Context, req Request) *Result {
	return o.optimize(ctx, req, o.progress)
}

func (o *Optimizer) optimize(ctx context.Context, req Request, report func(Progress)) *Result {
	start := time.Now()
	id := uuid.NewString()
	logger := o.logger.With("request_id", id)

	input := BuildContext(req.Text, req.FileContent, req.FileType)

	report(Progress{Stage: StageClassifying, StageIndex: 0, TotalStages: totalStages, Message: "Classifying request..."})
	c := o.classifier.Classify(ctx, input)
	logger.Debug("classified", "domain", c.Domain, "task", c.TaskType, "source", c.Source, "confidence", c.Confidence)

	report(Progress{Stage: StageAnalyzing, StageIndex: 1, TotalStages: totalStages, Message: "Checking risks and missing info..."})
	analysis := score.Analyze(input, c)

	report(Progress{Stage: StageSynthesizing, StageIndex: 2, TotalStages: totalStages, Message: "Writing optimized versions..."})
	set := o.synth.Synthesize(ctx, input, analysis, c)

	report(Progress{
		Stage:       StageScoring,
		StageIndex:  3,
		TotalStages: totalStages,
		TotalItems:  set.Len(),
		Message:     fmt.Sprintf("Scoring %d versions...", set.Len()),
	})
	scores := o.scoreAll(ctx, set, c.Confidence)

	bestKey, bestText := selector.SelectBest(c, set)
	o.prefs.Track(c.Domain, c.Role, c.TaskType, bestKey)
	o.metrics.Optimized(string(c.Domain), string(setSource(set)))

	res := &Result{
		RequestID:       id,
		Input:           input,
		Classification:  c,
		Set:             set,
		Scores:          scores,
		BestKey:         bestKey,
		BestText:        bestText,
		EstimatedTokens: EstimateTokens(input),
		Duration:        time.Since(start),
	}

	report(Progress{Stage: StageDone, StageIndex: totalStages, TotalStages: totalStages, Message: "Done"})
	logger.Info("optimized",
		"domain", c.Domain,
		"best", bestKey,
		"versions", set.Len(),
		"duration", res.Duration,
	)
	return res
}

// scoreAll scores every version concurrently. Scoring never fails, so the
// group only bounds concurrency.
func (o *Optimizer) scoreAll(ctx context.Context, set prompt.OptimizedPromptSet, confidence float64) map[prompt.VersionKey]score.Result {
	results := make([]score.Result, set.Len())

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, v := range set.Versions {
		g.Go(func() error {
			results[i] = o.scorer.Score(ctx, v.Text, confidence)
			return nil
		})
	}
	_ = g.Wait()

	scores := make(map[prompt.VersionKey]score.Result, len(results))
	for i, v := range set.Versions {
		scores[v.Label.Key] = results[i]
	}
	return scores
}

// OptimizeBatch splits text with SplitBatch and optimizes every entry,
// keeping input order. Progress reports one item per finished entry.
func (o *Optimizer) OptimizeBatch(ctx context.Context, text string) []*Result {
	entries := SplitBatch(text)
	results := make([]*Result, len(entries))

	var mu sync.Mutex
	done := 0
	silent := func(Progress) {}

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			results[i] = o.optimize(ctx, Request{Text: entry}, silent)

			mu.Lock()
			done++
			o.progress(Progress{
				Stage:       StageDone,
				StageIndex:  totalStages,
				TotalStages: totalStages,
				ItemIndex:   done,
				TotalItems:  len(entries),
				Message:     fmt.Sprintf("Optimized %d/%d", done, len(entries)),
			})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// setSource is llm when any version came from the model
func setSource(set prompt.OptimizedPromptSet) prompt.Source {
	for _, v := range set.Versions {
		if v.Source == prompt.SourceLLM {
			return prompt.SourceLLM
		}
	}
	return prompt.SourceTemplate
}

package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/features"
	"NewsGuard/internal/model"
	"NewsGuard/internal/ports"
	"NewsGuard/internal/textproc"
)

// DetectorConfig bounds accepted input.
type DetectorConfig struct {
	MinTextLength    int
	MaxTextLength    int
	RejectNonEnglish bool
}

// Detector is the single entry point for classifying article text. It is
// stateless per request; the only shared state is the read-only model
// snapshot taken from the handle.
type Detector struct {
	cfg     DetectorConfig
	cleaner *textproc.Cleaner
	lexical *features.LexicalExtractor
	models  *model.Handle
	history ports.DetectionHistory
	logger  *slog.Logger
}

// NewDetector wires the detection pipeline. History may be nil.
func NewDetector(cfg DetectorConfig, cleaner *textproc.Cleaner, lexical *features.LexicalExtractor, models *model.Handle, history ports.DetectionHistory, logger *slog.Logger) *Detector {
	return &Detector{
		cfg:     cfg,
		cleaner: cleaner,
		lexical: lexical,
		models:  models,
		history: history,
		logger:  logger,
	}
}

// Detect classifies text supplied directly by the caller.
func (d *Detector) Detect(ctx context.Context, rawText string) (domain.DetectionResult, error) {
	return d.DetectInput(ctx, rawText, "text")
}

// DetectInput validates, cleans, extracts features, scores and assembles
// the verdict, recording where the text came from ("text" or "url").
// Fails with a ValidationError before any pipeline stage runs, or
// ErrModelNotTrained when no model is loaded.
func (d *Detector) DetectInput(ctx context.Context, rawText, inputType string) (domain.DetectionResult, error) {
	if err := d.validate(rawText); err != nil {
		return domain.DetectionResult{}, err
	}

	m, err := d.models.Current()
	if err != nil {
		return domain.DetectionResult{}, err
	}

	cleaned := d.cleaner.Clean(rawText)
	lex := d.lexical.Extract(rawText, cleaned)

	vec, err := m.Vectorizer.Transform(cleaned)
	if err != nil {
		return domain.DetectionResult{}, err
	}
	row, err := features.Assemble(m.Schema, vec, lex)
	if err != nil {
		return domain.DetectionResult{}, err
	}

	label, probs, err := m.Forest.Predict(row)
	if err != nil {
		return domain.DetectionResult{}, err
	}

	probFake := round2(probs[domain.LabelFake] * 100)
	probReal := round2(probs[domain.LabelReal] * 100)

	result := domain.DetectionResult{
		Label:            domain.Label(label).String(),
		Confidence:       math.Max(probFake, probReal),
		ProbabilityFake:  probFake,
		ProbabilityReal:  probReal,
		WordCount:        lex.WordCount,
		SensationalCount: lex.SensationalCount,
		EmotionalCount:   lex.EmotionalCount,
		ExclamationCount: lex.ExclamationCount,
		QuestionCount:    lex.QuestionCount,
		CapitalRatio:     round2(lex.CapitalRatio),
	}

	d.record(ctx, result, len(rawText), inputType)
	return result, nil
}

// Ready reports whether a model is loaded.
func (d *Detector) Ready() bool { return d.models.Ready() }

func (d *Detector) validate(rawText string) error {
	trimmed := strings.TrimSpace(rawText)
	if len(trimmed) < d.cfg.MinTextLength {
		return domain.NewValidationError("text too short (minimum %d characters)", d.cfg.MinTextLength)
	}
	if d.cfg.MaxTextLength > 0 && len(rawText) > d.cfg.MaxTextLength {
		return domain.NewValidationError("text too long (maximum %d characters)", d.cfg.MaxTextLength)
	}
	if d.cfg.RejectNonEnglish && textproc.LikelyNonEnglish(trimmed) {
		return domain.NewValidationError("only English text is supported")
	}
	return nil
}

// record persists the verdict best-effort; a history failure never fails
// the request.
func (d *Detector) record(ctx context.Context, result domain.DetectionResult, textLen int, inputType string) {
	if d.history == nil {
		return
	}
	if inputType == "" {
		inputType = "text"
	}
	err := d.history.Record(ctx, domain.DetectionRecord{
		Label:            result.Label,
		Confidence:       result.Confidence,
		TextLength:       textLen,
		SensationalCount: result.SensationalCount,
		EmotionalCount:   result.EmotionalCount,
		InputType:        inputType,
	})
	if err != nil && d.logger != nil {
		d.logger.Warn("record detection", "error", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

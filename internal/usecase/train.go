package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/features"
	"NewsGuard/internal/forest"
	"NewsGuard/internal/model"
	"NewsGuard/internal/ports"
	"NewsGuard/internal/textproc"
)

// StageError tags a training failure with the stage it happened in, so
// callers can tell a data-loading failure from a fitting or persistence
// failure.
type StageError struct {
	Stage domain.TrainingStage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("training failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// TrainerConfig carries hyperparameters and split behavior.
type TrainerConfig struct {
	Vectorizer features.VectorizerOptions
	Forest     forest.Params
	// EvalRatio is the held-out share of the corpus, default 0.2.
	EvalRatio float64
	// Seed drives the shuffle of the stratified split.
	Seed int64
	// AppendLexical feeds the lexical scalars to the classifier as named
	// schema slots. Inference always follows the persisted schema, so
	// flipping this only takes effect on the next retrain.
	AppendLexical bool
}

// Trainer runs the full training workflow: load corpus, preprocess,
// stratified split, fit vectorizer on the train split only, fit the
// forest, evaluate on the held-out split, persist, swap. Runs are
// mutually exclusive; a failure at any stage leaves the previously
// persisted model and the in-memory handle untouched.
type Trainer struct {
	cfg     TrainerConfig
	corpus  ports.CorpusSource
	cleaner *textproc.Cleaner
	lexical *features.LexicalExtractor
	store   ports.ModelStore
	models  *model.Handle
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewTrainer wires the training pipeline.
func NewTrainer(cfg TrainerConfig, corpus ports.CorpusSource, cleaner *textproc.Cleaner, lexical *features.LexicalExtractor, store ports.ModelStore, models *model.Handle, logger *slog.Logger) *Trainer {
	if cfg.EvalRatio <= 0 || cfg.EvalRatio >= 1 {
		cfg.EvalRatio = 0.2
	}
	return &Trainer{
		cfg:     cfg,
		corpus:  corpus,
		cleaner: cleaner,
		lexical: lexical,
		store:   store,
		models:  models,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes one training run and reports the held-out metrics.
func (t *Trainer) Run(ctx context.Context) (domain.TrainingReport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	started := t.now()
	fail := func(stage domain.TrainingStage, err error) (domain.TrainingReport, error) {
		t.log("training failed", "stage", string(stage), "error", err)
		return domain.TrainingReport{Stage: domain.StageFailed}, &StageError{Stage: stage, Err: err}
	}

	t.log("training started")
	examples, err := t.corpus.Load(ctx)
	if err != nil {
		return fail(domain.StageLoadingData, err)
	}
	if err := checkTwoClasses(examples); err != nil {
		return fail(domain.StageLoadingData, err)
	}

	// Preprocessing: clean every example, dropping those that end up empty.
	type prepared struct {
		raw     string
		cleaned string
		label   domain.Label
	}
	docs := make([]prepared, 0, len(examples))
	for _, ex := range examples {
		cleaned := t.cleaner.Clean(ex.Text)
		if cleaned == "" {
			continue
		}
		docs = append(docs, prepared{raw: ex.Text, cleaned: cleaned, label: ex.Label})
	}
	if err := ctx.Err(); err != nil {
		return fail(domain.StagePreprocessing, err)
	}
	labels := make([]int, len(docs))
	for i, doc := range docs {
		labels[i] = int(doc.label)
	}

	trainIdx, evalIdx := stratifiedSplit(labels, t.cfg.EvalRatio, t.cfg.Seed)
	if len(trainIdx) == 0 || len(evalIdx) == 0 {
		return fail(domain.StagePreprocessing, fmt.Errorf("corpus too small to split: %d usable examples", len(docs)))
	}
	t.log("corpus prepared", "samples", len(docs), "train", len(trainIdx), "eval", len(evalIdx))

	// The vectorizer sees only the train split; letting held-out text
	// shape the vocabulary would invalidate the reported metrics.
	trainTexts := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainTexts[i] = docs[idx].cleaned
	}
	vectorizer := features.NewVectorizer(t.cfg.Vectorizer)
	if err := vectorizer.Fit(trainTexts); err != nil {
		return fail(domain.StageFittingVectorizer, err)
	}
	schema := features.NewSchema(vectorizer.Dimension(), t.cfg.AppendLexical)
	t.log("vectorizer fitted", "vocabulary", vectorizer.Dimension())

	assemble := func(idx int) ([]float64, error) {
		vec, err := vectorizer.Transform(docs[idx].cleaned)
		if err != nil {
			return nil, err
		}
		lex := t.lexical.Extract(docs[idx].raw, docs[idx].cleaned)
		return features.Assemble(schema, vec, lex)
	}

	trainRows := make([][]float64, len(trainIdx))
	trainLabels := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		row, err := assemble(idx)
		if err != nil {
			return fail(domain.StageFittingClassifier, err)
		}
		trainRows[i] = row
		trainLabels[i] = labels[idx]
	}

	frst := forest.New(t.cfg.Forest)
	if err := frst.Fit(trainRows, trainLabels); err != nil {
		return fail(domain.StageFittingClassifier, err)
	}
	t.log("classifier fitted", "trees", t.cfg.Forest.Trees)

	var conf confusion
	for _, idx := range evalIdx {
		row, err := assemble(idx)
		if err != nil {
			return fail(domain.StageEvaluating, err)
		}
		predicted, _, err := frst.Predict(row)
		if err != nil {
			return fail(domain.StageEvaluating, err)
		}
		conf.add(labels[idx], predicted)
	}

	trainedAt := t.now()
	trained := &model.TrainedModel{
		Vectorizer: vectorizer,
		Forest:     frst,
		Schema:     schema,
		Meta: model.Metadata{
			TrainedAt:   trainedAt,
			Accuracy:    conf.accuracy(),
			Precision:   conf.precision(),
			Recall:      conf.recall(),
			F1:          conf.f1(),
			Samples:     len(docs),
			MaxFeatures: t.cfg.Vectorizer.MaxFeatures,
			NGramMin:    t.cfg.Vectorizer.NGramMin,
			NGramMax:    t.cfg.Vectorizer.NGramMax,
			Trees:       t.cfg.Forest.Trees,
			MaxDepth:    t.cfg.Forest.MaxDepth,
		},
	}
	if err := t.store.Save(trained); err != nil {
		return fail(domain.StagePersisting, err)
	}

	// Publish only after the artifact is durable.
	t.models.Swap(trained)

	report := domain.TrainingReport{
		Stage:     domain.StageDone,
		Samples:   len(docs),
		TrainSize: len(trainIdx),
		EvalSize:  len(evalIdx),
		Accuracy:  trained.Meta.Accuracy,
		Precision: trained.Meta.Precision,
		Recall:    trained.Meta.Recall,
		F1:        trained.Meta.F1,
		TrainedAt: trainedAt,
		Duration:  trainedAt.Sub(started),
	}
	t.log("training done", "accuracy", report.Accuracy, "f1", report.F1, "duration", report.Duration)
	return report, nil
}

func (t *Trainer) log(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Info(msg, args...)
	}
}

func checkTwoClasses(examples []domain.LabeledExample) error {
	var fake, real int
	for _, ex := range examples {
		switch ex.Label {
		case domain.LabelFake:
			fake++
		case domain.LabelReal:
			real++
		}
	}
	if fake == 0 || real == 0 {
		return fmt.Errorf("corpus needs both classes: %d fake, %d real", fake, real)
	}
	return nil
}

// stratifiedSplit shuffles each class with the seeded rng and holds out
// evalRatio of it, at least one example per class when possible.
func stratifiedSplit(labels []int, evalRatio float64, seed int64) (train, eval []int) {
	byClass := map[int][]int{}
	classes := []int{}
	for idx, label := range labels {
		if _, ok := byClass[label]; !ok {
			classes = append(classes, label)
		}
		byClass[label] = append(byClass[label], idx)
	}
	// Map iteration order is random; walk classes in first-seen order so
	// the split is reproducible.
	rng := rand.New(rand.NewSource(seed))
	for _, class := range classes {
		indices := byClass[class]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		n := int(evalRatio * float64(len(indices)))
		if n == 0 && len(indices) > 1 {
			n = 1
		}
		eval = append(eval, indices[:n]...)
		train = append(train, indices[n:]...)
	}
	return train, eval
}

// confusion tracks binary outcomes with FAKE as the positive class.
type confusion struct {
	tp, tn, fp, fn int
}

func (c *confusion) add(actual, predicted int) {
	switch {
	case actual == int(domain.LabelFake) && predicted == int(domain.LabelFake):
		c.tp++
	case actual == int(domain.LabelReal) && predicted == int(domain.LabelReal):
		c.tn++
	case actual == int(domain.LabelReal) && predicted == int(domain.LabelFake):
		c.fp++
	default:
		c.fn++
	}
}

func (c *confusion) total() int { return c.tp + c.tn + c.fp + c.fn }

func (c *confusion) accuracy() float64 {
	if c.total() == 0 {
		return 0
	}
	return float64(c.tp+c.tn) / float64(c.total())
}

func (c *confusion) precision() float64 {
	if c.tp+c.fp == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fp)
}

func (c *confusion) recall() float64 {
	if c.tp+c.fn == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fn)
}

func (c *confusion) f1() float64 {
	p, r := c.precision(), c.recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

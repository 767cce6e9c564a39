package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/features"
	"NewsGuard/internal/forest"
	"NewsGuard/internal/infrastructure/corpus"
	"NewsGuard/internal/model"
	"NewsGuard/internal/ports"
	"NewsGuard/internal/textproc"
)

// Hyperparameters sized for the embedded bootstrap corpus.
func testVectorizerOpts() features.VectorizerOptions {
	return features.VectorizerOptions{MaxFeatures: 500, NGramMin: 1, NGramMax: 2, MinDocFreq: 1}
}

func testForestParams() forest.Params {
	return forest.Params{Trees: 40, MaxDepth: 10, MinSamplesSplit: 2, MinSamplesLeaf: 1, Seed: 42}
}

func testTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Vectorizer: testVectorizerOpts(),
		Forest:     testForestParams(),
		EvalRatio:  0.2,
		Seed:       42,
	}
}

// memStore keeps the artifact in memory.
type memStore struct {
	mu    sync.Mutex
	saved *model.TrainedModel
	saves int
}

func (s *memStore) Save(m *model.TrainedModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = m
	s.saves++
	return nil
}

func (s *memStore) Load() (*model.TrainedModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		return nil, domain.ErrModelNotFound
	}
	return s.saved, nil
}

// failStore refuses every save.
type failStore struct{}

func (failStore) Save(*model.TrainedModel) error { return errors.New("disk full") }
func (failStore) Load() (*model.TrainedModel, error) {
	return nil, domain.ErrModelNotFound
}

// sourceFunc adapts a function to the CorpusSource port.
type sourceFunc func(ctx context.Context) ([]domain.LabeledExample, error)

func (f sourceFunc) Load(ctx context.Context) ([]domain.LabeledExample, error) { return f(ctx) }

func newTestTrainer(source ports.CorpusSource, store ports.ModelStore, models *model.Handle) *Trainer {
	return NewTrainer(
		testTrainerConfig(),
		source,
		textproc.NewCleaner(textproc.DefaultOptions()),
		features.NewLexicalExtractor(),
		store,
		models,
		nil,
	)
}

func stageOf(t *testing.T, err error) domain.TrainingStage {
	t.Helper()
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("err = %v, want StageError", err)
	}
	return stageErr.Stage
}

func TestTrainerRun(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	models := model.NewHandle()
	trainer := newTestTrainer(corpus.SampleSource{}, store, models)
	trainedAt := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	trainer.now = func() time.Time { return trainedAt }

	report, err := trainer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Stage != domain.StageDone {
		t.Fatalf("Stage = %s, want %s", report.Stage, domain.StageDone)
	}
	if report.Samples != 30 || report.TrainSize != 24 || report.EvalSize != 6 {
		t.Fatalf("split = %d/%d/%d, want 30/24/6", report.Samples, report.TrainSize, report.EvalSize)
	}
	if report.Accuracy < 0 || report.Accuracy > 1 {
		t.Fatalf("Accuracy = %v outside [0,1]", report.Accuracy)
	}
	if !report.TrainedAt.Equal(trainedAt) {
		t.Fatalf("TrainedAt = %v, want %v", report.TrainedAt, trainedAt)
	}

	if !models.Ready() {
		t.Fatal("handle not swapped after successful run")
	}
	m, err := models.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if store.saved != m {
		t.Fatal("persisted model differs from the published one")
	}
	if m.Schema.VectorTerms != m.Vectorizer.Dimension() {
		t.Fatalf("schema says %d terms, vectorizer has %d", m.Schema.VectorTerms, m.Vectorizer.Dimension())
	}
	if m.Schema.AppendsLexical() {
		t.Fatal("lexical slots appended without AppendLexical")
	}
}

func TestTrainerAppendLexicalSchema(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	models := model.NewHandle()
	trainer := newTestTrainer(corpus.SampleSource{}, store, models)
	trainer.cfg.AppendLexical = true

	if _, err := trainer.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	m, err := models.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !m.Schema.AppendsLexical() {
		t.Fatal("schema missing lexical slots despite AppendLexical")
	}
	if want := m.Vectorizer.Dimension() + len(features.LexicalSlotNames); m.Schema.Dimension() != want {
		t.Fatalf("schema dimension = %d, want %d", m.Schema.Dimension(), want)
	}
}

func TestTrainerSingleClassCorpus(t *testing.T) {
	t.Parallel()

	source := sourceFunc(func(context.Context) ([]domain.LabeledExample, error) {
		return []domain.LabeledExample{
			{Text: "shocking miracle secret exposed", Label: domain.LabelFake},
			{Text: "urgent alert breaking unbelievable", Label: domain.LabelFake},
		}, nil
	})
	trainer := newTestTrainer(source, &memStore{}, model.NewHandle())

	_, err := trainer.Run(context.Background())
	if got := stageOf(t, err); got != domain.StageLoadingData {
		t.Fatalf("stage = %s, want %s", got, domain.StageLoadingData)
	}
}

func TestTrainerCorpusLoadFailure(t *testing.T) {
	t.Parallel()

	source := sourceFunc(func(context.Context) ([]domain.LabeledExample, error) {
		return nil, fmt.Errorf("csv missing")
	})
	trainer := newTestTrainer(source, &memStore{}, model.NewHandle())

	_, err := trainer.Run(context.Background())
	if got := stageOf(t, err); got != domain.StageLoadingData {
		t.Fatalf("stage = %s, want %s", got, domain.StageLoadingData)
	}
}

func TestTrainerCorpusEmptyAfterCleaning(t *testing.T) {
	t.Parallel()

	// Both classes present, but every text cleans to nothing.
	source := sourceFunc(func(context.Context) ([]domain.LabeledExample, error) {
		return []domain.LabeledExample{
			{Text: "a an the of", Label: domain.LabelFake},
			{Text: "to in on at", Label: domain.LabelReal},
		}, nil
	})
	trainer := newTestTrainer(source, &memStore{}, model.NewHandle())

	_, err := trainer.Run(context.Background())
	if got := stageOf(t, err); got != domain.StagePreprocessing {
		t.Fatalf("stage = %s, want %s", got, domain.StagePreprocessing)
	}
}

func TestTrainerPersistFailureKeepsActiveModel(t *testing.T) {
	t.Parallel()

	models := model.NewHandle()
	good := newTestTrainer(corpus.SampleSource{}, &memStore{}, models)
	if _, err := good.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	active, err := models.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}

	bad := newTestTrainer(corpus.SampleSource{}, failStore{}, models)
	_, err = bad.Run(context.Background())
	if got := stageOf(t, err); got != domain.StagePersisting {
		t.Fatalf("stage = %s, want %s", got, domain.StagePersisting)
	}

	still, err := models.Current()
	if err != nil {
		t.Fatalf("Current after failed run: %v", err)
	}
	if still != active {
		t.Fatal("failed run replaced the active model")
	}
}

func TestTrainerReproducibleArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trainedAt := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

	train := func(name string) []byte {
		t.Helper()
		path := filepath.Join(dir, name)
		trainer := newTestTrainer(corpus.SampleSource{}, model.NewFileStore(path), model.NewHandle())
		trainer.now = func() time.Time { return trainedAt }
		if _, err := trainer.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read artifact: %v", err)
		}
		return data
	}

	a := train("a.json")
	b := train("b.json")
	if string(a) != string(b) {
		t.Fatal("same corpus, seed and timestamp produced different artifacts")
	}
}

func TestTrainerCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trainer := newTestTrainer(corpus.SampleSource{}, &memStore{}, model.NewHandle())
	if _, err := trainer.Run(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestStratifiedSplit(t *testing.T) {
	t.Parallel()

	labels := make([]int, 0, 20)
	for i := 0; i < 12; i++ {
		labels = append(labels, 0)
	}
	for i := 0; i < 8; i++ {
		labels = append(labels, 1)
	}

	train, eval := stratifiedSplit(labels, 0.25, 42)

	if len(train)+len(eval) != len(labels) {
		t.Fatalf("split covers %d of %d indices", len(train)+len(eval), len(labels))
	}
	seen := make(map[int]bool, len(labels))
	for _, idx := range append(append([]int(nil), train...), eval...) {
		if seen[idx] {
			t.Fatalf("index %d appears twice", idx)
		}
		seen[idx] = true
	}

	evalPerClass := map[int]int{}
	for _, idx := range eval {
		evalPerClass[labels[idx]]++
	}
	if evalPerClass[0] != 3 || evalPerClass[1] != 2 {
		t.Fatalf("eval per class = %v, want map[0:3 1:2]", evalPerClass)
	}

	train2, eval2 := stratifiedSplit(labels, 0.25, 42)
	if fmt.Sprint(train2, eval2) != fmt.Sprint(train, eval) {
		t.Fatal("same seed produced a different split")
	}
}

func TestConfusionMetrics(t *testing.T) {
	t.Parallel()

	var c confusion
	// 3 TP, 4 TN, 1 FP, 2 FN with FAKE as positive.
	for i := 0; i < 3; i++ {
		c.add(int(domain.LabelFake), int(domain.LabelFake))
	}
	for i := 0; i < 4; i++ {
		c.add(int(domain.LabelReal), int(domain.LabelReal))
	}
	c.add(int(domain.LabelReal), int(domain.LabelFake))
	c.add(int(domain.LabelFake), int(domain.LabelReal))
	c.add(int(domain.LabelFake), int(domain.LabelReal))

	if got, want := c.accuracy(), 0.7; got != want {
		t.Fatalf("accuracy = %v, want %v", got, want)
	}
	if got, want := c.precision(), 0.75; got != want {
		t.Fatalf("precision = %v, want %v", got, want)
	}
	if got, want := c.recall(), 0.6; got != want {
		t.Fatalf("recall = %v, want %v", got, want)
	}
	p, r := c.precision(), c.recall()
	if got, want := c.f1(), 2*p*r/(p+r); got != want {
		t.Fatalf("f1 = %v, want %v", got, want)
	}
}

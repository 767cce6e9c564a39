package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"NewsGuard/internal/config"
	"NewsGuard/internal/features"
	"NewsGuard/internal/infrastructure/corpus"
	"NewsGuard/internal/logging"
	"NewsGuard/internal/model"
	"NewsGuard/internal/ports"
	"NewsGuard/internal/textproc"
	"NewsGuard/internal/usecase"
	"NewsGuard/pkg/logger"
)

// Administrative trigger for model training: loads the labeled corpus,
// runs the full training pipeline and persists the resulting artifact.
func main() {
	_ = godotenv.Load()

	fakeCSV := flag.String("fake", "", "path to the fake-news CSV (overrides config)")
	trueCSV := flag.String("true", "", "path to the real-news CSV (overrides config)")
	modelPath := flag.String("model", "", "path for the model artifact (overrides config)")
	useSample := flag.Bool("sample", false, "train on the embedded bootstrap corpus")
	flag.Parse()

	out := logger.New("trainer")

	cfg := config.Load()
	if *fakeCSV != "" {
		cfg.Training.FakeCSV = *fakeCSV
	}
	if *trueCSV != "" {
		cfg.Training.TrueCSV = *trueCSV
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}

	var source ports.CorpusSource = corpus.NewCSVSource(cfg.Training.FakeCSV, cfg.Training.TrueCSV)
	if *useSample {
		out.Println("using embedded bootstrap corpus")
		source = corpus.SampleSource{}
	}

	trainer := usecase.NewTrainer(
		usecase.TrainerConfig{
			Vectorizer:    cfg.Model.VectorizerOptions(),
			Forest:        cfg.Model.ForestParams(),
			EvalRatio:     cfg.Training.EvalRatio,
			Seed:          cfg.Model.Seed,
			AppendLexical: cfg.Model.AppendLexicalFeatures,
		},
		source,
		textproc.NewCleaner(textproc.DefaultOptions()),
		features.NewLexicalExtractor(),
		model.NewFileStore(cfg.Model.Path),
		model.NewHandle(),
		logging.New(cfg.Logging.Level).With("component", "trainer"),
	)

	report, err := trainer.Run(context.Background())
	if err != nil {
		out.Printf("training failed: %v", err)
		os.Exit(1)
	}

	out.Printf("trained on %d samples (%d train / %d eval)", report.Samples, report.TrainSize, report.EvalSize)
	out.Printf("accuracy=%.4f precision=%.4f recall=%.4f f1=%.4f", report.Accuracy, report.Precision, report.Recall, report.F1)
	out.Printf("model saved to %s", cfg.Model.Path)
}

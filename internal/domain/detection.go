package domain

import "time"

// Label enumerates the two verdict classes. The numeric values double as
// classifier training labels (fake = 0, real = 1).
type Label int

const (
	LabelFake Label = 0
	LabelReal Label = 1
)

// String renders the label the way it is surfaced to API consumers.
func (l Label) String() string {
	if l == LabelReal {
		return "REAL"
	}
	return "FAKE"
}

// LexicalFeatures are the interpretable scalar signals extracted alongside
// the statistical feature vector.
type LexicalFeatures struct {
	WordCount        int
	SensationalCount int
	EmotionalCount   int
	ExclamationCount int
	QuestionCount    int
	CapitalRatio     float64
}

// DetectionResult is the per-request verdict returned to callers.
// Probabilities and confidence are percentages rounded to two decimals;
// ProbabilityFake + ProbabilityReal always sums to 100 within rounding.
type DetectionResult struct {
	Label            string  `json:"label"`
	Confidence       float64 `json:"confidence"`
	ProbabilityFake  float64 `json:"probability_fake"`
	ProbabilityReal  float64 `json:"probability_real"`
	WordCount        int     `json:"word_count"`
	SensationalCount int     `json:"sensational_count"`
	EmotionalCount   int     `json:"emotional_count"`
	ExclamationCount int     `json:"exclamation_count"`
	QuestionCount    int     `json:"question_count"`
	CapitalRatio     float64 `json:"capital_ratio"`
}

// LabeledExample is one (text, label) pair of the training corpus.
type LabeledExample struct {
	Text  string
	Label Label
}

// TrainingStage names the steps of the training pipeline for progress
// logging and failure reporting.
type TrainingStage string

const (
	StageIdle              TrainingStage = "idle"
	StageLoadingData       TrainingStage = "loading_data"
	StagePreprocessing     TrainingStage = "preprocessing"
	StageFittingVectorizer TrainingStage = "fitting_vectorizer"
	StageFittingClassifier TrainingStage = "fitting_classifier"
	StageEvaluating        TrainingStage = "evaluating"
	StagePersisting        TrainingStage = "persisting"
	StageDone              TrainingStage = "done"
	StageFailed            TrainingStage = "failed"
)

// TrainingReport summarizes a completed training run. Precision, recall
// and F1 treat FAKE as the positive class.
type TrainingReport struct {
	Stage     TrainingStage `json:"stage"`
	Samples   int           `json:"samples"`
	TrainSize int           `json:"train_size"`
	EvalSize  int           `json:"eval_size"`
	Accuracy  float64       `json:"accuracy"`
	Precision float64       `json:"precision"`
	Recall    float64       `json:"recall"`
	F1        float64       `json:"f1"`
	TrainedAt time.Time     `json:"trained_at"`
	Duration  time.Duration `json:"duration"`
}

// DetectionRecord is the persisted snapshot of one verdict.
type DetectionRecord struct {
	Label            string
	Confidence       float64
	TextLength       int
	SensationalCount int
	EmotionalCount   int
	InputType        string
	CreatedAt        time.Time
}

// HistoryStats aggregates past verdicts for the stats endpoint.
type HistoryStats struct {
	Total         int     `json:"total"`
	FakeCount     int     `json:"fake_count"`
	RealCount     int     `json:"real_count"`
	AvgConfidence float64 `json:"avg_confidence"`
}

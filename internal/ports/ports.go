package ports

import (
	"context"
	"time"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/model"
)

// CorpusSource loads the labeled training corpus from external storage.
type CorpusSource interface {
	Load(ctx context.Context) ([]domain.LabeledExample, error)
}

// ModelStore persists the fitted vectorizer and classifier as one unit.
type ModelStore interface {
	Save(m *model.TrainedModel) error
	Load() (*model.TrainedModel, error)
}

// DetectionHistory records verdicts for auditing and the stats endpoint.
type DetectionHistory interface {
	Record(ctx context.Context, rec domain.DetectionRecord) error
	Stats(ctx context.Context) (domain.HistoryStats, error)
}

// ArticleExtractor turns a URL into plain article text. It is a
// collaborator of the detection core, never called by it.
type ArticleExtractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

// Scheduler controls when retraining jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

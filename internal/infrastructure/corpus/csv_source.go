package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/ports"
)

// CSVSource loads the labeled corpus from the conventional Fake.csv /
// True.csv dataset pair. Rows carry a text column and optionally a title
// column that gets prepended.
type CSVSource struct {
	fakePath string
	truePath string
}

var _ ports.CorpusSource = (*CSVSource)(nil)

// NewCSVSource reads fake examples from fakePath and real ones from
// truePath.
func NewCSVSource(fakePath, truePath string) *CSVSource {
	return &CSVSource{fakePath: fakePath, truePath: truePath}
}

// Load reads both files, drops blank rows and deduplicates by text.
func (s *CSVSource) Load(ctx context.Context) ([]domain.LabeledExample, error) {
	fake, err := readLabeled(s.fakePath, domain.LabelFake)
	if err != nil {
		return nil, fmt.Errorf("load fake corpus: %w", err)
	}
	genuine, err := readLabeled(s.truePath, domain.LabelReal)
	if err != nil {
		return nil, fmt.Errorf("load real corpus: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	combined := append(fake, genuine...)
	seen := make(map[string]struct{}, len(combined))
	out := combined[:0]
	for _, ex := range combined {
		if _, dup := seen[ex.Text]; dup {
			continue
		}
		seen[ex.Text] = struct{}{}
		out = append(out, ex)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}
	return out, nil
}

func readLabeled(path string, label domain.Label) ([]domain.LabeledExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	textIdx, titleIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "text", "body", "content":
			if textIdx == -1 {
				textIdx = i
			}
		case "title":
			titleIdx = i
		}
	}
	if textIdx == -1 {
		return nil, fmt.Errorf("no text column in %s", path)
	}

	var examples []domain.LabeledExample
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if textIdx >= len(record) {
			continue
		}

		text := strings.TrimSpace(record[textIdx])
		if titleIdx != -1 && titleIdx < len(record) {
			if title := strings.TrimSpace(record[titleIdx]); title != "" {
				text = strings.TrimSpace(title + " " + text)
			}
		}
		if text == "" {
			continue
		}
		examples = append(examples, domain.LabeledExample{Text: text, Label: label})
	}
	return examples, nil
}

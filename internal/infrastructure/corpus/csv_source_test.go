package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"NewsGuard/internal/domain"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fake := writeCSV(t, dir, "Fake.csv",
		"title,text,subject,date\n"+
			"Shocking claim,Miracle cure exposed by anonymous insider,News,2020-01-01\n"+
			",Urgent secret plot revealed,News,2020-01-02\n")
	genuine := writeCSV(t, dir, "True.csv",
		"title,text,subject,date\n"+
			"Quarterly report,The central bank published its quarterly figures,Business,2020-01-01\n")

	examples, err := NewCSVSource(fake, genuine).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(examples) != 3 {
		t.Fatalf("got %d examples, want 3", len(examples))
	}
	if examples[0].Text != "Shocking claim Miracle cure exposed by anonymous insider" {
		t.Fatalf("title not prepended: %q", examples[0].Text)
	}
	if examples[1].Text != "Urgent secret plot revealed" {
		t.Fatalf("empty title altered the text: %q", examples[1].Text)
	}
	if examples[0].Label != domain.LabelFake || examples[2].Label != domain.LabelReal {
		t.Fatalf("labels wrong: %+v", examples)
	}
}

func TestCSVSourceAlternateTextColumn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fake := writeCSV(t, dir, "Fake.csv", "content\nsome fabricated story\n")
	genuine := writeCSV(t, dir, "True.csv", "body\nsome factual story\n")

	examples, err := NewCSVSource(fake, genuine).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("got %d examples, want 2", len(examples))
	}
}

func TestCSVSourceDeduplicatesAndSkipsBlank(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fake := writeCSV(t, dir, "Fake.csv",
		"text\nrepeated fabricated story\nrepeated fabricated story\n\n   \n")
	genuine := writeCSV(t, dir, "True.csv", "text\nreal story\n")

	examples, err := NewCSVSource(fake, genuine).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("got %d examples after dedupe, want 2", len(examples))
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	genuine := writeCSV(t, dir, "True.csv", "text\nreal story\n")

	_, err := NewCSVSource(filepath.Join(dir, "absent.csv"), genuine).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCSVSourceNoTextColumn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fake := writeCSV(t, dir, "Fake.csv", "headline,date\nno usable column,2020\n")
	genuine := writeCSV(t, dir, "True.csv", "text\nreal story\n")

	_, err := NewCSVSource(fake, genuine).Load(context.Background())
	if err == nil {
		t.Fatal("expected error when the text column is missing")
	}
}

func TestSampleSource(t *testing.T) {
	t.Parallel()

	examples, err := SampleSource{}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var fake, genuine int
	for _, ex := range examples {
		if ex.Text == "" {
			t.Fatal("sample corpus contains an empty text")
		}
		switch ex.Label {
		case domain.LabelFake:
			fake++
		case domain.LabelReal:
			genuine++
		}
	}
	if fake == 0 || genuine == 0 {
		t.Fatalf("sample corpus missing a class: %d fake, %d real", fake, genuine)
	}
}

package usecase

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/complykit/filingreview/internal/core/domain"
)

type fakeExtractor struct {
	extraction domain.Extraction
	err        error
}

func (f *fakeExtractor) Extract(context.Context, *domain.Document) (domain.Extraction, error) {
	if f.err != nil {
		return domain.Extraction{}, f.err
	}
	return f.extraction, nil
}

type fakeClassifier struct {
	result domain.DocumentType
}

func (f *fakeClassifier) Classify(string, string) domain.DocumentType {
	return f.result
}

type fakeScanner struct {
	sections []string
}

func (f *fakeScanner) Sections(string) []string {
	return f.sections
}

func seedDocument(repo *fakeDocumentRepo, id string) {
	repo.documents[id] = &domain.Document{
		ID:        id,
		Filename:  "moa.txt",
		Status:    domain.StatusUploaded,
		CreatedAt: time.Now().UTC(),
	}
}

func TestProcessByIDHappyPath(t *testing.T) {
	repo := newFakeDocumentRepo()
	seedDocument(repo, "doc-1")

	uc := NewProcessDocumentUseCase(
		repo,
		&fakeExtractor{extraction: domain.Extraction{
			FullText:   "shareholders of the company are listed",
			Paragraphs: []string{"shareholders of the company are listed"},
		}},
		&fakeClassifier{result: domain.TypeMemorandumOfAssociation},
		&fakeScanner{sections: []string{"SHAREHOLDERS"}},
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("process: %v", err)
	}

	analysis, ok := repo.analyses["doc-1"]
	if !ok {
		t.Fatalf("expected analysis saved")
	}
	if analysis.InferredType != domain.TypeMemorandumOfAssociation {
		t.Fatalf("inferred type = %q", analysis.InferredType)
	}
	if analysis.WordCount != 6 {
		t.Fatalf("word count = %d, want 6", analysis.WordCount)
	}
	if !reflect.DeepEqual(analysis.DetectedSections, []string{"SHAREHOLDERS"}) {
		t.Fatalf("detected sections = %v", analysis.DetectedSections)
	}
	if !reflect.DeepEqual(repo.statuses, []string{"processing", "ready"}) {
		t.Fatalf("status transitions = %v, want [processing ready]", repo.statuses)
	}
}

func TestProcessByIDExtractionFailureMarksFailed(t *testing.T) {
	repo := newFakeDocumentRepo()
	seedDocument(repo, "doc-1")

	uc := NewProcessDocumentUseCase(
		repo,
		&fakeExtractor{err: fmt.Errorf("unreadable bytes")},
		&fakeClassifier{},
		&fakeScanner{},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if !reflect.DeepEqual(repo.statuses, []string{"processing", "failed"}) {
		t.Fatalf("status transitions = %v, want [processing failed]", repo.statuses)
	}
	if repo.documents["doc-1"].Error == "" {
		t.Fatalf("expected failure message recorded on document")
	}
}

func TestProcessByIDUnknownDocument(t *testing.T) {
	repo := newFakeDocumentRepo()

	uc := NewProcessDocumentUseCase(repo, &fakeExtractor{}, &fakeClassifier{}, &fakeScanner{})

	err := uc.ProcessByID(context.Background(), "absent")
	if err == nil {
		t.Fatalf("expected error for unknown document")
	}
}

func TestProcessByIDSaveFailureMarksFailed(t *testing.T) {
	repo := newFakeDocumentRepo()
	seedDocument(repo, "doc-1")
	repo.saveErr = fmt.Errorf("db write failed")

	uc := NewProcessDocumentUseCase(
		repo,
		&fakeExtractor{extraction: domain.Extraction{FullText: "text"}},
		&fakeClassifier{result: domain.TypeUnknown},
		&fakeScanner{},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error when save fails")
	}
	if got := repo.statuses[len(repo.statuses)-1]; got != "failed" {
		t.Fatalf("final status = %q, want failed", got)
	}
}

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/complykit/filingreview/internal/core/domain"
)

type fakeDocumentRepo struct {
	created   []domain.Document
	documents map[string]*domain.Document
	statuses  []string
	analyses  map[string]domain.Analysis

	createErr error
	getErr    error
	updateErr error
	saveErr   error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		documents: map[string]*domain.Document{},
		analyses:  map[string]domain.Analysis{},
	}
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *doc)
	f.documents[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.documents[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocumentRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := f.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (f *fakeDocumentRepo) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statuses = append(f.statuses, string(status))
	if doc, ok := f.documents[id]; ok {
		doc.Status = status
		doc.Error = errMessage
	}
	return nil
}

func (f *fakeDocumentRepo) SaveAnalysis(_ context.Context, id string, analysis domain.Analysis) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.analyses[id] = analysis
	return nil
}

type fakeObjectStorage struct {
	saved   map[string][]byte
	saveErr error
	openErr error
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{saved: map[string][]byte{}}
}

func (f *fakeObjectStorage) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.saved[key] = b
	return nil
}

func (f *fakeObjectStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	b, ok := f.saved[key]
	if !ok {
		return nil, fmt.Errorf("key %q not found", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

type fakeMessageQueue struct {
	published  []string
	publishErr error
}

func (f *fakeMessageQueue) PublishDocumentIngested(_ context.Context, documentID string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *fakeMessageQueue) SubscribeDocumentIngested(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestUploadStoresPersistsAndPublishes(t *testing.T) {
	repo := newFakeDocumentRepo()
	storage := newFakeObjectStorage()
	queue := &fakeMessageQueue{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "MOA draft.docx", "application/octet-stream", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if doc.ID == "" {
		t.Fatalf("expected generated id")
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("status = %q, want uploaded", doc.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created record, got %d", len(repo.created))
	}
	if got, ok := storage.saved[doc.StoragePath]; !ok || string(got) != "payload" {
		t.Fatalf("expected payload stored under %q", doc.StoragePath)
	}
	if strings.Contains(doc.StoragePath, " ") {
		t.Fatalf("storage key not sanitized: %q", doc.StoragePath)
	}
	if len(queue.published) != 1 || queue.published[0] != doc.ID {
		t.Fatalf("expected publish for %q, got %v", doc.ID, queue.published)
	}
}

func TestUploadRejectsEmptyFilename(t *testing.T) {
	uc := NewIngestDocumentUseCase(newFakeDocumentRepo(), newFakeObjectStorage(), &fakeMessageQueue{})

	_, err := uc.Upload(context.Background(), "   ", "", strings.NewReader("x"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestUploadPropagatesStorageError(t *testing.T) {
	storage := newFakeObjectStorage()
	storage.saveErr = fmt.Errorf("disk full")
	uc := NewIngestDocumentUseCase(newFakeDocumentRepo(), storage, &fakeMessageQueue{})

	_, err := uc.Upload(context.Background(), "doc.txt", "", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestUploadPropagatesPublishError(t *testing.T) {
	queue := &fakeMessageQueue{publishErr: fmt.Errorf("nats down")}
	uc := NewIngestDocumentUseCase(newFakeDocumentRepo(), newFakeObjectStorage(), queue)

	_, err := uc.Upload(context.Background(), "doc.txt", "", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "nats down") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"MOA draft.docx":   "MOA_draft.docx",
		"../../etc/passwd": "passwd",
		"a b/c d.txt":      "c_d.txt",
		"":                 "document.bin",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/complykit/filingreview/internal/core/domain"
)

type fakeStorage struct {
	data map[string][]byte
	err  error
}

func (f *fakeStorage) Save(_ context.Context, key string, data io.Reader) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.data == nil {
		f.data = map[string][]byte{}
	}
	f.data[key] = b
	return nil
}

func (f *fakeStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q not found", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func TestExtractPlainText(t *testing.T) {
	storage := &fakeStorage{data: map[string][]byte{
		"doc-1_moa.txt": []byte("  MEMORANDUM\n\nShareholders are listed below.\n"),
	}}
	e := NewExtractor(storage)

	extraction, err := e.Extract(context.Background(), &domain.Document{StoragePath: "doc-1_moa.txt"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if extraction.FullText != "MEMORANDUM\n\nShareholders are listed below." {
		t.Fatalf("full text = %q", extraction.FullText)
	}
	want := []string{"MEMORANDUM", "Shareholders are listed below."}
	if !reflect.DeepEqual(extraction.Paragraphs, want) {
		t.Fatalf("paragraphs = %v, want %v", extraction.Paragraphs, want)
	}
	if len(extraction.Tables) != 0 {
		t.Fatalf("expected no tables for plain text")
	}
}

func TestExtractInvalidUTF8(t *testing.T) {
	storage := &fakeStorage{data: map[string][]byte{
		"doc-1_bin": {0xff, 0xfe, 0x00, 0x01},
	}}
	e := NewExtractor(storage)

	_, err := e.Extract(context.Background(), &domain.Document{StoragePath: "doc-1_bin", Filename: "bin"})
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

func TestExtractMissingObject(t *testing.T) {
	e := NewExtractor(&fakeStorage{})

	_, err := e.Extract(context.Background(), &domain.Document{StoragePath: "absent"})
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

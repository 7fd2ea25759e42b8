package document

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func renderedSample(t *testing.T) []byte {
	t.Helper()
	out, err := NewPDFRenderer().Render(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("render sample: %v", err)
	}
	return out
}

func TestCertifyStampsMetadata(t *testing.T) {
	c := NewCertifier()
	certified, err := c.Certify(renderedSample(t))
	if err != nil {
		t.Fatalf("certify: %v", err)
	}
	if !bytes.HasPrefix(certified, []byte("%PDF")) {
		t.Fatal("certified artifact is not a PDF")
	}

	info, err := c.InspectInfo(certified)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info["Creator"] != MetaCreator {
		t.Fatalf("expected creator %q, got %q", MetaCreator, info["Creator"])
	}
	if info["Producer"] != MetaProducer {
		t.Fatalf("expected producer %q, got %q", MetaProducer, info["Producer"])
	}
	if info["Author"] != MetaAuthor {
		t.Fatalf("expected author %q, got %q", MetaAuthor, info["Author"])
	}
	if info["Title"] != MetaTitle {
		t.Fatalf("expected title %q, got %q", MetaTitle, info["Title"])
	}
}

func TestCertifyIsMetadataIdempotent(t *testing.T) {
	c := NewCertifier()
	once, err := c.Certify(renderedSample(t))
	if err != nil {
		t.Fatalf("first certify: %v", err)
	}
	twice, err := c.Certify(once)
	if err != nil {
		t.Fatalf("second certify: %v", err)
	}

	first, err := c.InspectInfo(once)
	if err != nil {
		t.Fatalf("inspect first: %v", err)
	}
	second, err := c.InspectInfo(twice)
	if err != nil {
		t.Fatalf("inspect second: %v", err)
	}
	for _, key := range []string{"Creator", "Producer", "Author", "Title"} {
		if first[key] != second[key] {
			t.Fatalf("%s changed between certifications: %q vs %q", key, first[key], second[key])
		}
	}
}

func TestCertifyRejectsMalformedArtifact(t *testing.T) {
	c := NewCertifier()
	if _, err := c.Certify([]byte("<html>not a pdf</html>")); err == nil {
		t.Fatal("expected an error for malformed artifact bytes")
	}
}

func TestCertifyRejectsEmptyArtifact(t *testing.T) {
	c := NewCertifier()
	if _, err := c.Certify(nil); !errors.Is(err, ErrEmptyArtifact) {
		t.Fatalf("expected ErrEmptyArtifact, got %v", err)
	}
}

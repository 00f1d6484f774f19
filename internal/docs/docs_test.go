package docs

import (
	"strings"
	"testing"
)

func TestChunkShortTextSingleChunk(t *testing.T) {
	text := "A short note about nothing in particular."
	chunks := Chunk(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk altered the text: %q", chunks[0])
	}
}

func TestChunkEmptyText(t *testing.T) {
	if got := Chunk("   "); got != nil {
		t.Errorf("expected no chunks, got %v", got)
	}
}

func TestChunkSizingAndOverlap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
	}
	chunks := Chunk(sb.String())

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > chunkSize {
			t.Errorf("chunk %d is %d chars, exceeds %d", i, len(c), chunkSize)
		}
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
	// Consecutive chunks share overlap text.
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1][len(chunks[i-1])-50:]
		if !strings.Contains(chunks[i], strings.TrimSpace(tail)[:20]) {
			t.Errorf("chunk %d does not overlap its predecessor", i)
		}
	}
}

func TestChunkBreaksOnSentenceBoundary(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("Sentence number goes right here. ")
	}
	chunks := Chunk(sb.String())
	for i, c := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(c, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: ...%q", i, c[len(c)-20:])
		}
	}
}

func TestEmbedDimensions(t *testing.T) {
	vec := Embed("hello world")
	if len(vec) != Dimensions {
		t.Fatalf("embedding has %d dimensions, want %d", len(vec), Dimensions)
	}
}

func TestEmbedWeightsAndCap(t *testing.T) {
	vec := Embed(strings.Repeat("echo ", 50))
	var nonzero int
	for _, v := range vec {
		if v < 0 {
			t.Fatalf("negative weight %f", v)
		}
		if v > 1.0 {
			t.Fatalf("weight %f exceeds cap", v)
		}
		if v > 0 {
			nonzero++
		}
	}
	if nonzero != 1 {
		t.Errorf("single distinct word should touch 1 position, touched %d", nonzero)
	}
}

func TestEmbedCaseAndPunctuationInsensitive(t *testing.T) {
	a := Embed("Hello, World!")
	b := Embed("hello world")
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("embeddings differ across case and punctuation")
		}
	}
}

func TestEmbedEmptyText(t *testing.T) {
	vec := Embed("")
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("position %d is %f, want 0", i, v)
		}
	}
}

package chunker

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{name: "valid", size: 512, overlap: 50, wantErr: false},
		{name: "zero overlap", size: 100, overlap: 0, wantErr: false},
		{name: "zero size", size: 0, overlap: 0, wantErr: true},
		{name: "negative size", size: -1, overlap: 0, wantErr: true},
		{name: "negative overlap", size: 100, overlap: -1, wantErr: true},
		{name: "overlap equals size", size: 100, overlap: 100, wantErr: true},
		{name: "overlap exceeds size", size: 100, overlap: 150, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%d, %d) error = %v, wantErr %v", tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestChunker_Split(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		overlap   int
		text      string
		wantCount int
	}{
		{
			name:      "empty input produces no chunks",
			size:      10,
			overlap:   2,
			text:      "",
			wantCount: 0,
		},
		{
			name:      "text shorter than size is a single chunk",
			size:      100,
			overlap:   10,
			text:      "short text",
			wantCount: 1,
		},
		{
			name:      "exact size is a single chunk",
			size:      5,
			overlap:   1,
			text:      "abcde",
			wantCount: 1,
		},
		{
			name:    "long text splits with overlap",
			size:    10,
			overlap: 2,
			// 20 runes: [0:10), [8:18), [16:20)
			text:      "abcdefghijklmnopqrst",
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			chunks := c.Split("doc-1", tt.text, nil)
			if len(chunks) != tt.wantCount {
				t.Fatalf("Split() produced %d chunks, want %d", len(chunks), tt.wantCount)
			}

			for i, chunk := range chunks {
				if chunk.Text == "" {
					t.Errorf("chunk[%d] has empty text", i)
				}
				if utf8.RuneCountInString(chunk.Text) > tt.size {
					t.Errorf("chunk[%d] length = %d runes, exceeds size %d", i, utf8.RuneCountInString(chunk.Text), tt.size)
				}
				if chunk.Ordinal != i {
					t.Errorf("chunk[%d] ordinal = %d, want %d", i, chunk.Ordinal, i)
				}
				if chunk.SourceID != "doc-1" {
					t.Errorf("chunk[%d] source = %q, want doc-1", i, chunk.SourceID)
				}
			}
		})
	}
}

func TestChunker_Split_Deterministic(t *testing.T) {
	c, err := New(16, 4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 10)
	first := c.Split("doc-1", text, map[string]any{"chapter": "1"})
	second := c.Split("doc-1", text, map[string]any{"chapter": "1"})

	if !reflect.DeepEqual(first, second) {
		t.Error("Split() called twice returned different chunk sequences")
	}
}

func TestChunker_Split_Coverage(t *testing.T) {
	// Concatenating chunk texts minus the overlap prefix of every chunk after
	// the first must reconstruct the original text exactly.
	tests := []struct {
		name    string
		size    int
		overlap int
		text    string
	}{
		{name: "ascii", size: 10, overlap: 3, text: "abcdefghijklmnopqrstuvwxyz0123456789"},
		{name: "no overlap", size: 7, overlap: 0, text: "abcdefghijklmnopqrstuvwxyz"},
		{name: "unicode runes", size: 5, overlap: 2, text: "héllo wörld ünïcode tæxt größe"},
		{name: "uneven tail", size: 8, overlap: 1, text: "0123456789abcdef0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			chunks := c.Split("doc-1", tt.text, nil)
			if len(chunks) == 0 {
				t.Fatal("Split() produced no chunks")
			}

			var rebuilt strings.Builder
			for i, chunk := range chunks {
				runes := []rune(chunk.Text)
				if i == 0 {
					rebuilt.WriteString(chunk.Text)
					continue
				}
				if len(runes) < tt.overlap {
					t.Fatalf("chunk[%d] shorter than overlap: %d < %d", i, len(runes), tt.overlap)
				}
				rebuilt.WriteString(string(runes[tt.overlap:]))
			}

			if rebuilt.String() != tt.text {
				t.Errorf("reconstructed text does not match original:\ngot  %q\nwant %q", rebuilt.String(), tt.text)
			}
		})
	}
}

func TestChunker_Split_OverlapCarryOver(t *testing.T) {
	c, err := New(10, 3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	chunks := c.Split("doc-1", "abcdefghijklmnopqrst", nil)
	if len(chunks) < 2 {
		t.Fatalf("Split() produced %d chunks, want at least 2", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		cur := []rune(chunks[i].Text)
		tail := string(prev[len(prev)-3:])
		head := string(cur[:3])
		if tail != head {
			t.Errorf("chunk[%d] does not carry over overlap: tail %q, head %q", i, tail, head)
		}
	}
}

func TestChunker_Split_MetadataCopied(t *testing.T) {
	c, err := New(100, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	meta := map[string]any{"chapter": "2", "section": "2.1"}
	chunks := c.Split("doc-1", "some text", meta)
	if len(chunks) != 1 {
		t.Fatalf("Split() produced %d chunks, want 1", len(chunks))
	}

	// Mutating the caller's map must not affect the chunk.
	meta["chapter"] = "changed"
	if chunks[0].Metadata["chapter"] != "2" {
		t.Error("chunk metadata shares storage with the caller's map")
	}
}

func TestChunker_Split_DistinctIDs(t *testing.T) {
	c, err := New(5, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	chunks := c.Split("doc-1", "aaaaaaaaaaaaaaaaaaaa", nil)
	seen := make(map[string]bool)
	for _, chunk := range chunks {
		if seen[chunk.ID] {
			t.Errorf("duplicate chunk ID %q", chunk.ID)
		}
		seen[chunk.ID] = true
	}
}

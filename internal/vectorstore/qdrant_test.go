package vectorstore

import (
	"context"
	"net/url"
	"strconv"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

// TestQdrantURLParsing tests the URL parsing convention without creating a
// real client: the gRPC port is derived as HTTP port + 1.
func TestQdrantURLParsing(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantHost string
		wantPort int
	}{
		{
			name:     "default port",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "custom port",
			urlStr:   "http://qdrant.internal:9000",
			wantHost: "qdrant.internal",
			wantPort: 9001,
		},
		{
			name:     "no port falls back to gRPC default",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsedURL, err := url.Parse(tt.urlStr)
			if err != nil {
				t.Fatalf("url.Parse() error = %v", err)
			}

			host := parsedURL.Hostname()
			if host == "" {
				host = "localhost"
			}
			port := 6334
			if parsedURL.Port() != "" {
				httpPort, err := strconv.Atoi(parsedURL.Port())
				if err == nil {
					port = httpPort + 1
				}
			}

			if host != tt.wantHost {
				t.Errorf("host = %q, want %q", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("port = %d, want %d", port, tt.wantPort)
			}
		})
	}
}

func TestBuildFilter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		filters        map[string]any
		wantNil        bool
		wantConditions int
	}{
		{
			name:    "nil filters",
			filters: nil,
			wantNil: true,
		},
		{
			name:    "empty filters",
			filters: map[string]any{},
			wantNil: true,
		},
		{
			name:           "string exact match",
			filters:        map[string]any{"source_id": "book-1"},
			wantConditions: 1,
		},
		{
			name:           "integer match",
			filters:        map[string]any{"paragraph_index": 3},
			wantConditions: 1,
		},
		{
			name:           "whole float from JSON decodes as integer match",
			filters:        map[string]any{"paragraph_index": float64(3)},
			wantConditions: 1,
		},
		{
			name:    "fractional float is skipped",
			filters: map[string]any{"score": 0.5},
			wantNil: true,
		},
		{
			name:           "string slice is any-of",
			filters:        map[string]any{"chapter": []string{"1", "2"}},
			wantConditions: 1,
		},
		{
			name:           "any slice of strings is any-of",
			filters:        map[string]any{"chapter": []any{"1", "2"}},
			wantConditions: 1,
		},
		{
			name:    "mixed any slice is skipped",
			filters: map[string]any{"chapter": []any{"1", 2}},
			wantNil: true,
		},
		{
			name:    "unsupported type is skipped",
			filters: map[string]any{"weird": struct{}{}},
			wantNil: true,
		},
		{
			name: "multiple fields",
			filters: map[string]any{
				"source_id": "book-1",
				"chapter":   []string{"1", "2"},
			},
			wantConditions: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := buildFilter(ctx, tt.filters)

			if tt.wantNil {
				if filter != nil {
					t.Errorf("buildFilter() = %v, want nil", filter)
				}
				return
			}

			if filter == nil {
				t.Fatal("buildFilter() returned nil, want conditions")
			}
			if len(filter.Must) != tt.wantConditions {
				t.Errorf("buildFilter() conditions = %d, want %d", len(filter.Must), tt.wantConditions)
			}
		})
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value *qdrant.Value
		want  any
	}{
		{
			name:  "string",
			value: &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: "hello"}},
			want:  "hello",
		},
		{
			name:  "integer",
			value: &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: 42}},
			want:  int64(42),
		},
		{
			name:  "double",
			value: &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: 0.9}},
			want:  0.9,
		},
		{
			name:  "bool",
			value: &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: true}},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertValue(tt.value)
			if got != tt.want {
				t.Errorf("convertValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

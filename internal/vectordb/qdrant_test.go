// ABOUTME: Tests for metric mapping, endpoint parsing and point ID derivation
// ABOUTME: Pure unit tests, no running Qdrant required
package vectordb

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in      string
		want    Metric
		wantErr bool
	}{
		{"dot_product", MetricDotProduct, false},
		{"cosine", MetricCosine, false},
		{"euclidean", MetricEuclidean, false},
		{"manhattan", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMetric(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseMetric(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseMetric(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestMetricDistanceRoundTrip(t *testing.T) {
	for _, m := range []Metric{MetricDotProduct, MetricCosine, MetricEuclidean} {
		assert.Equal(t, m, metricFromDistance(m.distance()))
	}
	assert.Equal(t, qdrant.Distance_Dot, MetricDotProduct.distance())
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in       string
		wantHost string
		wantPort int
		wantTLS  bool
		wantErr  bool
	}{
		{"https://xyz.cloud.qdrant.io:6334", "xyz.cloud.qdrant.io", 6334, true, false},
		{"https://xyz.cloud.qdrant.io", "xyz.cloud.qdrant.io", 6334, true, false},
		{"http://localhost:6334", "localhost", 6334, false, false},
		{"localhost:7000", "localhost", 7000, false, false},
		{"", "", 0, false, true},
	}

	for _, tt := range tests {
		host, port, useTLS, err := parseEndpoint(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseEndpoint(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseEndpoint(%q)", tt.in)
		assert.Equal(t, tt.wantHost, host, "host of %q", tt.in)
		assert.Equal(t, tt.wantPort, port, "port of %q", tt.in)
		assert.Equal(t, tt.wantTLS, useTLS, "tls of %q", tt.in)
	}
}

func TestPointID_Deterministic(t *testing.T) {
	a := PointID("https://example.com/resume", "Nev built a resume chatbot.")
	b := PointID("https://example.com/resume", "Nev built a resume chatbot.")
	assert.Equal(t, a, b, "same source/text must produce the same ID")
}

func TestPointID_DistinguishesContent(t *testing.T) {
	base := PointID("https://example.com/resume", "chunk one")
	assert.NotEqual(t, base, PointID("https://example.com/resume", "chunk two"),
		"different text must produce a different ID")
	assert.NotEqual(t, base, PointID("https://example.com/notes", "chunk one"),
		"different source must produce a different ID")
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "prod.resume", QualifiedName("prod", "resume"))
	assert.Equal(t, "resume", QualifiedName("", "resume"))
}

// ABOUTME: Similarity metric enum and mapping to Qdrant distance functions
// ABOUTME: Metric is immutable after collection creation for a given name
package vectordb

import (
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// Metric is the similarity function used to rank stored vectors against a
// query vector.
type Metric string

const (
	MetricDotProduct Metric = "dot_product"
	MetricCosine     Metric = "cosine"
	MetricEuclidean  Metric = "euclidean"
)

// ParseMetric validates a metric name from configuration.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricDotProduct, MetricCosine, MetricEuclidean:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown similarity metric %q (want dot_product, cosine or euclidean)", s)
}

func (m Metric) distance() qdrant.Distance {
	switch m {
	case MetricDotProduct:
		return qdrant.Distance_Dot
	case MetricCosine:
		return qdrant.Distance_Cosine
	case MetricEuclidean:
		return qdrant.Distance_Euclid
	}
	return qdrant.Distance_UnknownDistance
}

func metricFromDistance(d qdrant.Distance) Metric {
	switch d {
	case qdrant.Distance_Dot:
		return MetricDotProduct
	case qdrant.Distance_Cosine:
		return MetricCosine
	case qdrant.Distance_Euclid:
		return MetricEuclidean
	}
	return ""
}

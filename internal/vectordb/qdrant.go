// ABOUTME: Qdrant-backed vector index client for resume chunks
// ABOUTME: Create/upsert/query/drop on one namespaced collection
package vectordb

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/ne246/nevienudugamaresume/internal/models"
)

// ErrCollectionMismatch means a collection with the configured name already
// exists but was created with a different dimension or metric. Dimension and
// metric are immutable after creation, so this is fatal.
var ErrCollectionMismatch = errors.New("existing collection has different dimension or metric")

const defaultGRPCPort = 6334

// Namespace for deriving content-addressed point IDs. Upserting the same
// source/text pair always produces the same ID, so re-running ingestion
// converges instead of appending duplicates.
var pointIDNamespace = uuid.MustParse("9f2c7e0a-55d1-4bfb-9e6a-1f6f2b3c4d5e")

// Config holds connection settings for the vector index.
type Config struct {
	Endpoint   string // e.g. https://xyz.cloud.qdrant.io:6334
	APIKey     string
	Namespace  string
	Collection string
}

// Client manages one named collection in a hosted Qdrant index.
type Client struct {
	client     *qdrant.Client
	collection string
}

// New connects to the index named by cfg. The collection name is qualified
// with the namespace so several deployments can share one cluster.
func New(cfg Config) (*Client, error) {
	host, port, useTLS, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse vector db endpoint: %w", err)
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to vector db: %w", err)
	}

	return &Client{
		client:     client,
		collection: QualifiedName(cfg.Namespace, cfg.Collection),
	}, nil
}

// QualifiedName builds the fully qualified collection name from a namespace
// and a bare collection name.
func QualifiedName(namespace, collection string) string {
	if namespace == "" {
		return collection
	}
	return namespace + "." + collection
}

// parseEndpoint splits an endpoint URL into host, gRPC port and TLS flag.
func parseEndpoint(endpoint string) (host string, port int, useTLS bool, err error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", 0, false, err
	}
	if u.Host == "" {
		// Bare host[:port] without a scheme.
		u = &url.URL{Host: endpoint}
	}

	host = u.Host
	port = defaultGRPCPort
	if h, p, splitErr := net.SplitHostPort(u.Host); splitErr == nil {
		host = h
		if port, err = strconv.Atoi(p); err != nil {
			return "", 0, false, fmt.Errorf("invalid port %q", p)
		}
	}
	if host == "" {
		return "", 0, false, fmt.Errorf("no host in endpoint %q", endpoint)
	}
	return host, port, u.Scheme == "https", nil
}

// EnsureCollection creates the collection if it does not exist. If it does,
// the stored dimension and metric are verified against the requested ones
// and ErrCollectionMismatch is returned on any difference.
func (c *Client) EnsureCollection(ctx context.Context, dimension int, metric Metric) error {
	exists, err := c.client.CollectionExists(ctx, c.collection)
	if err != nil {
		return fmt.Errorf("check collection %q: %w", c.collection, err)
	}

	if exists {
		info, err := c.client.GetCollectionInfo(ctx, c.collection)
		if err != nil {
			return fmt.Errorf("inspect collection %q: %w", c.collection, err)
		}
		params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
		if params.GetSize() != uint64(dimension) || metricFromDistance(params.GetDistance()) != metric {
			return fmt.Errorf("%w: collection %q has dimension=%d metric=%s, want dimension=%d metric=%s",
				ErrCollectionMismatch, c.collection,
				params.GetSize(), metricFromDistance(params.GetDistance()), dimension, metric)
		}
		return nil
	}

	if err := c.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: c.collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(dimension),
					Distance: metric.distance(),
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("create collection %q: %w", c.collection, err)
	}
	return nil
}

// PointID derives the stable, content-addressed ID for a chunk. Identical
// source/text pairs map to the same ID across ingestion runs.
func PointID(sourceURL, text string) string {
	return uuid.NewSHA1(pointIDNamespace, []byte(sourceURL+"\x00"+text)).String()
}

// Upsert writes one chunk and its vector. Keyed by PointID, so repeated
// ingestion of unchanged content overwrites instead of duplicating.
func (c *Client) Upsert(ctx context.Context, chunk models.DocumentChunk) error {
	_, err := c.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(PointID(chunk.SourceURL, chunk.Text)),
				Vectors: qdrant.NewVectors(chunk.Vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"text":   chunk.Text,
					"source": chunk.SourceURL,
				}),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("upsert into %q: %w", c.collection, err)
	}
	return nil
}

// Query returns at most k chunks ranked by the collection's configured
// metric. An empty collection yields an empty result, not an error.
func (c *Client) Query(ctx context.Context, vector []float32, k int) ([]models.SearchResult, error) {
	limit := uint64(k)
	points, err := c.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", c.collection, err)
	}

	results := make([]models.SearchResult, 0, len(points))
	for _, p := range points {
		results = append(results, models.SearchResult{
			Text:      p.GetPayload()["text"].GetStringValue(),
			SourceURL: p.GetPayload()["source"].GetStringValue(),
			Score:     p.GetScore(),
		})
	}
	return results, nil
}

// Drop deletes the collection entirely. Maintenance tooling only.
func (c *Client) Drop(ctx context.Context) error {
	if err := c.client.DeleteCollection(ctx, c.collection); err != nil {
		return fmt.Errorf("drop collection %q: %w", c.collection, err)
	}
	return nil
}

// DeleteAll removes every point but keeps the collection. Maintenance
// tooling only.
func (c *Client) DeleteAll(ctx context.Context) error {
	_, err := c.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.collection,
		Points:         qdrant.NewPointsSelectorFilter(&qdrant.Filter{}),
	})
	if err != nil {
		return fmt.Errorf("delete all points in %q: %w", c.collection, err)
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.client.Close()
}

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog"
)

const (
	esIndex = "subwise"

	envEsAddr = "ELASTICSEARCH_SERVICE_HOST"
	envEsPort = "ELASTICSEARCH_SERVICE_PORT"
)

// ElasticsearchV8 stores each key as a document of the subwise index.
type ElasticsearchV8 struct {
	es  *elasticsearch.Client
	log zerolog.Logger
}

// esDoc is the indexed document. Value is base64 encoded by encoding/json.
type esDoc struct {
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewElasticsearchV8 creates a client for urls. Without urls the address is read from the
// environment, defaulting to http://localhost:9200.
func NewElasticsearchV8(log zerolog.Logger, urls ...string) (*ElasticsearchV8, error) {
	if len(urls) == 0 {
		address := os.Getenv(envEsAddr)
		port := os.Getenv(envEsPort)
		if port == "" {
			port = "9200" // default port
		}
		if address == "" {
			address = "localhost" // default address
		}
		urls = []string{fmt.Sprintf("http://%s:%s", address, port)}
	}

	retryBackoff := backoff.NewExponentialBackOff()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: urls,

		// Retry on 429 TooManyRequests statuses
		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &ElasticsearchV8{es: es, log: log}, nil
}

func (e *ElasticsearchV8) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := e.es.Get(esIndex, key, e.es.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("get %q: %s", key, res.String())
	}
	var hit struct {
		Source esDoc `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&hit); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return hit.Source.Value, nil
}

func (e *ElasticsearchV8) Put(ctx context.Context, key string, value []byte) error {
	body, err := json.Marshal(esDoc{Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	res, err := e.es.Index(esIndex, bytes.NewReader(body),
		e.es.Index.WithDocumentID(key),
		e.es.Index.WithRefresh("true"),
		e.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index %q: %w", key, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index %q: %s: %s", key, res.Status(), msg)
	}
	e.log.Debug().Str("index", esIndex).Str("key", key).Int("bytes", len(value)).Msg("document indexed")
	return nil
}

func (e *ElasticsearchV8) Close() error { return nil }

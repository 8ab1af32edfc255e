package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
)

const (
	esIndex = "savings"
	esFlush = 2048

	envEsAddr = "ELASTICSEARCH_SERVICE_HOST"
	envEsPort = "ELASTICSEARCH_SERVICE_PORT"
)

// ElasticsearchV8 bulk indexes the transaction history, one document per
// transaction, for searching and charting outside the tracker.
type ElasticsearchV8 struct {
	addresses []string
	loc       *time.Location
}

// check it meets the interface
var _ Exporter = &ElasticsearchV8{}

// NewElasticsearchV8 targets urls, or the address in the environment when none
// are given. Document dates are bucketed into days in loc.
func NewElasticsearchV8(loc *time.Location, urls ...string) *ElasticsearchV8 {
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
	if loc == nil {
		loc = time.Local
	}

	return &ElasticsearchV8{addresses: urls, loc: loc}
}

// Addresses returns the cluster addresses exports go to.
func (e *ElasticsearchV8) Addresses() []string {
	return e.addresses
}

type esDocument struct {
	Position int         `json:"position"`
	Amount   json.Number `json:"amount"`
	Kind     string      `json:"kind"`
	Date     string      `json:"date"`
	Day      string      `json:"day"`
}

// esDocumentIDs names each transaction by its timestamp and amount, so a
// transaction keeps its ID when others are deleted. Identical transactions
// are numbered in the order they appear.
func esDocumentIDs(txns []domain.Transaction) []string {
	ids := make([]string, len(txns))
	seen := make(map[string]int, len(txns))
	for i, t := range txns {
		base := fmt.Sprintf("%d_%s", t.Date.UnixNano(), t.Amount.String())
		ids[i] = fmt.Sprintf("%s_%d", base, seen[base])
		seen[base]++
	}
	return ids
}

func (e *ElasticsearchV8) document(i int, t domain.Transaction) esDocument {
	kind := "withdrawal"
	if t.IsDeposit() {
		kind = "deposit"
	}
	return esDocument{
		Position: i,
		Amount:   json.Number(t.Amount.String()),
		Kind:     kind,
		Date:     t.Date.UTC().Format(time.RFC3339Nano),
		Day:      t.Date.In(e.loc).Format("2006-01-02"),
	}
}

// Export replaces the contents of the index with txns.
func (e *ElasticsearchV8) Export(ctx context.Context, txns []domain.Transaction) error {
	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: e.addresses,

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
		return err
	}

	// the index mirrors the ledger, deleted transactions included
	if err := resetIndex(ctx, es); err != nil {
		return err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         esIndex,
		FlushBytes:    esFlush,
		Client:        es,
		NumWorkers:    4,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	ids := esDocumentIDs(txns)
	for i, t := range txns {
		data, err := json.Marshal(e.document(i, t))
		if err != nil {
			return err
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: ids[i],
				Body:       bytes.NewReader(data),

				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						log.Error().Err(err).Str("id", item.DocumentID).Msg("failed to index transaction")
					} else {
						log.Error().Str("id", item.DocumentID).Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("failed to index transaction")
					}
				},
			},
		)
		if err != nil {
			return err
		}
	}

	if err := bi.Close(ctx); err != nil {
		return err
	}

	biStats := bi.Stats()
	if biStats.NumFailed > 0 {
		return fmt.Errorf("failed indexing %d of %d transactions", biStats.NumFailed, len(txns))
	}

	log.Info().Uint64("indexed", biStats.NumFlushed).Strs("addresses", e.addresses).Msg("exported history")
	return nil
}

// resetIndex drops and recreates the index.
func resetIndex(ctx context.Context, es *elasticsearch.Client) error {
	res, err := es.Indices.Delete([]string{esIndex}, es.Indices.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete index %s: %w", esIndex, err)
	}
	res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete index %s: %s", esIndex, res.Status())
	}

	res, err = es.Indices.Create(esIndex, es.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create index %s: %w", esIndex, err)
	}
	res.Body.Close()
	if res.IsError() {
		log.Debug().Str("index", esIndex).Str("status", res.Status()).Msg("attempted to make index")
	}
	return nil
}

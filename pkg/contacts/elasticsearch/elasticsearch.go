package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/dialserve/internal/logger"
	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/charmbracelet/log"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// indexMapping keeps names and numbers unanalyzed; the dialer does its own
// matching and only needs rank-ordered retrieval.
const indexMapping = `{
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"lookup_key": {"type": "keyword"},
			"name": {"type": "keyword", "index": false},
			"number": {"type": "keyword", "index": false},
			"starred": {"type": "boolean"},
			"times_contacted": {"type": "integer"},
			"last_contacted": {"type": "date", "null_value": null},
			"rank": {"type": "long"}
		}
	}
}`

// document is the structure stored in Elasticsearch.
type document struct {
	ID             int64      `json:"id"`
	LookupKey      string     `json:"lookup_key"`
	Name           string     `json:"name"`
	Number         string     `json:"number"`
	Starred        bool       `json:"starred"`
	TimesContacted int        `json:"times_contacted"`
	LastContacted  *time.Time `json:"last_contacted,omitempty"`
	Rank           int64      `json:"rank"`
}

func (d document) record() contacts.Record {
	r := contacts.Record{
		ID:             d.ID,
		LookupKey:      d.LookupKey,
		DisplayName:    d.Name,
		PhoneNumber:    d.Number,
		Starred:        d.Starred,
		TimesContacted: d.TimesContacted,
	}
	if d.LastContacted != nil {
		r.LastContacted = *d.LastContacted
	}
	return r
}

func documentFor(r contacts.Record, rank int) document {
	d := document{
		ID:             r.ID,
		LookupKey:      r.LookupKey,
		Name:           r.DisplayName,
		Number:         r.PhoneNumber,
		Starred:        r.Starred,
		TimesContacted: r.TimesContacted,
		Rank:           int64(rank),
	}
	if !r.LastContacted.IsZero() {
		t := r.LastContacted
		d.LastContacted = &t
	}
	return d
}

// searchHit represents a single search result from Elasticsearch.
type searchHit struct {
	Source document          `json:"_source"`
	Sort   []json.RawMessage `json:"sort"`
}

// searchResponse represents the Elasticsearch search response.
type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// Source reads ranked contacts from an Elasticsearch index.
type Source struct {
	client        *elasticsearch.Client
	index         string
	pageSize      int
	refreshPolicy string
	log           *log.Logger
}

// New creates an Elasticsearch source, checks the cluster answers and creates
// the index when it does not exist.
func New(config *Config) (*Source, error) {
	config.setDefaults()

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: config.URLs,
		Username:  config.Username,
		Password:  config.Password,
		APIKey:    config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to Elasticsearch: %v", contacts.ErrSourceUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("%w: Elasticsearch connection error: %s", contacts.ErrSourceUnavailable, res.String())
	}

	s := &Source{
		client:        client,
		index:         config.Index,
		pageSize:      config.PageSize,
		refreshPolicy: config.RefreshPolicy,
		log:           logger.New("source"),
	}
	if err := s.createIndexIfNotExists(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Source) createIndexIfNotExists(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{s.index}}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("failed to create index: %s", res.String())
	}
	s.log.Debug("created contact index", "index", s.index)
	return nil
}

// Scan implements contacts.Source.
func (s *Source) Scan(ctx context.Context, fn func(contacts.Record) error) error {
	var after []json.RawMessage
	for {
		body, err := buildSearchBody(s.pageSize, after)
		if err != nil {
			return err
		}

		res, err := esapi.SearchRequest{
			Index: []string{s.index},
			Body:  bytes.NewReader(body),
		}.Do(ctx, s.client)
		if err != nil {
			return fmt.Errorf("%w: search failed: %v", contacts.ErrSourceUnavailable, err)
		}
		hits, err := readSearchResponse(res)
		if err != nil {
			return err
		}

		for _, h := range hits {
			if err := fn(h.Source.record()); err != nil {
				return err
			}
		}
		if len(hits) < s.pageSize {
			return nil
		}
		after = hits[len(hits)-1].Sort
	}
}

func readSearchResponse(res *esapi.Response) ([]searchHit, error) {
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("%w: search failed: %s", contacts.ErrSourceUnavailable, res.String())
	}
	return parseSearchResponse(res.Body)
}

// buildSearchBody pages through every document by rank, then id.
func buildSearchBody(size int, after []json.RawMessage) ([]byte, error) {
	query := map[string]interface{}{
		"size":  size,
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort": []interface{}{
			map[string]interface{}{"rank": "asc"},
			map[string]interface{}{"id": "asc"},
		},
	}
	if len(after) > 0 {
		query["search_after"] = after
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	return body, nil
}

// parseSearchResponse parses the Elasticsearch search response
func parseSearchResponse(body io.Reader) ([]searchHit, error) {
	var sr searchResponse
	if err := json.NewDecoder(body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return sr.Hits.Hits, nil
}

// Store indexes records ranked in the given order. Existing documents for
// the same (id, number) are replaced; others are left in place.
func (s *Source) Store(ctx context.Context, records []contacts.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, r := range records {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": s.index, "_id": documentID(r)},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode bulk action: %w", err)
		}
		if err := enc.Encode(documentFor(r, i)); err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
	}

	res, err := esapi.BulkRequest{
		Body:    &buf,
		Refresh: s.refreshPolicy,
	}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to store contacts: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("failed to store contacts: %s", res.String())
	}
	return nil
}

func documentID(r contacts.Record) string {
	return strconv.FormatInt(r.ID, 10) + ":" + r.PhoneNumber
}

// Close implements contacts.Source. The HTTP transport holds no state that
// needs releasing.
func (s *Source) Close() error {
	return nil
}

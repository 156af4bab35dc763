package taxonomy

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BatchSize is the maximum number of taxon ids sent in a single taxonomy
// service request.
const BatchSize = 100

const taxonomyEndpoint = "/api/v2/taxonomy.json"

// Client resolves taxon ids to lineage ids at a target rank, caching
// every lineage it fetches for the lifetime of the Client. A Client is
// safe for concurrent use; callers typically keep one per run, as the
// cache is never evicted within that run (per the lookup contract).
type Client struct {
	baseURL   string
	http      *resty.Client
	log       zerolog.Logger
	batchSize int

	mu    sync.Mutex
	cache map[int][]*int
}

// Option customizes a Client constructed by NewClient.
type Option func(*Client)

// WithHTTPClient overrides the resty client used for requests, e.g. to
// install retries or a custom transport.
func WithHTTPClient(c *resty.Client) Option {
	return func(client *Client) {
		if c != nil {
			client.http = c
		}
	}
}

// WithLogger attaches a logger for batch-progress and failure reporting.
func WithLogger(l zerolog.Logger) Option {
	return func(client *Client) {
		client.log = l
	}
}

// WithBatchSize overrides the number of taxon ids sent per taxonomy
// request; non-positive values are ignored and BatchSize stays in
// effect.
func WithBatchSize(n int) Option {
	return func(client *Client) {
		if n > 0 {
			client.batchSize = n
		}
	}
}

// NewClient returns a Client talking to baseURL (e.g.
// "http://api.unipept.ugent.be"), with an empty lineage cache.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		http:      resty.New(),
		log:       log.Logger,
		batchSize: BatchSize,
		cache:     make(map[int][]*int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// taxonomyRequest is the JSON body of a taxonomy.json POST.
type taxonomyRequest struct {
	Input []int `json:"input"`
	Extra bool  `json:"extra"`
}

// ResolveToRank deduplicates taxonIDs, fetches the lineage of every
// not-yet-cached id in batches of BatchSize, then returns the distinct,
// non-null lineage ids at rank across all inputs.
func (c *Client) ResolveToRank(ctx context.Context, taxonIDs []int, rank string) ([]int, error) {
	rankIdx, ok := rankIndex[rank]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRank, rank)
	}

	distinct := dedupeInts(taxonIDs)
	if err := c.ensureCached(ctx, distinct); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int]struct{}, len(distinct))
	out := make([]int, 0, len(distinct))
	for _, id := range distinct {
		lineage := c.cache[id]
		if rankIdx >= len(lineage) || lineage[rankIdx] == nil {
			continue
		}
		v := *lineage[rankIdx]
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}

// ensureCached fetches and caches the lineage of every id in ids not
// already present in the cache, in batches of BatchSize.
func (c *Client) ensureCached(ctx context.Context, ids []int) error {
	c.mu.Lock()
	missing := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.cache[id]; !ok {
			missing = append(missing, id)
		}
	}
	c.mu.Unlock()

	for i := 0; i < len(missing); i += c.batchSize {
		end := i + c.batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[i:end]

		c.log.Debug().Int("batch", i/c.batchSize).Int("size", len(batch)).Msg("taxonomy lookup batch")

		if err := c.fetchBatch(ctx, batch); err != nil {
			return fmt.Errorf("%w: batch %d: %v", ErrLookupFailed, i/c.batchSize, err)
		}
	}
	return nil
}

func (c *Client) fetchBatch(ctx context.Context, batch []int) error {
	var rows []map[string]interface{}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(taxonomyRequest{Input: batch, Extra: true}).
		SetResult(&rows).
		Post(c.baseURL + taxonomyEndpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("status %s", resp.Status())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, row := range rows {
		taxonID, lineage, ok := parseLineageRow(row)
		if !ok {
			return fmt.Errorf("response row missing taxon_id")
		}
		c.cache[taxonID] = lineage
	}
	return nil
}

// parseLineageRow extracts the row's taxon_id and the 27-entry lineage
// (one optional id per NCBIRanks entry, read from "<rank>_id") from a
// decoded JSON object. JSON numbers decode as float64; any non-numeric
// or absent field yields a nil lineage entry.
func parseLineageRow(row map[string]interface{}) (int, []*int, bool) {
	rawID, ok := row["taxon_id"]
	if !ok {
		return 0, nil, false
	}
	taxonID, ok := asInt(rawID)
	if !ok {
		return 0, nil, false
	}

	lineage := make([]*int, len(NCBIRanks))
	for i, rank := range NCBIRanks {
		v, ok := asInt(row[rank+"_id"])
		if !ok {
			continue
		}
		id := v
		lineage[i] = &id
	}
	return taxonID, lineage, true
}

func asInt(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func dedupeInts(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vectorindex"
	"github.com/jonathan/resume-matcher/schemas"
)

const (
	defaultChunkSize   = 64
	defaultConcurrency = 4
)

// Store is the optional persistence hook for loaded postings. When set, the
// loader checks it for a cached embedding before calling the embedding
// service and writes every freshly embedded posting back.
type Store interface {
	GetJob(ctx context.Context, id string) (posting types.JobPosting, contentHash string, found bool, err error)
	UpsertJob(ctx context.Context, posting types.JobPosting, contentHash string) error
}

// Options tunes embedding throughput. Zero values select the defaults.
type Options struct {
	// ChunkSize is the number of postings embedded per batch call.
	ChunkSize int
	// Concurrency bounds the number of in-flight batch calls.
	Concurrency int
}

// Result summarizes one load.
type Result struct {
	Loaded   int // postings upserted into the index
	Embedded int // postings sent to the embedding service
	Reused   int // postings restored from the store's cached embeddings
}

// Loader validates job records, embeds their search text, and upserts the
// resulting postings into a vector index.
type Loader struct {
	embedder embedding.Embedder
	index    vectorindex.Index
	store    Store
	validate *validator.Validate
	opts     Options
}

// NewLoader builds a loader. store may be nil; embedding caching is then
// disabled and every load re-embeds the full corpus.
func NewLoader(embedder embedding.Embedder, index vectorindex.Index, store Store, opts Options) *Loader {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Loader{
		embedder: embedder,
		index:    index,
		store:    store,
		validate: validator.New(),
		opts:     opts,
	}
}

// LoadFile reads a JSON corpus file, validates it against the corpus schema,
// and loads every record. The file must hold a JSON array of job postings.
func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading corpus file: %w", err)
	}

	if err := l.checkSchema(path, raw); err != nil {
		return Result{}, err
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return Result{}, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}

	return l.Load(ctx, records)
}

// Load validates and loads a pre-parsed slice of records. Validation runs
// over the whole slice before any embedding call, so a bad record fails the
// load without partial index writes.
func (l *Loader) Load(ctx context.Context, records []Record) (Result, error) {
	if err := l.checkRecords(records); err != nil {
		return Result{}, err
	}

	fresh, reused, err := l.partition(ctx, records)
	if err != nil {
		return Result{}, err
	}

	for _, posting := range reused {
		if err := l.index.Upsert(posting); err != nil {
			return Result{}, fmt.Errorf("upserting cached posting %s: %w", posting.ID, err)
		}
	}

	if err := l.embedAndUpsert(ctx, fresh); err != nil {
		return Result{}, err
	}

	return Result{
		Loaded:   len(fresh) + len(reused),
		Embedded: len(fresh),
		Reused:   len(reused),
	}, nil
}

func (l *Loader) checkSchema(path string, raw []byte) error {
	schema := gojsonschema.NewBytesLoader(schemas.JobCorpus)
	document := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return fmt.Errorf("validating corpus file %s: %w", path, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &SchemaError{Path: path, Problems: problems}
}

func (l *Loader) checkRecords(records []Record) error {
	seen := make(map[string]int, len(records))
	for i, record := range records {
		if err := l.validate.Struct(record); err != nil {
			return &RecordError{
				Index:   i,
				ID:      record.ID,
				Message: "failed validation",
				Cause:   err,
			}
		}
		if prev, ok := seen[record.ID]; ok {
			return &RecordError{
				Index:   i,
				ID:      record.ID,
				Message: fmt.Sprintf("duplicate id, first seen at record %d", prev),
			}
		}
		seen[record.ID] = i
	}
	return nil
}

// partition splits records into those needing a fresh embedding and postings
// restorable from the store. A cached posting is reused only when its content
// hash matches and its embedding fits the current embedder.
func (l *Loader) partition(ctx context.Context, records []Record) (fresh []Record, reused []types.JobPosting, err error) {
	if l.store == nil {
		return records, nil, nil
	}

	for _, record := range records {
		hash := ContentHash(record.Posting().SearchText(), l.embedder.ModelVersion())
		cached, cachedHash, found, err := l.store.GetJob(ctx, record.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("looking up cached posting %s: %w", record.ID, err)
		}
		if found && cachedHash == hash &&
			cached.Embedding.Dimension() == l.embedder.Dimension() &&
			cached.Embedding.ModelVersion == l.embedder.ModelVersion() {
			reused = append(reused, cached)
			continue
		}
		fresh = append(fresh, record)
	}
	return fresh, reused, nil
}

func (l *Loader) embedAndUpsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(l.opts.Concurrency)

	// Chunks touch disjoint posting ids, and both the index and the store
	// accept concurrent upserts, so chunks need no coordination beyond the
	// errgroup itself.
	for start := 0; start < len(records); start += l.opts.ChunkSize {
		chunk := records[start:min(start+l.opts.ChunkSize, len(records))]
		group.Go(func() error {
			texts := make([]string, len(chunk))
			for i, record := range chunk {
				texts[i] = record.Posting().SearchText()
			}

			vectors, err := l.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return fmt.Errorf("embedding corpus chunk: %w", err)
			}

			for i, record := range chunk {
				posting := record.Posting()
				vector := vectors[i]
				vector.SourceID = posting.ID
				posting.Embedding = vector

				if err := l.index.Upsert(posting); err != nil {
					return fmt.Errorf("upserting posting %s: %w", posting.ID, err)
				}
				if l.store != nil {
					hash := ContentHash(texts[i], l.embedder.ModelVersion())
					if err := l.store.UpsertJob(ctx, posting, hash); err != nil {
						return fmt.Errorf("storing posting %s: %w", posting.ID, err)
					}
				}
			}
			return nil
		})
	}

	return group.Wait()
}

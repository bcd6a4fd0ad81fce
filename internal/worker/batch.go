package worker

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/pickwise/internal/model"
)

// Recommender runs one recommendation request end to end
type Recommender interface {
	Recommend(ctx context.Context, req model.Request) (*model.Result, error)
}

// RequestJob is one queued recommendation request
type RequestJob struct {
	Index       int
	Request     model.Request
	Recommender Recommender
}

// Execute runs the request
func (j *RequestJob) Execute(ctx context.Context) Result {
	result, err := j.Recommender.Recommend(ctx, j.Request)
	return &RequestResult{
		Index:   j.Index,
		Request: j.Request,
		Result:  result,
		Error:   err,
	}
}

// RequestResult is the outcome of one request in a batch
type RequestResult struct {
	Index   int           `json:"-"`
	Request model.Request `json:"request"`
	Result  *model.Result `json:"result,omitempty"`
	Error   error         `json:"-"`
}

// GetError returns the error from the request
func (r *RequestResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many independent requests concurrently
type BatchProcessor struct {
	recommender Recommender
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(recommender Recommender, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		recommender: recommender,
		concurrency: concurrency,
	}
}

// Process runs requests through the worker pool and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, requests []model.Request) []*RequestResult {
	if len(requests) == 0 {
		return []*RequestResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, req := range requests {
		pool.Submit(&RequestJob{
			Index:       i,
			Request:     req,
			Recommender: b.recommender,
		})
	}

	results := pool.Wait()

	out := make([]*RequestResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*RequestResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads requests from a YAML file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*RequestResult, error) {
	requests, err := ReadRequestsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	return b.Process(ctx, requests), nil
}

// requestFile is the on-disk batch format
type requestFile struct {
	Requests []model.Request `yaml:"requests"`
}

// ReadRequestsFromFile loads a YAML list of requests, either under a
// top-level "requests" key or as a bare list. Identical requests are
// kept once.
func ReadRequestsFromFile(filePath string) ([]model.Request, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var file requestFile
	if err := yaml.Unmarshal(data, &file); err != nil || len(file.Requests) == 0 {
		var list []model.Request
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			if err != nil {
				return nil, fmt.Errorf("parse requests: %w", err)
			}
			return nil, fmt.Errorf("parse requests: %w", listErr)
		}
		file.Requests = list
	}

	var requests []model.Request
	seen := make(map[string]bool)
	for _, req := range file.Requests {
		key := strings.ToLower(strings.TrimSpace(req.Product)) + "|" + strings.ToLower(strings.Join(req.Attributes, ","))
		if seen[key] {
			continue
		}
		seen[key] = true
		requests = append(requests, req)
	}
	return requests, nil
}

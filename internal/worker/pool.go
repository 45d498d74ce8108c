package worker

import (
	"context"
	"sync"

	"github.com/kartavantaj/kampanya/internal/model"
	"github.com/kartavantaj/kampanya/internal/pipeline"
)

// Campaign is one input document of a batch run.
type Campaign struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Result pairs a campaign with its extraction outcome.
type Result struct {
	Campaign Campaign
	Record   *model.ExtractedRecord
	Err      error
}

// Pool runs extractions concurrently over a fixed number of workers.
type Pool struct {
	pipe    *pipeline.Pipeline
	workers int
}

// NewPool creates a pool running pipe with the given worker count.
func NewPool(pipe *pipeline.Pipeline, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{pipe: pipe, workers: workers}
}

// Process extracts all campaigns and returns results in input order.
// Cancelled campaigns carry ctx.Err() in their result.
func (p *Pool) Process(ctx context.Context, campaigns []Campaign) []Result {
	results := make([]Result, len(campaigns))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = Result{Campaign: campaigns[i], Err: err}
					continue
				}
				doc := pipeline.Document{Title: campaigns[i].Title, Text: campaigns[i].Text}
				results[i] = Result{
					Campaign: campaigns[i],
					Record:   p.pipe.Extract(ctx, doc),
				}
			}
		}()
	}

	for i := range campaigns {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

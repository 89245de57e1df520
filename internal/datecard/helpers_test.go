package datecard

import (
	"context"
	"sync"
)

// sequenceRand returns its values in order, cycling, each reduced modulo n.
type sequenceRand struct {
	mu     sync.Mutex
	values []int
	calls  int
}

func newSequenceRand(values ...int) *sequenceRand {
	return &sequenceRand{values: values}
}

func (r *sequenceRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v % n
}

// stubSearchClient answers each Search call with the next scripted reply.
type stubSearchClient struct {
	mu      sync.Mutex
	replies []stubReply
	queries []SearchQuery
}

type stubReply struct {
	results []SearchResult
	err     error
	block   bool
}

func (c *stubSearchClient) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	c.mu.Lock()
	i := len(c.queries)
	c.queries = append(c.queries, q)
	var reply stubReply
	if i < len(c.replies) {
		reply = c.replies[i]
	}
	c.mu.Unlock()

	if reply.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if reply.results == nil && reply.err == nil {
		return []SearchResult{}, nil
	}
	return reply.results, reply.err
}

func (c *stubSearchClient) Queries() []SearchQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SearchQuery(nil), c.queries...)
}

func float64Ptr(v float64) *float64 {
	return &v
}

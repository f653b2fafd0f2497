package pipeline

import "context"

// Fetcher acquires raw source material for a topic before normalization
// runs. A nil fetcher means the raw directories are populated out of
// band and Prepare works with whatever is already on disk.
type Fetcher interface {
	// FetchTopic downloads raw material for the topic into the
	// configured raw directories.
	FetchTopic(ctx context.Context, topic string) error
}

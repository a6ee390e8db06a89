package quiz

import (
	"context"
	"sort"
	"sync"
)

// DefaultBatch is the number of questions requested per refill.
const DefaultBatch = 10

// Fetcher supplies a batch of questions for a topic.
type Fetcher interface {
	Fetch(ctx context.Context, topic string, count int) ([]Question, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, topic string, count int) ([]Question, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, topic string, count int) ([]Question, error) {
	return f(ctx, topic, count)
}

// Cache 按主题缓存题目：取空后整批补充，每次弹出一道
type Cache struct {
	mu      sync.Mutex
	fetcher Fetcher
	batch   int
	queues  map[string][]Question
}

// NewCache 创建缓存；batch <= 0 时使用 DefaultBatch
func NewCache(fetcher Fetcher, batch int) *Cache {
	if batch <= 0 {
		batch = DefaultBatch
	}
	return &Cache{
		fetcher: fetcher,
		batch:   batch,
		queues:  make(map[string][]Question),
	}
}

// Next pops the next question for topic, refilling when the queue is empty.
// It returns nil when the source has nothing for the topic.
func (c *Cache) Next(ctx context.Context, topic string) (*Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue := c.queues[topic]
	if len(queue) == 0 {
		batch, err := c.fetcher.Fetch(ctx, topic, c.batch)
		if err != nil {
			return nil, err
		}
		queue = batch
	}
	if len(queue) == 0 {
		delete(c.queues, topic)
		return nil, nil
	}
	q := queue[len(queue)-1]
	c.queues[topic] = queue[:len(queue)-1]
	return &q, nil
}

// Pending returns how many cached questions remain for topic.
func (c *Cache) Pending(topic string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queues[topic])
}

// BankFetcher serves batches from an in-memory question bank, cycling
// through the questions of each topic.
type BankFetcher struct {
	mu      sync.Mutex
	byTopic map[string][]Question
	offset  map[string]int
}

// NewBankFetcher 按主题索引题库
func NewBankFetcher(questions []Question) *BankFetcher {
	b := &BankFetcher{
		byTopic: make(map[string][]Question),
		offset:  make(map[string]int),
	}
	for _, q := range questions {
		b.byTopic[q.Topic] = append(b.byTopic[q.Topic], q)
	}
	return b
}

// Topics 返回所有主题
func (b *BankFetcher) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	topics := make([]string, 0, len(b.byTopic))
	for t := range b.byTopic {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// Fetch returns up to count questions of topic.
func (b *BankFetcher) Fetch(ctx context.Context, topic string, count int) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	all := b.byTopic[topic]
	if len(all) == 0 {
		return nil, nil
	}
	if count > len(all) {
		count = len(all)
	}
	out := make([]Question, 0, count)
	start := b.offset[topic]
	for i := 0; i < count; i++ {
		out = append(out, all[(start+i)%len(all)])
	}
	b.offset[topic] = (start + count) % len(all)
	return out, nil
}

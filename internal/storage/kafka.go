package storage

import (
	"context"
	"encoding/json"
	"log"

	"floorsync/internal/domain"

	"github.com/segmentio/kafka-go"
)

// FeedPublisher emits change notifications after every mutating call so that
// the other terminals converge on the next signal.
type FeedPublisher struct {
	Writer *kafka.Writer
}

func NewFeedPublisher(writer *kafka.Writer) *FeedPublisher {
	return &FeedPublisher{Writer: writer}
}

func (p *FeedPublisher) PublishChange(ctx context.Context, ev domain.ChangeEvent) error {
	payload, _ := json.Marshal(ev)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Kind + ":" + ev.BranchID),
		Value: payload,
	})
}

// KafkaFeed turns the shared change topic into per-scope subscriptions. Each
// subscription gets its own reader and consumer group so every terminal sees
// every notification.
type KafkaFeed struct {
	// NewReader builds a reader on the change topic for the given group id.
	NewReader func(groupID string) *kafka.Reader
	// NewGroupID yields a unique consumer group per subscription.
	NewGroupID func() string
}

// Subscribe delivers matching change events to notify until the returned
// cancel function is called. Read and decode errors are logged and swallowed;
// the poll interval is the availability backstop, push is best effort.
func (f *KafkaFeed) Subscribe(kinds []string, branchID string, notify func(domain.ChangeEvent)) func() {
	reader := f.NewReader(f.NewGroupID())
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		for {
			message, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Warning: change feed read failed: %v", err)
				continue
			}

			var ev domain.ChangeEvent
			if err := json.Unmarshal(message.Value, &ev); err != nil {
				log.Printf("Warning: dropping malformed change event: %v", err)
				continue
			}
			for _, kind := range kinds {
				if ev.Matches(kind, branchID) {
					notify(ev)
					break
				}
			}
		}
	}()

	return func() {
		cancel()
		if err := reader.Close(); err != nil {
			log.Printf("Warning: closing change feed reader: %v", err)
		}
	}
}

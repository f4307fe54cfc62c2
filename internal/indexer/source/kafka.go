package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
)

// KafkaSource replays extracted documents from a topic. The scan ends once
// IdleTimeout passes without a new message.
type KafkaSource struct {
	Config      config.KafkaConfig
	Topic       string
	IdleTimeout time.Duration
}

func (k KafkaSource) Scan(ctx context.Context, emit func(Job) error) error {
	consumer := kafka.NewConsumer(k.Config, k.Topic, handleDocument(emit))
	defer consumer.Close()
	n, err := consumer.Drain(ctx, k.IdleTimeout)
	if err != nil {
		return fmt.Errorf("draining topic %s: %w", k.Topic, err)
	}
	logger.WithComponent("kafka-source").Info("topic drained", "topic", k.Topic, "documents", n)
	return nil
}

// handleDocument decodes each message into a Document. Undecodable
// messages become jobs that fail extraction, so the builder counts them.
func handleDocument(emit func(Job) error) kafka.MessageHandler {
	seq := 0
	return func(ctx context.Context, key []byte, value []byte) error {
		seq++
		name := string(key)
		if name == "" {
			name = "message-" + strconv.Itoa(seq)
		}
		doc, err := kafka.DecodeJSON[Document](value)
		if err != nil {
			return emit(Job{
				Name: name,
				Extract: func() (string, string, string, error) {
					return "", "", "", fmt.Errorf("%s: %w", name, err)
				},
			})
		}
		return emit(doc.Job(name))
	}
}

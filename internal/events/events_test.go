package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"github.com/gamescore-service/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishScoreEvent(t *testing.T) {
	mock := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "Game 1/Level 1" {
			t.Errorf("key = %q, want %q", key, "Game 1/Level 1")
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event domain.ScoreEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.Player != "player_1" || event.Value != 500 || event.Action != domain.ScoreActionSubmit {
			t.Errorf("decoded event = %+v", event)
		}
		return nil
	})

	p := NewKafkaPublisherWith(mock, "gamescore-events", testLogger())
	err := p.PublishScoreEvent(context.Background(), domain.ScoreEvent{
		Game:      "Game 1",
		Level:     "Level 1",
		Player:    "player_1",
		Value:     500,
		Action:    domain.ScoreActionSubmit,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("PublishScoreEvent: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestPublishScoreEventBrokerFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisherWith(mock, "gamescore-events", testLogger())
	err := p.PublishScoreEvent(context.Background(), domain.ScoreEvent{
		Game: "Game 1", Level: "Level 1", Player: "player_1",
		Value: 1, Action: domain.ScoreActionSubmit,
	})
	if err == nil {
		t.Fatal("expected broker failure to surface")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.PublishScoreEvent(context.Background(), domain.ScoreEvent{}); err != nil {
		t.Fatalf("nop publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
}

package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"review-service/internal/model"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectReviewCreated = "review.created"
	SubjectReviewDeleted = "review.deleted"
)

type EventPublisher interface {
	PublishReviewCreated(review *model.Review) error
	PublishReviewDeleted(reviewID, userID uuid.UUID) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

type ReviewCreatedEvent struct {
	EventType string    `json:"event_type"`
	ReviewID  uuid.UUID `json:"review_id"`
	UserID    uuid.UUID `json:"user_id"`
	ListingID uuid.UUID `json:"listing_id"`
	Address   string    `json:"address"`
	TotalRate float64   `json:"total_rate"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewDeletedEvent struct {
	EventType string    `json:"event_type"`
	ReviewID  uuid.UUID `json:"review_id"`
	UserID    uuid.UUID `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func NewReviewCreatedEvent(review *model.Review) ReviewCreatedEvent {
	return ReviewCreatedEvent{
		EventType: SubjectReviewCreated,
		ReviewID:  review.ID,
		UserID:    review.UserID,
		ListingID: review.ListingID,
		Address:   review.Address,
		TotalRate: review.TotalRate,
		CreatedAt: review.CreatedAt,
	}
}

func (p *NatsPublisher) PublishReviewCreated(review *model.Review) error {
	return p.publish(SubjectReviewCreated, NewReviewCreatedEvent(review))
}

func (p *NatsPublisher) PublishReviewDeleted(reviewID, userID uuid.UUID) error {
	return p.publish(SubjectReviewDeleted, ReviewDeletedEvent{
		EventType: SubjectReviewDeleted,
		ReviewID:  reviewID,
		UserID:    userID,
		DeletedAt: time.Now(),
	})
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("publishing to NATS failed", "subject", subject, "error", err)
		return err
	}

	slog.Debug("published event", "subject", subject)
	return nil
}

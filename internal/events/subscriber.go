package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"review-service/internal/model"
	"review-service/internal/repository"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectImageUploaded = "image.uploaded.*"
	imageDLQSubject      = "image.uploaded.failed"

	maxRetries = 3
	retryDelay = 2 * time.Second
)

// ImageUploadedEvent is emitted by the upload service once a file is in the
// bucket. URL is either an absolute URL or an object key.
type ImageUploadedEvent struct {
	EventType string          `json:"event_type"`
	TargetID  uuid.UUID       `json:"target_id"`
	ImageType model.ImageType `json:"image_type"`
	URL       string          `json:"url"`
	IsMain    bool            `json:"is_main"`
}

// ImageSubscriber records uploaded images so the resolver can find them.
type ImageSubscriber struct {
	natsConn   *nats.Conn
	imageRepo  repository.ImageRepository
	retryDelay time.Duration
}

func NewImageSubscriber(natsURL string, imageRepo repository.ImageRepository) (*ImageSubscriber, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}
	slog.Info("image subscriber connected to NATS")

	s := &ImageSubscriber{
		natsConn:   nc,
		imageRepo:  imageRepo,
		retryDelay: retryDelay,
	}

	if _, err := nc.Subscribe(SubjectImageUploaded, s.onMessage); err != nil {
		nc.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", SubjectImageUploaded, err)
	}
	slog.Info("image subscriber listening", "subject", SubjectImageUploaded)

	return s, nil
}

func (s *ImageSubscriber) Close() {
	s.natsConn.Close()
}

func (s *ImageSubscriber) onMessage(msg *nats.Msg) {
	if msg.Subject == imageDLQSubject {
		return
	}

	err := s.store(context.Background(), msg.Data)
	if err == nil {
		return
	}

	slog.Error("image event dropped to DLQ", "subject", msg.Subject, "error", err)
	if err := s.natsConn.Publish(imageDLQSubject, msg.Data); err != nil {
		slog.Error("publishing to DLQ failed", "subject", imageDLQSubject, "error", err)
	}
}

// store decodes one event and saves it, retrying storage failures.
func (s *ImageSubscriber) store(ctx context.Context, data []byte) error {
	var event ImageUploadedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decoding image event: %w", err)
	}
	if event.TargetID == uuid.Nil || event.URL == "" {
		return errors.New("image event missing target or url")
	}

	var saveErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		image := &model.Image{
			TargetID:  event.TargetID,
			ImageType: event.ImageType,
			URL:       event.URL,
			IsMain:    event.IsMain,
		}
		saveErr = s.imageRepo.Create(ctx, image)
		if saveErr == nil {
			slog.Info("image recorded", "image_id", image.ID, "target_id", image.TargetID, "attempt", attempt)
			return nil
		}

		slog.Warn("saving image failed", "attempt", attempt, "error", saveErr)
		if attempt < maxRetries {
			time.Sleep(s.retryDelay)
		}
	}

	return fmt.Errorf("saving image after %d attempts: %w", maxRetries, saveErr)
}

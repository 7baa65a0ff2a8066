package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"review-service/internal/events"
	"review-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestReviewCreatedEvent_Fields(t *testing.T) {
	r := &model.Review{ID: uuid.New(), UserID: uuid.New(), ListingID: uuid.New(), Address: "123 Main St", TotalRate: 4.5, CreatedAt: time.Now()}

	b, err := json.Marshal(events.NewReviewCreatedEvent(r))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "review.created", decoded["event_type"])
	require.Equal(t, r.ID.String(), decoded["review_id"])
	require.Equal(t, "123 Main St", decoded["address"])
	require.Equal(t, 4.5, decoded["total_rate"])
}

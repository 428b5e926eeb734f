package amqp

import (
	"encoding/json"
	"time"
)

// RefreshMessage announces that a fetch cycle completed and a new snapshot is
// available. Consumers reload from the snapshot store rather than carrying
// the dataset in the message.
type RefreshMessage struct {
	CycleID     string    `json:"cycle_id"`
	RecordCount int       `json:"record_count"`
	FetchedAt   time.Time `json:"fetched_at"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRefreshMessage builds a refresh announcement for one fetch cycle.
func NewRefreshMessage(cycleID string, recordCount int, fetchedAt time.Time) *RefreshMessage {
	return &RefreshMessage{
		CycleID:     cycleID,
		RecordCount: recordCount,
		FetchedAt:   fetchedAt,
		Timestamp:   time.Now(),
	}
}

func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

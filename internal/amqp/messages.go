package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record kinds a sync message may carry.
const (
	KindTransaction = "transaction"
	KindRental      = "rental"
)

// RecordSyncMessage is a lightweight notification that a record changed.
// It carries only the kind, ID and version; the worker fetches the full
// record from the database before exporting it.
type RecordSyncMessage struct {
	MessageID string    `json:"message_id"`
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(kind string, id, version int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		MessageID: uuid.NewString(),
		Kind:      kind,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *RecordSyncMessage) Validate() error {
	if m.Kind != KindTransaction && m.Kind != KindRental {
		return fmt.Errorf("unknown record kind %q", m.Kind)
	}
	if m.ID <= 0 {
		return fmt.Errorf("invalid record id %d", m.ID)
	}
	return nil
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}

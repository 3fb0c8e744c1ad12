package amqp

import (
	"encoding/json"
	"time"
)

// DomainFigures carries one domain's headline numbers in a refresh message.
// Totals stay in thousandths so consumers get the exact value the pipeline
// computed.
type DomainFigures struct {
	Records         int   `json:"records"`
	RowsDropped     int   `json:"rowsDropped"`
	GrandTotalMilli int64 `json:"grandTotalMilli"`
}

// SnapshotRefreshedMessage announces that a new dashboard snapshot exists.
type SnapshotRefreshedMessage struct {
	SnapshotID int64                    `json:"snapshotId"`
	TakenAt    time.Time                `json:"takenAt"`
	Domains    map[string]DomainFigures `json:"domains"`
}

func NewSnapshotRefreshedMessage(snapshotID int64, takenAt time.Time) *SnapshotRefreshedMessage {
	return &SnapshotRefreshedMessage{
		SnapshotID: snapshotID,
		TakenAt:    takenAt,
		Domains:    make(map[string]DomainFigures),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *SnapshotRefreshedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotRefreshedMessageFromJSON creates a message from JSON bytes.
func SnapshotRefreshedMessageFromJSON(data []byte) (*SnapshotRefreshedMessage, error) {
	var msg SnapshotRefreshedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

package domain

import "context"

const (
	SpendRecordAdded HistoryEventType = iota
	HistoryReset
)

var (
	historyTypeString = map[HistoryEventType]string{
		SpendRecordAdded: "SpendRecordAdded",
		HistoryReset:     "HistoryReset",
	}
)

type HistoryEventType int

func (t HistoryEventType) String() string {
	return historyTypeString[t]
}

// HistoryEvent holds info about an event occured within the repository.
type HistoryEvent struct {
	EventType HistoryEventType
	Country   string
	Record    *SpendRecord
}

// HistoryRepository is the abstraction for any kind of database intended
// to persist SpendRecords.
type HistoryRepository interface {
	// AddRecord adds the provided record to the repository by preventing
	// duplicates.
	// Generates a SpendRecordAdded event if successful.
	AddRecord(ctx context.Context, record *SpendRecord) (bool, error)
	// GetHistory returns the records of the given country, newest first.
	GetHistory(ctx context.Context, country string) ([]*SpendRecord, error)
	// ResetHistory deletes all records of the given country and returns how
	// many were deleted.
	// Generates a HistoryReset event if successful.
	ResetHistory(ctx context.Context, country string) (int, error)
	// GetEventChannel returns the channel of HistoryEvents.
	GetEventChannel() chan HistoryEvent
}

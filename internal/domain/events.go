package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryChanged   EventType = "QueryChanged"
	EventFetchStarted   EventType = "FetchStarted"
	EventPageApplied    EventType = "PageApplied"
	EventStaleResponse  EventType = "StaleResponse"
	EventFetchFailed    EventType = "FetchFailed"
	EventFetchCancelled EventType = "FetchCancelled"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryChangedEvent is emitted on every keystroke that changes the query
type QueryChangedEvent struct {
	Query string
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// FetchStartedEvent is emitted when a request goes out to the store directory
type FetchStartedEvent struct {
	Request FetchRequest
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// PageAppliedEvent is emitted when a response was merged into the session
type PageAppliedEvent struct {
	Request    FetchRequest
	Received   int // stores in the applied portion
	Displayed  int // stores displayed after the merge
	TotalCount int
}

func (e PageAppliedEvent) Type() EventType { return EventPageApplied }

// StaleResponseEvent is emitted when a response arrived for a superseded request
type StaleResponseEvent struct {
	Request      FetchRequest
	CurrentQuery string
}

func (e StaleResponseEvent) Type() EventType { return EventStaleResponse }

// FetchFailedEvent is emitted when the store directory could not be queried
type FetchFailedEvent struct {
	Request FetchRequest
	Err     error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// FetchCancelledEvent is emitted when an in-flight request was cancelled
// because the query changed or the session closed
type FetchCancelledEvent struct {
	Request FetchRequest
}

func (e FetchCancelledEvent) Type() EventType { return EventFetchCancelled }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

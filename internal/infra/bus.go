package infra

// EventType represents the type of event in the system
type EventType int

const (
	RowsLoaded EventType = iota
	RowsCleaned
	CustomersAggregated
	PopulationDerived
	CustomersSegmented
)

// String returns the string representation of the EventType
func (et EventType) String() string {
	switch et {
	case RowsLoaded:
		return "RowsLoaded"
	case RowsCleaned:
		return "RowsCleaned"
	case CustomersAggregated:
		return "CustomersAggregated"
	case PopulationDerived:
		return "PopulationDerived"
	case CustomersSegmented:
		return "CustomersSegmented"
	default:
		return "Unknown"
	}
}

type Event interface{ EventType() EventType }
type Handler func(Event)

// Bus delivers events synchronously, in subscription order. A nil *Bus
// drops everything published to it.
type Bus struct{ subs map[EventType][]Handler }

func NewBus() *Bus { return &Bus{subs: map[EventType][]Handler{}} }
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	for _, h := range b.subs[e.EventType()] {
		h(e)
	}
}
func (b *Bus) Subscribe(evt EventType, h Handler) { b.subs[evt] = append(b.subs[evt], h) }

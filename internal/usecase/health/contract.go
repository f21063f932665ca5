package health

import "context"

// DBPinger checks profile store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Heartbeater checks a model service's authenticated /check endpoint.
type Heartbeater interface {
	Heartbeat(ctx context.Context) error
}

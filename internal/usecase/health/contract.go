package health

import "context"

// CachePinger checks cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// LLMChecker checks language model provider availability.
type LLMChecker interface {
	HealthCheck(ctx context.Context) error
}

package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// OracleChecker checks generative backend availability.
type OracleChecker interface {
	HealthCheck(ctx context.Context) error
}

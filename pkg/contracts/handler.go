package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// HealthChecker is a dependency the readiness probe pings.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

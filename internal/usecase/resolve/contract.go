package resolve

import (
	"context"

	"github.com/kailas-cloud/onimo/internal/domain/answer"
)

// Source looks a keyword up in one external service. Implementations never
// return errors: every failure is reported as answer.NotFound and logged by
// the implementation. Resolve must honor ctx cancellation.
type Source interface {
	Origin() answer.Origin
	Resolve(ctx context.Context, keyword string, detail answer.Detail) answer.SourceResult
}

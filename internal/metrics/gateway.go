package metrics

import (
	"context"
	"time"

	"github.com/Behyna/paymentbot/pkg/botapi"
)

type instrumentedGateway struct {
	next    botapi.Gateway
	metrics *Metrics
}

// InstrumentGateway counts and times every call made through next.
func InstrumentGateway(next botapi.Gateway, m *Metrics) botapi.Gateway {
	return &instrumentedGateway{next: next, metrics: m}
}

func (g *instrumentedGateway) Do(ctx context.Context, action botapi.Action) (botapi.Result, error) {
	start := time.Now()
	res, err := g.next.Do(ctx, action)
	g.metrics.RecordOutboundCall(action.Method(), err, time.Since(start))
	return res, err
}

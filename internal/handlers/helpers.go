package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/session"
)

// viewData assembles the data bag common to every page: the cart badge
// count, recomputed on each request, and any pending flash messages.
func viewData(c echo.Context, extra map[string]any) map[string]any {
	sess := session.FromContext(c)
	data := map[string]any{
		"cart_count": sess.Cart.Count(),
		"flashes":    sess.PopFlashes(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// publish is fire-and-forget: event delivery never fails a request,
// and a nil producer disables publishing entirely.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

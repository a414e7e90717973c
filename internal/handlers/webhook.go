package handlers

import (
	"io"
	"log/slog"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/gostays-api/internal/identity"
)

type WebhookHandler struct {
	verifier   *identity.Verifier
	reconciler ReconcilerInterface
	log        *slog.Logger
}

// NewWebhookHandler accepts a nil verifier when no webhook secret is
// configured; deliveries are then acknowledged without processing so the
// provider does not retry into a misconfigured deployment forever.
func NewWebhookHandler(verifier *identity.Verifier, reconciler ReconcilerInterface, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, reconciler: reconciler, log: log}
}

func (h *WebhookHandler) HandleIdPEvent(c *drift.Context) {
	if h.verifier == nil {
		h.log.Warn("webhook received but no webhook secret is configured, skipping")
		_ = c.JSON(200, map[string]string{"message": "webhook secret not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.BadRequest("failed to read body")
		return
	}

	err = h.verifier.Verify(
		body,
		c.GetHeader(identity.HeaderWebhookID),
		c.GetHeader(identity.HeaderWebhookTimestamp),
		c.GetHeader(identity.HeaderWebhookSignature),
	)
	if err != nil {
		h.log.Warn("webhook verification failed", "error", err)
		c.BadRequest("webhook verification failed")
		return
	}

	ev, err := identity.ParseEvent(body)
	if err != nil {
		h.log.Warn("webhook payload rejected", "error", err)
		c.BadRequest("invalid webhook payload")
		return
	}

	if ev.Kind == identity.KindUnknown {
		h.log.Info("ignoring webhook event", "type", ev.RawType)
		_ = c.JSON(200, map[string]string{"message": "event ignored"})
		return
	}

	res, err := h.reconciler.Reconcile(c.Request.Context(), ev)
	if err != nil {
		// 5xx so the provider redelivers. Reconciliation is idempotent, so
		// redelivery after a transient store failure is safe.
		h.log.Error("webhook reconcile failed", "type", ev.RawType, "external_id", ev.ExternalID, "error", err)
		c.InternalServerError("failed to process webhook")
		return
	}

	h.log.Info("webhook processed", "type", ev.RawType, "external_id", ev.ExternalID, "outcome", res.Outcome)
	_ = c.JSON(200, map[string]string{"message": "ok"})
}

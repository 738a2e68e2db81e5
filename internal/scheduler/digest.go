package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"modtok/internal/email"
	slotsservice "modtok/internal/slots/service"
	"modtok/platform/logger"
)

// DigestHandler builds and mails the slot expiry digest.
type DigestHandler struct {
	slots     *slotsservice.Service
	sender    *email.Sender
	recipient string
	days      int
	log       *logger.Logger
}

// NewDigestHandler creates the digest handler. The sender may be nil; the
// digest is then logged only.
func NewDigestHandler(slots *slotsservice.Service, sender *email.Sender, recipient string, days int, log *logger.Logger) *DigestHandler {
	return &DigestHandler{
		slots:     slots,
		sender:    sender,
		recipient: recipient,
		days:      days,
		log:       log,
	}
}

// HandleSlotExpiryDigest mails a summary of active slot orders ending
// within the configured window, so editors can renew promotions before
// they lapse.
func (h *DigestHandler) HandleSlotExpiryDigest(ctx context.Context, _ *asynq.Task) error {
	orders, err := h.slots.OrdersEndingWithin(ctx, h.days)
	if err != nil {
		return fmt.Errorf("list ending slot orders: %w", err)
	}

	h.log.Info("slot expiry digest", "endingCount", len(orders), "windowDays", h.days)
	if len(orders) == 0 {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Slot orders ending within the next %d days:\n\n", h.days)
	for _, order := range orders {
		fmt.Fprintf(&body, "- %s slot %s ends %s", order.SlotType, order.ID, order.EndDate)
		if order.ContentType != nil && order.ContentID != nil {
			fmt.Fprintf(&body, " (%s %s)", *order.ContentType, *order.ContentID)
		}
		body.WriteString("\n")
	}

	if h.recipient == "" {
		return nil
	}

	subject := fmt.Sprintf("%d slot orders expiring soon", len(orders))
	if err := h.sender.Send(ctx, h.recipient, subject, body.String()); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}

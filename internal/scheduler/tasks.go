// Package scheduler runs background tasks on an asynq queue: currently
// the daily slot expiry digest mailed to the site operators.
package scheduler

import "github.com/hibiken/asynq"

// TypeSlotExpiryDigest is the task type for the daily expiry digest.
const TypeSlotExpiryDigest = "slots:expiry_digest"

// NewSlotExpiryDigestTask creates the digest task. It carries no payload;
// the handler reads everything from the store at execution time.
func NewSlotExpiryDigestTask() *asynq.Task {
	return asynq.NewTask(TypeSlotExpiryDigest, nil)
}

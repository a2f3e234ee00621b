// Package notify bridges freshly inserted notifications to connected
// clients over Redis pub/sub. The fan-out consumer publishes each stored row
// to the recipient's channel; the SSE endpoint subscribes to that channel for
// the lifetime of the request. Delivery is best effort: a client that is not
// connected simply sees the row on its next list fetch.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/givebridge/givebridge/internal/model"
)

// ChannelFor returns the pub/sub channel carrying one recipient's alerts.
func ChannelFor(recipientID uint64) string {
	return fmt.Sprintf("notify:%d", recipientID)
}

// Publish pushes a stored notification to the recipient's live channel.
// A nil Redis client (Redis down at startup) disables the live feed without
// affecting persistence; errors are logged, not propagated.
func Publish(ctx context.Context, rdb *redis.Client, n *model.Notification) {
	if rdb == nil {
		return
	}
	body, err := json.Marshal(n)
	if err != nil {
		log.Printf("notify: marshal notification %d failed: %v", n.ID, err)
		return
	}
	if err := rdb.Publish(ctx, ChannelFor(n.RecipientID), body).Err(); err != nil {
		log.Printf("notify: publish to %s failed: %v", ChannelFor(n.RecipientID), err)
	}
}

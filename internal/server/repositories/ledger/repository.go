package ledger

import "context"

type Repository interface {
	Transfer(ctx context.Context, senderID string, receiverID string, amount int) error
}

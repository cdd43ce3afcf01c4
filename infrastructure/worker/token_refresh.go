package worker

import (
	"context"
	"time"

	"omnipost/domain/repository"
	"omnipost/infrastructure/logger"
)

const (
	queueSize      = 64
	persistTimeout = 5 * time.Second
)

type refreshedToken struct {
	accountID   string
	accessToken string
}

// TokenRefreshNotifier persists rotated access tokens off the publish path.
// Notify never blocks; when the queue is full the update is dropped and
// logged, and the stale stored token is refreshed again on the next publish.
type TokenRefreshNotifier struct {
	accounts repository.ISocialAccount
	queue    chan refreshedToken
}

func NewTokenRefreshNotifier(accounts repository.ISocialAccount) *TokenRefreshNotifier {
	return &TokenRefreshNotifier{
		accounts: accounts,
		queue:    make(chan refreshedToken, queueSize),
	}
}

// Notify enqueues a rotated token for persistence.
func (n *TokenRefreshNotifier) Notify(accountID, accessToken string) {
	select {
	case n.queue <- refreshedToken{accountID: accountID, accessToken: accessToken}:
	default:
		logger.GetLogger().WithField("account_id", accountID).
			Warn("token refresh queue is full, dropping update")
	}
}

// Start consumes the queue until ctx is canceled. Intended to run under an
// errgroup next to the HTTP server.
func (n *TokenRefreshNotifier) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item := <-n.queue:
			n.persist(ctx, item)
		}
	}
}

func (n *TokenRefreshNotifier) persist(ctx context.Context, item refreshedToken) {
	err := n.update(ctx, item)
	if err == nil {
		logger.GetLogger().WithField("account_id", item.accountID).Info("persisted refreshed access token")
		return
	}
	logger.GetLogger().WithField("account_id", item.accountID).WithField("error", err).
		Warn("failed to persist refreshed token, retrying once")
	if err = n.update(ctx, item); err != nil {
		logger.GetLogger().WithField("account_id", item.accountID).WithField("error", err).
			Error("failed to persist refreshed token")
	}
}

func (n *TokenRefreshNotifier) update(ctx context.Context, item refreshedToken) error {
	updateCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()
	return n.accounts.UpdateAccessToken(updateCtx, item.accountID, item.accessToken)
}

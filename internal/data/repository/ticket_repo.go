package repository

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ticketNamespace = "recovery_ticket"

// RecoveryTicketRepository keeps at most one outstanding password-recovery ticket per account.
// Only a SHA-256 digest of the ticket is stored.
type RecoveryTicketRepository interface {
	// Put replaces any outstanding ticket for the account.
	Put(ctx context.Context, accountID int64, ticket string, ttl time.Duration) error
	// Consume deletes the ticket and reports true only when it matches and has not expired.
	Consume(ctx context.Context, accountID int64, ticket string) (bool, error)
}

func hashTicket(ticket string) string {
	sum := sha256.Sum256([]byte(ticket))
	return hex.EncodeToString(sum[:])
}

func ticketKey(accountID int64) string {
	return ticketNamespace + ":" + strconv.FormatInt(accountID, 10)
}

// ==================== REDIS ====================

// compare-and-delete so a wrong guess never burns the holder's ticket
var consumeTicketScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisTicketRepository struct {
	rdb redis.UniversalClient
	log *zap.Logger
}

func NewRedisTicketRepository(rdb redis.UniversalClient, log *zap.Logger) RecoveryTicketRepository {
	return &redisTicketRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "recovery_ticket"), zap.String("driver", "redis")),
	}
}

func (r *redisTicketRepository) Put(ctx context.Context, accountID int64, ticket string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, ticketKey(accountID), hashTicket(ticket), ttl).Err(); err != nil {
		r.log.Error("Failed to store recovery ticket", zap.Error(err), zap.Int64("account_id", accountID))
		return fmt.Errorf("store recovery ticket for %d: %w", accountID, err)
	}
	return nil
}

func (r *redisTicketRepository) Consume(ctx context.Context, accountID int64, ticket string) (bool, error) {
	n, err := consumeTicketScript.Run(ctx, r.rdb, []string{ticketKey(accountID)}, hashTicket(ticket)).Int()
	if err != nil {
		r.log.Error("Failed to consume recovery ticket", zap.Error(err), zap.Int64("account_id", accountID))
		return false, fmt.Errorf("consume recovery ticket for %d: %w", accountID, err)
	}
	return n == 1, nil
}

// ==================== IN-PROCESS ====================

type memTicket struct {
	hash      string
	expiresAt time.Time
}

type memoryTicketRepository struct {
	mu      sync.Mutex
	tickets map[int64]memTicket
	now     func() time.Time
}

// NewMemoryTicketRepository is the single-instance fallback used when no redis is configured.
func NewMemoryTicketRepository(now func() time.Time) RecoveryTicketRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryTicketRepository{
		tickets: make(map[int64]memTicket),
		now:     now,
	}
}

func (r *memoryTicketRepository) Put(_ context.Context, accountID int64, ticket string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets[accountID] = memTicket{
		hash:      hashTicket(ticket),
		expiresAt: r.now().Add(ttl),
	}
	r.sweepLocked()
	return nil
}

func (r *memoryTicketRepository) Consume(_ context.Context, accountID int64, ticket string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tickets[accountID]
	if !ok {
		return false, nil
	}
	if !r.now().Before(stored.expiresAt) {
		delete(r.tickets, accountID)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(stored.hash), []byte(hashTicket(ticket))) != 1 {
		return false, nil
	}

	delete(r.tickets, accountID)
	return true, nil
}

// sweepLocked drops expired entries; caller holds mu.
func (r *memoryTicketRepository) sweepLocked() {
	now := r.now()
	for id, t := range r.tickets {
		if !now.Before(t.expiresAt) {
			delete(r.tickets, id)
		}
	}
}

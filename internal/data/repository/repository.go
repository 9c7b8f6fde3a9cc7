package repository

import (
	"time"

	"account-service/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Account        AccountRepository
	Role           RoleRepository
	RecoveryTicket RecoveryTicketRepository
}

// NewRepository wires the postgres repositories. A nil rdb keeps recovery tickets in process.
func NewRepository(db database.PgxIface, rdb redis.UniversalClient, log *zap.Logger) *Repository {
	var tickets RecoveryTicketRepository
	if rdb != nil {
		tickets = NewRedisTicketRepository(rdb, log)
	} else {
		log.Warn("No redis configured, recovery tickets are kept in process memory")
		tickets = NewMemoryTicketRepository(time.Now)
	}

	return &Repository{
		Account:        NewAccountRepository(db, log),
		Role:           NewRoleRepository(db, log),
		RecoveryTicket: tickets,
	}
}

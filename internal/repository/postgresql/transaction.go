package postgresql

import (
	"context"

	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

// GetQuerier returns the transaction carried in ctx when one is active,
// otherwise the pool. Repositories stay oblivious to transaction scope.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}

package middlewares

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/bookcase-labs/library-catalog/internal/dbx"
	"github.com/bookcase-labs/library-catalog/internal/logger"
)

// TxMiddleware wraps an HTTP handler with a database transaction. The
// transaction travels in the request context (see the dbx package) and is
// committed after the handler returns, or rolled back on panic.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.Beginx()
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			ctx := dbx.SetTxToContext(r.Context(), tx)
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		})
	}
}

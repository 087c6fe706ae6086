// Package txn runs multi-document write sequences inside a Mongo transaction
// when the deployment supports them (replica set / mongos), and falls back to
// running the sequence without one on standalone servers.
//
// The fallback keeps local development and tests working against a standalone
// mongod, at the cost of the documented partial-write window: one write of
// the sequence can land while a later one fails. Callers that use the
// fallback path are expected to pair it with a reconciliation pass (see the
// trainer promotion and booking-count reconcilers in bootstrap Startup).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction when possible.
//
// When starting the session or the transaction fails with a "transactions not
// supported" class of error, fn runs once more outside a transaction and a
// warning is logged. Any other error aborts and is returned.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logFallback(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logFallback(log, err)
		return fn(ctx)
	}
	return err
}

func logFallback(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("transactions unavailable; running sequence without transaction",
			zap.Error(err))
	}
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone deployment, old wire version).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation, 51 ..., 263 OperationNotSupportedInTransaction
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	// Fallback keyword match for drivers/proxies that wrap the command
	// error. A single keyword alone is too weak ("transaction failed"
	// could be anything); require two distinct hints.
	s := strings.ToLower(err.Error())
	hits := 0
	for _, hint := range []string{"transaction", "session", "replica set", "not supported", "illegal operation"} {
		if strings.Contains(s, hint) {
			hits++
		}
	}
	return hits >= 2
}

package budgetService

import (
	contextPkg "ProjectBudget/pkg/context"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	budgetLockTTL      = 5 * time.Second
	budgetLockRetries  = 40
	budgetLockInterval = 50 * time.Millisecond
)

// lockBudget serializes check-then-act sequences on one budget. All creates
// that consult a budget's totals and all budget deletes take this lock, so
// two concurrent expense creations cannot both read a sum that excludes the
// other's write.
//
// When Redis is unreachable the operation proceeds without serialization:
// the externally observable contract is unchanged, only the isolation
// guarantee degrades, and that is logged.
func (s *budgetService) lockBudget(ctx context.Context, budgetID int64) func() {
	requestID := contextPkg.GetRequestID(ctx)
	key := fmt.Sprintf("budget:%d:lock", budgetID)

	token, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		token = requestID
	}

	for i := 0; i < budgetLockRetries; i++ {
		ok, err := s.redisServer.AcquireLock(ctx, key, token, budgetLockTTL)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  budgetID,
				"error":      err.Error(),
			}).Warn("Budget lock unavailable, proceeding without serialization")
			return func() {}
		}

		if ok {
			return func() {
				if err := s.redisServer.ReleaseLock(context.Background(), key, token); err != nil {
					s.log.WithFields(logrus.Fields{
						"request_id": requestID,
						"budget_id":  budgetID,
						"error":      err.Error(),
					}).Error("Failed to release budget lock")
				}
			}
		}

		select {
		case <-ctx.Done():
			return func() {}
		case <-time.After(budgetLockInterval):
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"budget_id":  budgetID,
	}).Warn("Budget lock wait exhausted, proceeding without serialization")

	return func() {}
}

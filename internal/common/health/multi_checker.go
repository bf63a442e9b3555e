package health

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MultiChecker runs its checkers in the order they were added and stops at the first failure,
// so that a later check never runs against a dependency an earlier check found unusable.
type MultiChecker struct {
	checkers []Checker
}

func NewMultiChecker(checkers ...Checker) *MultiChecker {
	return &MultiChecker{
		checkers: checkers,
	}
}

func (mc *MultiChecker) Check(ctx context.Context) error {
	for _, checker := range mc.checkers {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}
		log.WithField("check", checker.Name()).Debug("running health check")
		if err := checker.Check(ctx); err != nil {
			return errors.WithMessagef(err, "health check %q failed", checker.Name())
		}
	}
	return nil
}

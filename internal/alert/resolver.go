package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/member"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"gorm.io/gorm"
)

// CurrentPeriod returns the billing period for a point in time, in the
// exact YYYY-MM form stored on payments, so string equality is all the
// overdue check needs. The period is taken in UTC, matching the timezone
// payments are stamped with, so a server in another zone cannot roll the
// period over early or late at a month boundary.
func CurrentPeriod(now time.Time) string {
	return now.UTC().Format("2006-01")
}

// Resolver computes which active members owe dues for a billing period: a
// member with no payment row for the period is overdue, one or more rows
// means covered. Members come back through the member repository, so
// sensitive fields are already plaintext.
type Resolver struct {
	db               *gorm.DB
	memberRepository *member.MemberRepository
}

func NewResolver(db *gorm.DB, memberRepository *member.MemberRepository) *Resolver {
	return &Resolver{
		db:               db,
		memberRepository: memberRepository,
	}
}

func (r *Resolver) FindOverdue(ctx context.Context, period string) ([]model.Member, error) {
	members, err := r.memberRepository.FindOverdue(ctx, r.db, period)
	if err != nil {
		return nil, fmt.Errorf("find overdue members for %s: %w", period, err)
	}
	return members, nil
}

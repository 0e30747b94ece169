package status

import (
	"time"

	"vendorwatch/internal/domain/entity"
)

const (
	// staleAfterDays escalates pending_review and missing_data states that
	// nobody has touched for this many days.
	staleAfterDays = 30
	// criticalCloseDays flags an open cancellation window whose close is this
	// near as critical.
	criticalCloseDays = 15
	// noticeLeadDays is the warning band before the window opens.
	noticeLeadDays = 30
)

// Classify derives the effective lifecycle status of a property from its raw
// facts and the current date. Rules are priority-ordered; the first match
// wins:
//
//  1. Manual declarations (no_elevators, service_contract_needed) pass
//     through untouched.
//  2. A pending_review older than 30 days escalates to
//     critical_action_required.
//  3. Any missing contract fact yields missing_data, escalating the same way
//     once stale.
//  4. Cancellation-window date math: critical near the window close, open
//     inside the window, notice_due_soon in the 30 days before it opens.
//  5. The Schindler national-agreement rule.
//  6. active_contract.
//
// All date arithmetic is calendar-day based. Unparseable dates or window text
// degrade to the missing-data branch; this function never panics.
func Classify(p *entity.Property, now time.Time) entity.PropertyStatus {
	if p == nil {
		return entity.StatusMissingData
	}

	if p.Status.IsManualDeclaration() {
		return p.Status
	}

	today := Midnight(now)

	if p.Status == entity.StatusPendingReview {
		if stale(p.StatusUpdatedAt, today) {
			return entity.StatusCriticalActionRequired
		}

		return entity.StatusPendingReview
	}

	endDate, endOK := ParseDate(p.Terms.EndDate)
	minDays, maxDays, windowOK := ParseCancellationWindow(p.Terms.CancellationWindow)

	missing := p.Vendor.Name == "" ||
		p.UnitCount == 0 ||
		p.Vendor.CurrentPrice == 0 ||
		!endOK ||
		!windowOK
	if missing {
		if stale(p.StatusUpdatedAt, today) {
			return entity.StatusCriticalActionRequired
		}

		return entity.StatusMissingData
	}

	windowOpen := endDate.AddDate(0, 0, -maxDays)
	windowClose := endDate.AddDate(0, 0, -minDays)

	inWindow := !today.Before(windowOpen) && !today.After(windowClose)
	switch {
	case inWindow && DaysBetween(today, windowClose) < criticalCloseDays:
		return entity.StatusCriticalActionRequired
	case inWindow:
		return entity.StatusCancellationWindowOpen
	case today.Before(windowOpen) && DaysBetween(today, windowOpen) <= noticeLeadDays:
		return entity.StatusNoticeDueSoon
	}

	if p.Vendor.Name == "Schindler" {
		if p.OnNationalContract {
			return entity.StatusOnNationalAgreement
		}

		return entity.StatusAddToMSA
	}

	return entity.StatusActiveContract
}

// stale reports whether a status timestamp is older than the escalation
// threshold. An absent timestamp is treated as fresh.
func stale(updatedAt *time.Time, today time.Time) bool {
	if updatedAt == nil {
		return false
	}

	return DaysBetween(Midnight(*updatedAt), today) > staleAfterDays
}

// Package overdue holds the two overdue-detection rule families. Both are
// stateless predicates over loan snapshots: the caller supplies the snapshot
// and the evaluation time, the rules return violations.
package overdue

import (
	"fmt"
	"time"

	"deskwatch/internal/deskapi"
)

// ReasonCampusMove is the only movement reason the asset rule applies to.
// The comparison is case-sensitive; other reasons are never flagged.
const ReasonCampusMove = "Between Campus Move"

// Asset loans become overdue after this long off-site.
const assetGracePeriod = time.Hour

// Key loans borrowed today become overdue at this local hour.
const keyCutoffHour = 18

// Kind names the rule family that produced a violation.
type Kind string

const (
	KindAsset Kind = "asset"
	KindKey   Kind = "key"
)

// Violation is one loan record judged overdue. Exactly one of Asset and Key
// is set, matching Kind.
type Violation struct {
	Kind  Kind
	Asset *deskapi.AssetLoan
	Key   *deskapi.KeyLoan
	// Hours and Minutes carry the computed overdue duration for asset
	// violations. Key violations surface the borrow timestamp instead.
	Hours   int
	Minutes int
}

// LoanID returns the underlying loan record identifier.
func (v Violation) LoanID() string {
	if v.Kind == KindAsset {
		return v.Asset.ID
	}
	return v.Key.ID
}

// BorrowerName returns the borrower on the underlying loan record.
func (v Violation) BorrowerName() string {
	if v.Kind == KindAsset {
		return v.Asset.BorrowerName
	}
	return v.Key.BorrowerName
}

// Duration renders the overdue duration for message templates, e.g.
// "1 hour(s) and 30 minute(s)".
func (v Violation) Duration() string {
	return fmt.Sprintf("%d hour(s) and %d minute(s)", v.Hours, v.Minutes)
}

// Assets flags campus-move loans that have been outstanding for at least an
// hour. Records that arrived on-site are never flagged, regardless of age.
func Assets(loans []deskapi.AssetLoan, now time.Time) []Violation {
	var violations []Violation
	for i := range loans {
		loan := &loans[i]
		if loan.Reason != ReasonCampusMove || !loan.Outstanding() {
			continue
		}

		elapsed := now.Sub(loan.CheckedOutAt)
		if elapsed < assetGracePeriod {
			continue
		}

		violations = append(violations, Violation{
			Kind:    KindAsset,
			Asset:   loan,
			Hours:   int(elapsed / time.Hour),
			Minutes: int(elapsed % time.Hour / time.Minute),
		})
	}
	return violations
}

// Keys flags outstanding key loans borrowed before today, or borrowed today
// once the local time reaches the 6pm cutoff.
func Keys(loans []deskapi.KeyLoan, now time.Time) []Violation {
	var violations []Violation
	for i := range loans {
		loan := &loans[i]
		if !loan.Outstanding() {
			continue
		}
		if !keyOverdue(loan.BorrowedAt, now) {
			continue
		}

		violations = append(violations, Violation{
			Kind: KindKey,
			Key:  loan,
		})
	}
	return violations
}

func keyOverdue(borrowedAt, now time.Time) bool {
	borrowDate := dateOf(borrowedAt.In(now.Location()))
	today := dateOf(now)

	if borrowDate.Before(today) {
		return true
	}
	return borrowDate.Equal(today) && now.Hour() >= keyCutoffHour
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// PropertyStatus is the lifecycle state of a property's service contract.
// It is a closed set; a property holds exactly one value at a time.
type PropertyStatus string

const (
	// StatusActiveContract indicates a healthy contract with no action due.
	StatusActiveContract PropertyStatus = "active_contract"
	// StatusCancellationWindowOpen indicates today falls inside the contract's
	// cancellation notice window.
	StatusCancellationWindowOpen PropertyStatus = "cancellation_window_open"
	// StatusNoticeDueSoon indicates the cancellation window opens within 30 days.
	StatusNoticeDueSoon PropertyStatus = "notice_due_soon"
	// StatusCriticalActionRequired indicates the window is about to close or a
	// stale state has gone unattended for more than 30 days.
	StatusCriticalActionRequired PropertyStatus = "critical_action_required"
	// StatusMissingData indicates required contract facts are absent.
	StatusMissingData PropertyStatus = "missing_data"
	// StatusPendingReview indicates wizard output awaiting a reviewer.
	StatusPendingReview PropertyStatus = "pending_review"
	// StatusNoElevators is a manual declaration that the property has no
	// elevator equipment. Never recomputed.
	StatusNoElevators PropertyStatus = "no_elevators"
	// StatusServiceContractNeeded is a manual declaration that no contract
	// exists yet. Never recomputed.
	StatusServiceContractNeeded PropertyStatus = "service_contract_needed"
	// StatusOnNationalAgreement indicates the vendor relationship is covered by
	// the national master service agreement.
	StatusOnNationalAgreement PropertyStatus = "on_national_agreement"
	// StatusAddToMSA flags a vendor relationship eligible for consolidation
	// under the national master service agreement.
	StatusAddToMSA PropertyStatus = "add_to_msa"
	// StatusExpired indicates the contract end date has passed without renewal.
	StatusExpired PropertyStatus = "expired"
	// StatusPendingCancellation indicates a termination notice has been served.
	StatusPendingCancellation PropertyStatus = "pending_cancellation"
	// StatusCancelled indicates the contract was terminated.
	StatusCancelled PropertyStatus = "cancelled"
	// StatusMonthToMonth indicates the contract rolled into a month-to-month term.
	StatusMonthToMonth PropertyStatus = "month_to_month"
	// StatusUnderNegotiation indicates replacement terms are being negotiated.
	StatusUnderNegotiation PropertyStatus = "under_negotiation"
)

// String returns the string representation of the PropertyStatus.
func (s PropertyStatus) String() string {
	return string(s)
}

// IsValid checks if the PropertyStatus is a valid value.
func (s PropertyStatus) IsValid() bool {
	switch s {
	case StatusActiveContract, StatusCancellationWindowOpen, StatusNoticeDueSoon,
		StatusCriticalActionRequired, StatusMissingData, StatusPendingReview,
		StatusNoElevators, StatusServiceContractNeeded, StatusOnNationalAgreement,
		StatusAddToMSA, StatusExpired, StatusPendingCancellation, StatusCancelled,
		StatusMonthToMonth, StatusUnderNegotiation:
		return true
	default:
		return false
	}
}

// IsManualDeclaration reports whether the status is an explicit user
// declaration that automatic classification must never overwrite.
func (s PropertyStatus) IsManualDeclaration() bool {
	return s == StatusNoElevators || s == StatusServiceContractNeeded
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// ClaimReportedEvent is published when a claim event is successfully
// recorded. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ClaimReportedEvent struct {
	EventID        uint64 `json:"event_id"`
	PolicyHolderID uint64 `json:"policyholder_id"`
	BirthID        string `json:"birth_id"`
	Title          string `json:"title"`
	ContractNo     string `json:"contract_no"`
	EventDate      string `json:"event_date"`
	ReportedAt     string `json:"reported_at"`
}

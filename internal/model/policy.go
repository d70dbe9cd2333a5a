package model

import "time"

// Paid-by values for an insurance policy. The original paper forms
// distinguish whether the premium is paid by the policyholder who
// signed the contract or by the insured person themselves.
const (
	PaidByPolicyholder = "POLICYHOLDER"
	PaidByInsured      = "INSURED"
)

// PaidByLabels maps paid_by values to their Czech display labels.
var PaidByLabels = map[string]string{
	PaidByPolicyholder: "Pojistník",
	PaidByInsured:      "Pojištěnec",
}

// Insurance type values. Seven fixed categories are offered by the
// agency; OTHER is the catch-all for anything not listed.
const (
	InsuranceEstate    = "ESTATE"
	InsuranceLife      = "LIFE"
	InsuranceTravel    = "TRAVEL"
	InsuranceLiability = "LIABILITY"
	InsuranceCollision = "COLLISION"
	InsuranceInjury    = "INJURY"
	InsuranceOther     = "OTHER"
)

// InsuranceTypeLabels maps insurance_type values to their Czech
// display labels as printed on the contracts.
var InsuranceTypeLabels = map[string]string{
	InsuranceEstate:    "Pojištění majetku",
	InsuranceLife:      "Životní pojištění",
	InsuranceTravel:    "Cestovní pojištění",
	InsuranceLiability: "Povinné ručení",
	InsuranceCollision: "Havarijní pojištění",
	InsuranceInjury:    "Úrazové pojištění",
	InsuranceOther:     "Jiné pojištění",
}

// ValidPaidBy reports whether v is a known paid_by value.
func ValidPaidBy(v string) bool {
	_, ok := PaidByLabels[v]
	return ok
}

// ValidInsuranceType reports whether v is a known insurance_type value.
func ValidInsuranceType(v string) bool {
	_, ok := InsuranceTypeLabels[v]
	return ok
}

// InsurancePolicy represents one insurance contract as stored in the
// `insurance_policies` table. Every policy belongs to exactly one
// policyholder and is removed when that policyholder is deleted.
//
// Fields:
//  ID             – primary key identifier.
//  PolicyHolderID – owning policyholder (FK into policyholders).
//  PaidBy         – who pays the premium (POLICYHOLDER or INSURED).
//  InsuranceType  – one of the seven insurance categories.
//  TargetAmount   – covered amount; required, never defaulted.
//  ValidFrom      – first day the contract is in force.
//  ValidTo        – last day the contract is in force.
//  Created        – timestamp of creation.
//  Updated        – timestamp of last update.
type InsurancePolicy struct {
	ID             uint64    // insurance_policies.id
	PolicyHolderID uint64    // insurance_policies.policyholder_id
	PaidBy         string    // insurance_policies.paid_by
	InsuranceType  string    // insurance_policies.insurance_type
	TargetAmount   int64     // insurance_policies.target_amount
	ValidFrom      time.Time // insurance_policies.valid_from (DATE)
	ValidTo        time.Time // insurance_policies.valid_to (DATE)
	Created        time.Time // insurance_policies.created
	Updated        time.Time // insurance_policies.updated
}

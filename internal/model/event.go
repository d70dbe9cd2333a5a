package model

import "time"

// Event represents a reported claim/incident as stored in the
// `events` table. Events are owned by a policyholder and deleted
// together with them. The two attachment columns are independent of
// each other; either, both or neither may be present.
//
// Fields:
//  ID             – primary key identifier.
//  PolicyHolderID – owning policyholder (FK into policyholders).
//  Title          – short title of the event.
//  ContractNo     – number of the contract the event is claimed under.
//  EventDate      – the day the incident happened.
//  Desc           – free-text description of what happened.
//  Attach1        – stored filename of the first attachment (nullable).
//  Attach2        – stored filename of the second attachment (nullable).
//  Created        – timestamp of creation.
//  Updated        – timestamp of last update.
type Event struct {
	ID             uint64    // events.id
	PolicyHolderID uint64    // events.policyholder_id
	Title          string    // events.title
	ContractNo     string    // events.contract_no
	EventDate      time.Time // events.event_date (DATE)
	Desc           string    // events.desc
	Attach1        *string   // events.attach1 (nullable)
	Attach2        *string   // events.attach2 (nullable)
	Created        time.Time // events.created
	Updated        time.Time // events.updated
}

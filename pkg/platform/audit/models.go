// Package audit records an append-only trail of registry mutations.
//
// Services emit one Event per successful mutation and one security event per
// denied mutation. Emission happens after the registry has committed, so an
// audit failure is logged and never rolls back the mutation.
package audit

import (
	"context"
	"time"

	id "medsim/pkg/domain"
)

// EventCategory routes events to retention and alerting tiers.
type EventCategory string

const (
	// CategoryCompliance covers changes to who may certify instructors and
	// to certification records themselves.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers denied mutations.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine equipment, scenario and session activity.
	CategoryOperations EventCategory = "operations"
)

// AuditEvent names the action an event records.
type AuditEvent string

const (
	EventAuthorityTransferred   AuditEvent = "authority_transferred"
	EventInstructorRegistered   AuditEvent = "instructor_registered"
	EventInstructorRenewed      AuditEvent = "instructor_renewed"
	EventInstructorDeactivated  AuditEvent = "instructor_deactivated"
	EventSimulatorRegistered    AuditEvent = "simulator_registered"
	EventSimulatorMaintained    AuditEvent = "simulator_maintained"
	EventSimulatorStatusChanged AuditEvent = "simulator_status_changed"
	EventScenarioCreated        AuditEvent = "scenario_created"
	EventScenarioUpdated        AuditEvent = "scenario_updated"
	EventSessionStarted         AuditEvent = "session_started"
	EventSessionCompleted       AuditEvent = "session_completed"
	EventAccessDenied           AuditEvent = "access_denied"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAuthorityTransferred:  CategoryCompliance,
	EventInstructorRegistered:  CategoryCompliance,
	EventInstructorRenewed:     CategoryCompliance,
	EventInstructorDeactivated: CategoryCompliance,

	EventAccessDenied: CategorySecurity,

	EventSimulatorRegistered:    CategoryOperations,
	EventSimulatorMaintained:    CategoryOperations,
	EventSimulatorStatusChanged: CategoryOperations,
	EventScenarioCreated:        CategoryOperations,
	EventScenarioUpdated:        CategoryOperations,
	EventSessionStarted:         CategoryOperations,
	EventSessionCompleted:       CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Outcome values carried on events.
const (
	OutcomeSuccess = "success"
	OutcomeDenied  = "denied"
)

// Event is a single audit record.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Actor     id.Identity   `json:"actor"`
	Registry  string        `json:"registry"`
	Action    string        `json:"action"`
	Key       string        `json:"key"`
	Outcome   string        `json:"outcome"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

// Store persists audit events. Implementations are append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is what services depend on to record events.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

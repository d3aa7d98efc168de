package fhirmodels

// Value set codes accepted by the local store and used as defaults.

// AdministrativeGender codes.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// AppointmentStatus codes per FHIR R4.
const (
	AppointmentProposed  = "proposed"
	AppointmentPending   = "pending"
	AppointmentBooked    = "booked"
	AppointmentArrived   = "arrived"
	AppointmentFulfilled = "fulfilled"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "noshow"
	AppointmentScheduled = "scheduled"
)

// EncounterStatus values per FHIR R4.
const (
	EncounterStatusPlanned    = "planned"
	EncounterStatusArrived    = "arrived"
	EncounterStatusInProgress = "in-progress"
	EncounterStatusFinished   = "finished"
	EncounterStatusCancelled  = "cancelled"
)

// EncounterClass codes per FHIR R4 v3-ActCode.
const (
	EncounterClassAmbulatory = "AMB"
	EncounterClassEmergency  = "EMER"
	EncounterClassInpatient  = "IMP"
	EncounterClassVirtual    = "VR"
	EncounterClassHomeHealth = "HH"
)

// AllergyIntolerance criticality.
const (
	CriticalityLow    = "low"
	CriticalityMedium = "medium"
	CriticalityHigh   = "high"
)

// AllergyIntolerance clinical status.
const (
	AllergyActive   = "active"
	AllergyInactive = "inactive"
	AllergyResolved = "resolved"
)

// MedicationRequest status.
const (
	MedicationActive    = "active"
	MedicationOnHold    = "on-hold"
	MedicationCompleted = "completed"
	MedicationStopped   = "stopped"
)

// Observation / DiagnosticReport status.
const (
	ResultRegistered  = "registered"
	ResultPreliminary = "preliminary"
	ResultFinal       = "final"
	ResultAmended     = "amended"
)

// Procedure / Immunization event status.
const (
	EventPreparation = "preparation"
	EventInProgress  = "in-progress"
	EventCompleted   = "completed"
	EventNotDone     = "not-done"
)

// Billing status and insurance coverage, local records only.
const (
	BillingPending   = "pending"
	BillingPaid      = "paid"
	BillingOverdue   = "overdue"
	BillingCancelled = "cancelled"

	InsuranceCovered = "covered"
	InsurancePartial = "partial"
	InsuranceDenied  = "denied"
	InsurancePending = "pending"
)

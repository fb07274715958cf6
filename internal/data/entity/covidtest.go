package entity

// TestStatus tracks the lifecycle of a COVID test and, through the booking
// extension fields, of the appointment it belongs to.
type TestStatus string

const (
	TestStatusInitiated TestStatus = "INITIATED"
	TestStatusProcessed TestStatus = "PROCESSED"
	TestStatusCompleted TestStatus = "COMPLETED"
)

type TestType string

const (
	TestTypePCR TestType = "PCR"
	TestTypeRAT TestType = "RAT"
)

type TestResult string

const (
	TestResultPending  TestResult = "PENDING"
	TestResultPositive TestResult = "POSITIVE"
	TestResultNegative TestResult = "NEGATIVE"
	TestResultInvalid  TestResult = "INVALID"
)

// CovidTest is a test administered against a booking.
type CovidTest struct {
	ID             string     `json:"id,omitempty"`
	Type           TestType   `json:"type"`
	PatientID      string     `json:"patientId"`
	AdministererID string     `json:"administererId"`
	BookingID      string     `json:"bookingId"`
	Result         TestResult `json:"result"`
	Status         TestStatus `json:"status"`
	Notes          string     `json:"notes"`
}

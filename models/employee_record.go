package models

type EmployeeRecordStatus string

const (
	EmployeeRecordStatusNew       EmployeeRecordStatus = "NEW"
	EmployeeRecordStatusReady     EmployeeRecordStatus = "READY"
	EmployeeRecordStatusSent      EmployeeRecordStatus = "SENT"
	EmployeeRecordStatusRejected  EmployeeRecordStatus = "REJECTED"
	EmployeeRecordStatusProcessed EmployeeRecordStatus = "PROCESSED"
	EmployeeRecordStatusDisabled  EmployeeRecordStatus = "DISABLED"
)

// IsBlockingCancellation reports whether the record has already been
// transmitted to the paying agency, which forbids cancelling the hiring.
func (s EmployeeRecordStatus) IsBlockingCancellation() bool {
	return s == EmployeeRecordStatusSent || s == EmployeeRecordStatusProcessed
}

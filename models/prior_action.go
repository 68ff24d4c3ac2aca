package models

// PriorActionKind classifies pre-hire actions attached to a GEIQ
// job application.
type PriorActionKind string

const (
	PriorActionAFPR                PriorActionKind = "AFPR"
	PriorActionPOE                 PriorActionKind = "POE"
	PriorActionPMSMP               PriorActionKind = "PMSMP"
	PriorActionMRS                 PriorActionKind = "MRS"
	PriorActionPrequalification    PriorActionKind = "PREQUALIFICATION"
	PriorActionProfessionalization PriorActionKind = "PROFESSIONALIZATION"
	PriorActionOther               PriorActionKind = "OTHER"
)

var PriorActionKinds = []PriorActionKind{
	PriorActionAFPR,
	PriorActionPOE,
	PriorActionPMSMP,
	PriorActionMRS,
	PriorActionPrequalification,
	PriorActionProfessionalization,
	PriorActionOther,
}

func (k PriorActionKind) IsValid() bool {
	for _, known := range PriorActionKinds {
		if k == known {
			return true
		}
	}
	return false
}

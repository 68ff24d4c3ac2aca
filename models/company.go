package models

type CompanyKind string

const (
	CompanyKindEI   CompanyKind = "EI"
	CompanyKindAI   CompanyKind = "AI"
	CompanyKindACI  CompanyKind = "ACI"
	CompanyKindETTI CompanyKind = "ETTI"
	CompanyKindEITI CompanyKind = "EITI"
	CompanyKindGEIQ CompanyKind = "GEIQ"
	CompanyKindEA   CompanyKind = "EA"
	CompanyKindEATT CompanyKind = "EATT"
	CompanyKindOPCS CompanyKind = "OPCS"
)

// IsSubjectToEligibilityRules reports whether hirings by this kind of
// structure require an IAE eligibility diagnosis and a PASS IAE.
func (k CompanyKind) IsSubjectToEligibilityRules() bool {
	switch k {
	case CompanyKindEI, CompanyKindAI, CompanyKindACI, CompanyKindETTI, CompanyKindEITI:
		return true
	}
	return false
}

type PrescriberOrganizationKind string

const (
	PrescriberKindPoleEmploi PrescriberOrganizationKind = "PE"
	PrescriberKindCapEmploi  PrescriberOrganizationKind = "CAP_EMPLOI"
	PrescriberKindML         PrescriberOrganizationKind = "ML"
	PrescriberKindDept       PrescriberOrganizationKind = "DEPT"
	PrescriberKindOther      PrescriberOrganizationKind = "OTHER"
)

type InstitutionKind string

const (
	InstitutionKindDDETSIAE  InstitutionKind = "DDETS IAE"
	InstitutionKindDDETSGEIQ InstitutionKind = "DDETS GEIQ"
	InstitutionKindDREETSIAE InstitutionKind = "DREETS IAE"
	InstitutionKindDGEFPIAE  InstitutionKind = "DGEFP IAE"
)

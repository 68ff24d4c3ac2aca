package models

type UserKind string

const (
	UserKindJobSeeker      UserKind = "job_seeker"
	UserKindPrescriber     UserKind = "prescriber"
	UserKindEmployer       UserKind = "employer"
	UserKindLaborInspector UserKind = "labor_inspector"
)

// SenderKind identifies who submitted a job application.
type SenderKind string

const (
	SenderKindJobSeeker  SenderKind = "job_seeker"
	SenderKindPrescriber SenderKind = "prescriber"
	SenderKindEmployer   SenderKind = "employer"
)

// LackOfPoleEmploiIDReason explains a missing employment-agency identifier.
type LackOfPoleEmploiIDReason string

const (
	ReasonNotRegistered LackOfPoleEmploiIDReason = "NOT_REGISTERED"
	ReasonForgotten     LackOfPoleEmploiIDReason = "FORGOTTEN"
)

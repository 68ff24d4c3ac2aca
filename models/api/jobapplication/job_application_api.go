package jobapplicationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"itou-backend/models"
	apimodels "itou-backend/models/api"
	dbmodels "itou-backend/models/db"
)

type CreateRequest struct {
	JobSeekerID                    string            `json:"job_seeker_id"`
	SenderID                       string            `json:"sender_id,omitempty"`
	SenderKind                     models.SenderKind `json:"sender_kind"`
	SenderCompanyID                string            `json:"sender_company_id,omitempty"`
	SenderPrescriberOrganizationID string            `json:"sender_prescriber_organization_id,omitempty"`
	ToCompanyID                    string            `json:"to_company_id"`
	SelectedJobIDs                 []string          `json:"selected_job_ids,omitempty"`
	Message                        string            `json:"message,omitempty"`
	ResumeLink                     string            `json:"resume_link,omitempty"`
}

func (r CreateRequest) Validate() error {
	if r.JobSeekerID == "" {
		return errors.New("le candidat est obligatoire")
	}
	if r.ToCompanyID == "" {
		return errors.New("la structure destinataire est obligatoire")
	}
	return nil
}

type AcceptRequest struct {
	HiringStartAt      time.Time  `json:"hiring_start_at"`
	HiringEndAt        *time.Time `json:"hiring_end_at,omitempty"`
	HiredJobID         string     `json:"hired_job_id,omitempty"`
	Answer             string     `json:"answer,omitempty"`
	AnswerToPrescriber string     `json:"answer_to_prescriber,omitempty"`
}

type RefuseRequest struct {
	Reason             models.RefusalReason `json:"reason"`
	Answer             string               `json:"answer,omitempty"`
	AnswerToPrescriber string               `json:"answer_to_prescriber,omitempty"`
}

func (r RefuseRequest) Validate() error {
	if r.Reason == "" {
		return errors.New("le motif de refus est obligatoire")
	}
	return nil
}

type PostponeRequest struct {
	AnswerToPrescriber string `json:"answer_to_prescriber,omitempty"`
}

type TransferRequest struct {
	TargetCompanyID string `json:"target_company_id"`
}

func (r TransferRequest) Validate() error {
	if r.TargetCompanyID == "" {
		return errors.New("la structure cible est obligatoire")
	}
	return nil
}

type PriorActionRequest struct {
	Kind    models.PriorActionKind `json:"kind"`
	StartAt time.Time              `json:"start_at"`
	EndAt   time.Time              `json:"end_at"`
}

type ListRequest struct {
	Filter dbmodels.JobApplicationFilter `json:"filter"`
	apimodels.Pagination
}

type JobApplicationView struct {
	ID             string     `json:"id"`
	State          string     `json:"state"`
	JobSeekerID    string     `json:"job_seeker_id"`
	JobSeekerName  string     `json:"job_seeker_name,omitempty"`
	ToCompanyID    string     `json:"to_company_id"`
	ToCompanyName  string     `json:"to_company_name,omitempty"`
	SenderKind     string     `json:"sender_kind,omitempty"`
	Message        string     `json:"message,omitempty"`
	Answer         string     `json:"answer,omitempty"`
	RefusalReason  string     `json:"refusal_reason,omitempty"`
	HiringStartAt  *time.Time `json:"hiring_start_at,omitempty"`
	HiringEndAt    *time.Time `json:"hiring_end_at,omitempty"`
	ApprovalNumber string     `json:"approval_number,omitempty"`
	DeliveryMode   string     `json:"approval_delivery_mode,omitempty"`
	Archived       bool       `json:"archived"`
	CreatedAt      time.Time  `json:"created_at"`
}

type AcceptResult struct {
	JobApplication JobApplicationView `json:"job_application"`
	ApprovalNumber string             `json:"approval_number,omitempty"`
	DeliveryMode   string             `json:"approval_delivery_mode,omitempty"`
	ObsoleteCount  int                `json:"obsolete_count"`
}

type TransitionLogView struct {
	Transition string    `json:"transition"`
	FromState  string    `json:"from_state"`
	ToState    string    `json:"to_state"`
	UserID     string    `json:"user_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func Convert(rec dbmodels.JobApplication) JobApplicationView {
	view := JobApplicationView{
		ID:            rec.ID,
		State:         string(rec.State),
		JobSeekerID:   rec.JobSeekerID,
		ToCompanyID:   rec.ToCompanyID,
		SenderKind:    string(rec.SenderKind),
		Message:       rec.Message,
		Answer:        rec.Answer,
		RefusalReason: string(rec.RefusalReason),
		HiringStartAt: rec.HiringStartAt,
		HiringEndAt:   rec.HiringEndAt,
		DeliveryMode:  string(rec.ApprovalDeliveryMode),
		Archived:      rec.Archived,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.JobSeeker != nil {
		view.JobSeekerName = rec.JobSeeker.FullName()
	}
	if rec.ToCompany != nil {
		view.ToCompanyName = rec.ToCompany.Name
	}
	if rec.Approval != nil {
		view.ApprovalNumber = rec.Approval.Number
	}
	return view
}

func ConvertLog(rec dbmodels.JobApplicationTransitionLog) TransitionLogView {
	view := TransitionLogView{
		Transition: string(rec.Transition),
		FromState:  string(rec.FromState),
		ToState:    string(rec.ToState),
		Timestamp:  rec.Timestamp,
	}
	if rec.UserID != nil {
		view.UserID = *rec.UserID
	}
	return view
}

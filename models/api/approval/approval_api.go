package approvalapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "itou-backend/models/db"
)

type ApprovalView struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	UserID        string             `json:"user_id"`
	StartAt       time.Time          `json:"start_at"`
	EndAt         time.Time          `json:"end_at"`
	State         string             `json:"state"` //valid/suspended/future/expired
	Suspensions   []SuspensionView   `json:"suspensions,omitempty"`
	Prolongations []ProlongationView `json:"prolongations,omitempty"`
}

type SuspensionView struct {
	ID      string    `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reason  string    `json:"reason"`
}

type ProlongationView struct {
	ID      string    `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reason  string    `json:"reason"`
}

type SuspendRequest struct {
	StartAt time.Time                 `json:"start_at"`
	EndAt   time.Time                 `json:"end_at"`
	Reason  dbmodels.SuspensionReason `json:"reason"`
}

func (r SuspendRequest) Validate() error {
	if r.Reason == "" {
		return errors.New("le motif de suspension est obligatoire")
	}
	if r.EndAt.Before(r.StartAt) {
		return errors.New("la date de fin de suspension doit être postérieure à sa date de début")
	}
	return nil
}

type ProlongRequest struct {
	EndAt  time.Time                   `json:"end_at"`
	Reason dbmodels.ProlongationReason `json:"reason"`
}

func (r ProlongRequest) Validate() error {
	if r.Reason == "" {
		return errors.New("le motif de prolongation est obligatoire")
	}
	return nil
}

type UnsuspendRequest struct {
	HiringStartAt time.Time `json:"hiring_start_at"`
}

type UpdateStartDateRequest struct {
	StartAt time.Time `json:"start_at"`
}

func Convert(rec dbmodels.Approval, now time.Time) ApprovalView {
	view := ApprovalView{
		ID:      rec.ID,
		Number:  rec.Number,
		UserID:  rec.UserID,
		StartAt: rec.StartAt,
		EndAt:   rec.EndAt,
		State:   stateOf(rec, now),
	}
	for _, s := range rec.Suspensions {
		view.Suspensions = append(view.Suspensions, SuspensionView{
			ID:      s.ID,
			StartAt: s.StartAt,
			EndAt:   s.EndAt,
			Reason:  string(s.Reason),
		})
	}
	for _, p := range rec.Prolongations {
		view.Prolongations = append(view.Prolongations, ProlongationView{
			ID:      p.ID,
			StartAt: p.StartAt,
			EndAt:   p.EndAt,
			Reason:  string(p.Reason),
		})
	}
	return view
}

func stateOf(rec dbmodels.Approval, now time.Time) string {
	if !rec.IsValid(now) {
		return "expired"
	}
	if rec.StartAt.After(now) {
		return "future"
	}
	for _, s := range rec.Suspensions {
		if s.IsInProgress(now) {
			return "suspended"
		}
	}
	return "valid"
}

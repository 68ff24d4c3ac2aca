package agencyclient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Provider talks to the national employment agency API to report hirings
// running on a PASS IAE.
type Provider interface {
	NotifyHiring(approvalNumber, jobApplicationID string) error
}

var Instance Provider

func NewProvider(baseURL, token string) {
	Instance = &impl{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type impl struct {
	baseURL string
	token   string
	client  *http.Client
}

type notifyHiringRequest struct {
	ApprovalNumber   string `json:"numero_pass_iae"`
	JobApplicationID string `json:"id_candidature"`
}

func (i impl) NotifyHiring(approvalNumber, jobApplicationID string) error {
	body, err := json.Marshal(notifyHiringRequest{
		ApprovalNumber:   approvalNumber,
		JobApplicationID: jobApplicationID,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, i.baseURL+"/embauches", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+i.token)
	// deduplication key on the agency side
	req.Header.Set("X-Request-ID", uuid.NewString())
	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.Errorf("réponse inattendue de l'agence (code %d)", resp.StatusCode)
	}
	return nil
}

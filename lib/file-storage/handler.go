package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	s3client "itou-backend/s3"
)

// proofURLExpiry bounds how long a presigned proof link stays usable.
const proofURLExpiry = 7 * 24 * time.Hour

type Provider interface {
	UploadProof(ctx context.Context, evaluatedCriteriaID, fileName, contentType string, file []byte) (string, error)
	GetProofURL(ctx context.Context, evaluatedCriteriaID, fileName string) (string, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		s3: s3client.Instance,
	}
}

type impl struct {
	s3 s3client.Provider
}

func (i impl) UploadProof(ctx context.Context, evaluatedCriteriaID, fileName, contentType string, file []byte) (string, error) {
	objectName := proofObjectName(evaluatedCriteriaID, fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	err := i.s3.PutObject(ctx, objectName, bytes.NewReader(file), int64(len(file)), contentType)
	if err != nil {
		log.WithError(err).
			WithField("object_name", objectName).
			Error("erreur de téléversement du justificatif")
		return "", errors.New("impossible de téléverser le justificatif")
	}
	return i.GetProofURL(ctx, evaluatedCriteriaID, fileName)
}

func (i impl) GetProofURL(ctx context.Context, evaluatedCriteriaID, fileName string) (string, error) {
	objectName := proofObjectName(evaluatedCriteriaID, fileName)
	url, err := i.s3.GetObjectURL(ctx, objectName, proofURLExpiry)
	if err != nil {
		log.WithError(err).
			WithField("object_name", objectName).
			Error("erreur de génération du lien du justificatif")
		return "", errors.New("impossible de générer le lien du justificatif")
	}
	return url, nil
}

func proofObjectName(evaluatedCriteriaID, fileName string) string {
	return fmt.Sprintf("justificatifs/%s/%s", evaluatedCriteriaID, path.Base(fileName))
}

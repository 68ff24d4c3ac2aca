package agencyworker

import (
	"context"
	"time"

	"itou-backend/config"
	"itou-backend/db"
	agencyclient "itou-backend/lib/agency/client"
	agencystore "itou-backend/lib/agency/store"
	baseworker "itou-backend/lib/utils/base-worker"
)

const batchSize = 50

// StartWorker reports PASS IAE hirings to the employment agency. Failures
// are recorded on the queue row and never block the hiring workflow.
func StartWorker(ctx context.Context) {
	if config.Conf.Agency.Enabled == nil || !*config.Conf.Agency.Enabled {
		return
	}
	period := time.Duration(config.Conf.Agency.SendPeriodMin) * time.Minute
	w := impl{
		BaseImpl: *baseworker.NewInstance("agency-notify", 10*time.Second, period),
		store:    agencystore.NewInstance(db.DB),
		client:   agencyclient.Instance,
	}
	go w.Run(ctx, w.sendPending)
}

type impl struct {
	baseworker.BaseImpl
	store  agencystore.Provider
	client agencyclient.Provider
}

func (i impl) sendPending(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListPending(batchSize)
	if err != nil {
		logger.WithError(err).Error("erreur de lecture de la file agence")
		return
	}
	for _, rec := range list {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := i.client.NotifyHiring(rec.ApprovalNumber, rec.JobApplicationID); err != nil {
			logger.WithError(err).
				WithField("agency_notification_id", rec.ID).
				Error("échec de notification à l'agence")
			if err := i.store.MarkError(rec.ID, err.Error()); err != nil {
				logger.WithError(err).Error("erreur de mise à jour de la file agence")
			}
			continue
		}
		if err := i.store.MarkSent(rec.ID); err != nil {
			logger.WithError(err).Error("erreur de mise à jour de la file agence")
		}
	}
}

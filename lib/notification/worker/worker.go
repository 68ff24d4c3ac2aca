package notificationworker

import (
	"context"
	"time"

	"itou-backend/config"
	"itou-backend/db"
	notificationstore "itou-backend/lib/notification/store"
	"itou-backend/lib/smtp"
	baseworker "itou-backend/lib/utils/base-worker"
)

const batchSize = 50

// StartWorker drains the notification outbox and sends the emails.
func StartWorker(ctx context.Context) {
	period := time.Duration(config.Conf.Outbox.SendPeriodMin) * time.Minute
	w := impl{
		BaseImpl: *baseworker.NewInstance("notification-outbox", 10*time.Second, period),
		store:    notificationstore.NewInstance(db.DB),
	}
	go w.Run(ctx, w.sendPending)
}

type impl struct {
	baseworker.BaseImpl
	store notificationstore.Provider
}

func (i impl) sendPending(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListPending(batchSize, config.Conf.Outbox.MaxAttempts)
	if err != nil {
		logger.WithError(err).Error("erreur de lecture de la file de notifications")
		return
	}
	for _, rec := range list {
		select {
		case <-ctx.Done():
			return
		default:
		}
		sendErr := error(nil)
		for _, to := range rec.ToEmails {
			if err := smtp.Instance.SendEMail(config.Conf.Smtp.From, to, rec.Body, rec.Subject); err != nil {
				sendErr = err
				break
			}
		}
		if sendErr != nil {
			logger.WithError(sendErr).
				WithField("notification_id", rec.ID).
				Error("échec d'envoi de la notification")
			if err := i.store.MarkFailed(rec.ID, sendErr.Error()); err != nil {
				logger.WithError(err).Error("erreur de mise à jour de la notification")
			}
			continue
		}
		if err := i.store.MarkSent(rec.ID); err != nil {
			logger.WithError(err).Error("erreur de mise à jour de la notification")
		}
	}
}

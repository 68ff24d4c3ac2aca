package notificationhandler

import (
	"github.com/lib/pq"
	"gorm.io/gorm"

	"itou-backend/db"
	notificationstore "itou-backend/lib/notification/store"
	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

// The outbox: every email is written as a row in the transaction of the
// state change that caused it, then delivered asynchronously by the worker.
type Provider interface {
	EnqueueAcceptEmails(tx *gorm.DB, app *dbmodels.JobApplication) error
	EnqueueRefuseEmails(tx *gorm.DB, app *dbmodels.JobApplication) error
	EnqueueCancelEmail(tx *gorm.DB, app *dbmodels.JobApplication) error
	EnqueueApprovalDelivery(tx *gorm.DB, app *dbmodels.JobApplication, approval *dbmodels.Approval) error
	EnqueueManualDeliveryRequired(tx *gorm.DB, app *dbmodels.JobApplication, staffEmail string) error
	Enqueue(tx *gorm.DB, kind models.NotificationKind, toEmails []string, subject, body string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store notificationstore.Provider
}

func (i impl) EnqueueAcceptEmails(tx *gorm.DB, app *dbmodels.JobApplication) error {
	store := i.store.WithTx(tx)
	if app.JobSeeker != nil && app.JobSeeker.Email != "" {
		_, err := store.Create(dbmodels.Notification{
			Kind:             models.NotificationAcceptForJobSeeker,
			ToEmails:         pq.StringArray{app.JobSeeker.Email},
			Subject:          acceptJobSeekerSubject(app),
			Body:             acceptJobSeekerBody(app),
			JobApplicationID: &app.ID,
		})
		if err != nil {
			return err
		}
	}
	if app.IsSentByProxy() && app.Sender != nil && app.Sender.Email != "" {
		_, err := store.Create(dbmodels.Notification{
			Kind:             models.NotificationAcceptForProxy,
			ToEmails:         pq.StringArray{app.Sender.Email},
			Subject:          acceptProxySubject(app),
			Body:             acceptProxyBody(app),
			JobApplicationID: &app.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) EnqueueRefuseEmails(tx *gorm.DB, app *dbmodels.JobApplication) error {
	store := i.store.WithTx(tx)
	if app.JobSeeker != nil && app.JobSeeker.Email != "" {
		_, err := store.Create(dbmodels.Notification{
			Kind:             models.NotificationRefuseForJobSeeker,
			ToEmails:         pq.StringArray{app.JobSeeker.Email},
			Subject:          refuseSubject(app),
			Body:             refuseJobSeekerBody(app),
			JobApplicationID: &app.ID,
		})
		if err != nil {
			return err
		}
	}
	if app.IsSentByProxy() && app.Sender != nil && app.Sender.Email != "" {
		_, err := store.Create(dbmodels.Notification{
			Kind:             models.NotificationRefuseForProxy,
			ToEmails:         pq.StringArray{app.Sender.Email},
			Subject:          refuseSubject(app),
			Body:             refuseProxyBody(app),
			JobApplicationID: &app.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) EnqueueCancelEmail(tx *gorm.DB, app *dbmodels.JobApplication) error {
	toEmails := pq.StringArray{}
	if app.JobSeeker != nil && app.JobSeeker.Email != "" {
		toEmails = append(toEmails, app.JobSeeker.Email)
	}
	if app.IsSentByProxy() && app.Sender != nil && app.Sender.Email != "" {
		toEmails = append(toEmails, app.Sender.Email)
	}
	if len(toEmails) == 0 {
		return nil
	}
	_, err := i.store.WithTx(tx).Create(dbmodels.Notification{
		Kind:             models.NotificationCancel,
		ToEmails:         toEmails,
		Subject:          cancelSubject(app),
		Body:             cancelBody(app),
		JobApplicationID: &app.ID,
	})
	return err
}

func (i impl) EnqueueApprovalDelivery(tx *gorm.DB, app *dbmodels.JobApplication, approval *dbmodels.Approval) error {
	if app.ToCompany == nil || app.ToCompany.Email == "" {
		return nil
	}
	_, err := i.store.WithTx(tx).Create(dbmodels.Notification{
		Kind:             models.NotificationDeliverApproval,
		ToEmails:         pq.StringArray{app.ToCompany.Email},
		Subject:          approvalDeliverySubject(approval),
		Body:             approvalDeliveryBody(app, approval),
		JobApplicationID: &app.ID,
	})
	return err
}

func (i impl) EnqueueManualDeliveryRequired(tx *gorm.DB, app *dbmodels.JobApplication, staffEmail string) error {
	if staffEmail == "" {
		return nil
	}
	_, err := i.store.WithTx(tx).Create(dbmodels.Notification{
		Kind:             models.NotificationManualDeliveryRequired,
		ToEmails:         pq.StringArray{staffEmail},
		Subject:          manualDeliverySubject(app),
		Body:             manualDeliveryBody(app),
		JobApplicationID: &app.ID,
	})
	return err
}

func (i impl) Enqueue(tx *gorm.DB, kind models.NotificationKind, toEmails []string, subject, body string) error {
	if len(toEmails) == 0 {
		return nil
	}
	_, err := i.store.WithTx(tx).Create(dbmodels.Notification{
		Kind:     kind,
		ToEmails: pq.StringArray(toEmails),
		Subject:  subject,
		Body:     body,
	})
	return err
}

package notificationhandler

import (
	"fmt"

	dbmodels "itou-backend/models/db"
)

func acceptJobSeekerSubject(app *dbmodels.JobApplication) string {
	return "Candidature acceptée"
}

func acceptJobSeekerBody(app *dbmodels.JobApplication) string {
	name := ""
	if app.JobSeeker != nil {
		name = app.JobSeeker.FullName()
	}
	company := ""
	if app.ToCompany != nil {
		company = app.ToCompany.Name
	}
	return fmt.Sprintf("Bonjour %s,\n\nVotre candidature a été acceptée par %s.\n%s\n", name, company, app.Answer)
}

func acceptProxySubject(app *dbmodels.JobApplication) string {
	return "Candidature acceptée pour votre bénéficiaire"
}

func acceptProxyBody(app *dbmodels.JobApplication) string {
	name := ""
	if app.JobSeeker != nil {
		name = app.JobSeeker.FullName()
	}
	return fmt.Sprintf("La candidature de %s a été acceptée.\n%s\n", name, app.AnswerToPrescriber)
}

func refuseSubject(app *dbmodels.JobApplication) string {
	return "Candidature déclinée"
}

func refuseJobSeekerBody(app *dbmodels.JobApplication) string {
	return fmt.Sprintf("Votre candidature a été déclinée.\nMotif : %s\n%s\n", app.RefusalReason, app.Answer)
}

func refuseProxyBody(app *dbmodels.JobApplication) string {
	name := ""
	if app.JobSeeker != nil {
		name = app.JobSeeker.FullName()
	}
	return fmt.Sprintf("La candidature de %s a été déclinée.\nMotif : %s\n%s\n", name, app.RefusalReason, app.AnswerToPrescriber)
}

func cancelSubject(app *dbmodels.JobApplication) string {
	return "Embauche annulée"
}

func cancelBody(app *dbmodels.JobApplication) string {
	name := ""
	if app.JobSeeker != nil {
		name = app.JobSeeker.FullName()
	}
	return fmt.Sprintf("L'embauche de %s a été annulée par l'employeur.\n", name)
}

func approvalDeliverySubject(approval *dbmodels.Approval) string {
	return fmt.Sprintf("PASS IAE n°%s délivré", approval.Number)
}

func approvalDeliveryBody(app *dbmodels.JobApplication, approval *dbmodels.Approval) string {
	return fmt.Sprintf(
		"Le PASS IAE n°%s est valide du %s au %s.\n",
		approval.Number,
		approval.StartAt.Format("02/01/2006"),
		approval.EndAt.Format("02/01/2006"),
	)
}

func manualDeliverySubject(app *dbmodels.JobApplication) string {
	return "Délivrance manuelle de PASS IAE requise"
}

func manualDeliveryBody(app *dbmodels.JobApplication) string {
	name := ""
	if app.JobSeeker != nil {
		name = app.JobSeeker.FullName()
	}
	return fmt.Sprintf("L'embauche de %s requiert une délivrance manuelle du PASS IAE (identifiant France Travail oublié).\n", name)
}

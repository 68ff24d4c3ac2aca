package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "itou-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("lancement des migrations")
	tables := []struct {
		name  string
		model interface{}
	}{
		{"User", &dbmodels.User{}},
		{"Company", &dbmodels.Company{}},
		{"CompanyMembership", &dbmodels.CompanyMembership{}},
		{"JobDescription", &dbmodels.JobDescription{}},
		{"PrescriberOrganization", &dbmodels.PrescriberOrganization{}},
		{"PrescriberMembership", &dbmodels.PrescriberMembership{}},
		{"Institution", &dbmodels.Institution{}},
		{"InstitutionMembership", &dbmodels.InstitutionMembership{}},
		{"AdministrativeCriteria", &dbmodels.AdministrativeCriteria{}},
		{"EligibilityDiagnosis", &dbmodels.EligibilityDiagnosis{}},
		{"SelectedAdministrativeCriteria", &dbmodels.SelectedAdministrativeCriteria{}},
		{"GEIQAdministrativeCriteria", &dbmodels.GEIQAdministrativeCriteria{}},
		{"GEIQEligibilityDiagnosis", &dbmodels.GEIQEligibilityDiagnosis{}},
		{"GEIQSelectedAdministrativeCriteria", &dbmodels.GEIQSelectedAdministrativeCriteria{}},
		{"Approval", &dbmodels.Approval{}},
		{"Suspension", &dbmodels.Suspension{}},
		{"Prolongation", &dbmodels.Prolongation{}},
		{"JobApplication", &dbmodels.JobApplication{}},
		{"JobApplicationTransitionLog", &dbmodels.JobApplicationTransitionLog{}},
		{"PriorAction", &dbmodels.PriorAction{}},
		{"EmployeeRecord", &dbmodels.EmployeeRecord{}},
		{"EvaluationCampaign", &dbmodels.EvaluationCampaign{}},
		{"EvaluatedSiae", &dbmodels.EvaluatedSiae{}},
		{"EvaluatedJobApplication", &dbmodels.EvaluatedJobApplication{}},
		{"EvaluatedAdministrativeCriteria", &dbmodels.EvaluatedAdministrativeCriteria{}},
		{"Sanctions", &dbmodels.Sanctions{}},
		{"FollowUpGroup", &dbmodels.FollowUpGroup{}},
		{"FollowUpGroupMembership", &dbmodels.FollowUpGroupMembership{}},
		{"Notification", &dbmodels.Notification{}},
		{"AgencyNotification", &dbmodels.AgencyNotification{}},
	}
	for _, t := range tables {
		if err := DB.AutoMigrate(t.model); err != nil {
			return errors.Wrapf(err, "erreur de création de la structure %s", t.name)
		}
	}
	log.Info("migrations terminées")
	return nil
}

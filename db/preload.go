package db

import (
	log "github.com/sirupsen/logrus"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

func InitPreload() {
	fillAdministrativeCriteria()
	fillGEIQAdministrativeCriteria()
}

// Criteria grids are reference data, keyed by name.
func fillAdministrativeCriteria() {
	grid := []dbmodels.AdministrativeCriteria{
		{Level: models.CriteriaLevel1, Name: "Bénéficiaire du RSA", WrittenProof: "Attestation RSA", UIRank: 1},
		{Level: models.CriteriaLevel1, Name: "Allocataire ASS", WrittenProof: "Attestation ASS", UIRank: 2},
		{Level: models.CriteriaLevel1, Name: "Allocataire AAH", WrittenProof: "Attestation AAH", UIRank: 3},
		{Level: models.CriteriaLevel1, Name: "DETLD (+ 24 mois)", WrittenProof: "Attestation Pôle emploi", UIRank: 4},
		{Level: models.CriteriaLevel2, Name: "Niveau d'étude 3 (CAP, BEP) ou infra", WrittenProof: "Diplôme ou attestation sur l'honneur", UIRank: 1},
		{Level: models.CriteriaLevel2, Name: "Senior (+50 ans)", WrittenProof: "Pièce d'identité", UIRank: 2},
		{Level: models.CriteriaLevel2, Name: "Jeune (-26 ans)", WrittenProof: "Pièce d'identité", UIRank: 3},
		{Level: models.CriteriaLevel2, Name: "Sortant de l'ASE", WrittenProof: "Attestation ASE", UIRank: 4},
		{Level: models.CriteriaLevel2, Name: "DELD (12-24 mois)", WrittenProof: "Attestation Pôle emploi", UIRank: 5},
		{Level: models.CriteriaLevel2, Name: "Travailleur handicapé", WrittenProof: "Attestation RQTH", UIRank: 6},
		{Level: models.CriteriaLevel2, Name: "Parent isolé", WrittenProof: "Attestation CAF", UIRank: 7},
		{Level: models.CriteriaLevel2, Name: "Personne sans hébergement ou hébergée ou ayant un parcours de rue", WrittenProof: "Attestation d'hébergement", UIRank: 8},
		{Level: models.CriteriaLevel2, Name: "Réfugié statutaire, protégé subsidiaire ou demandeur d'asile", WrittenProof: "Titre de séjour", UIRank: 9},
		{Level: models.CriteriaLevel2, Name: "Résident ZRR", WrittenProof: "Justificatif de domicile", UIRank: 10},
		{Level: models.CriteriaLevel2, Name: "Résident QPV", WrittenProof: "Justificatif de domicile", UIRank: 11},
		{Level: models.CriteriaLevel2, Name: "Sortant de détention ou personne placée sous main de justice", WrittenProof: "Attestation justice", UIRank: 12},
		{Level: models.CriteriaLevel2, Name: "Maîtrise de la langue française", WrittenProof: "Attestation de formation", UIRank: 13},
		{Level: models.CriteriaLevel2, Name: "Mobilité", WrittenProof: "Attestation sur l'honneur", UIRank: 14},
	}
	for _, rec := range grid {
		err := DB.Where(dbmodels.AdministrativeCriteria{Name: rec.Name}).FirstOrCreate(&rec).Error
		if err != nil {
			log.WithError(err).Error("erreur de chargement des critères administratifs")
			return
		}
	}
}

func fillGEIQAdministrativeCriteria() {
	level1 := models.CriteriaLevel1
	level2 := models.CriteriaLevel2
	grid := []dbmodels.GEIQAdministrativeCriteria{
		{Annex: models.CriteriaAnnex1, Name: "Personne éloignée du marché du travail (> 1 an)", WrittenProof: "Attestation Pôle emploi", UIRank: 1},
		{Annex: models.CriteriaAnnex1, Name: "Bénéficiaire de minima sociaux", WrittenProof: "Attestation CAF", UIRank: 2},
		{Annex: models.CriteriaAnnex1, Name: "Personne sans qualification", WrittenProof: "Attestation sur l'honneur", UIRank: 3},
		{Annex: models.CriteriaAnnex2, Level: &level1, Name: "Demandeur d'emploi de très longue durée", WrittenProof: "Attestation Pôle emploi", UIRank: 1},
		{Annex: models.CriteriaAnnex2, Level: &level1, Name: "Bénéficiaire du RSA", WrittenProof: "Attestation RSA", UIRank: 2},
		{Annex: models.CriteriaAnnex2, Level: &level1, Name: "Sortant de détention ou personne placée sous main de justice", WrittenProof: "Attestation justice", UIRank: 3},
		{Annex: models.CriteriaAnnex2, Level: &level2, Name: "Senior (+50 ans)", WrittenProof: "Pièce d'identité", UIRank: 4},
		{Annex: models.CriteriaAnnex2, Level: &level2, Name: "Jeune (-26 ans)", WrittenProof: "Pièce d'identité", UIRank: 5},
		{Annex: models.CriteriaAnnex2, Level: &level2, Name: "Résident QPV ou ZRR", WrittenProof: "Justificatif de domicile", UIRank: 6},
		{Annex: models.CriteriaAnnex2, Level: &level2, Name: "Travailleur handicapé", WrittenProof: "Attestation RQTH", UIRank: 7},
	}
	for _, rec := range grid {
		err := DB.Where(dbmodels.GEIQAdministrativeCriteria{Name: rec.Name}).FirstOrCreate(&rec).Error
		if err != nil {
			log.WithError(err).Error("erreur de chargement des critères administratifs GEIQ")
			return
		}
	}
}

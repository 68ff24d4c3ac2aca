package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type Provider interface {
	ExportCampaign(campaign dbmodels.EvaluationCampaign, list []dbmodels.EvaluatedSiae, states map[string]models.EvaluatedSiaeState) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var campaignHeaders = []string{"Structure", "SIRET", "Type", "Dossiers contrôlés", "État", "Premier contrôle", "Contrôle final", "Sanction"}

func (i impl) ExportCampaign(campaign dbmodels.EvaluationCampaign, list []dbmodels.EvaluatedSiae, states map[string]models.EvaluatedSiaeState) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("erreur de fermeture du fichier")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, campaignHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "erreur d'écriture de l'en-tête xlsx")
	}
	if len(list) != 0 {
		row, err = writeCampaignData(f, sheet, list, states, row)
		if err != nil {
			return nil, errors.Wrap(err, "erreur d'écriture des données xlsx")
		}
	}
	name := campaign.Name
	if name == "" {
		name = "Campagne"
	}
	f.SetSheetName(sheet, name)
	return f.WriteToBuffer()
}

func writeCampaignData(f *excelize.File, sheet string, list []dbmodels.EvaluatedSiae, states map[string]models.EvaluatedSiaeState, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(campaignHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Structure"
		col := 1
		if item.Company != nil {
			if err := writeColumn(f, sheet, col, row, item.Company.Name); err != nil {
				return row, err
			}
		}

		// "SIRET"
		col++
		if item.Company != nil {
			if err := writeColumn(f, sheet, col, row, item.Company.Siret); err != nil {
				return row, err
			}
		}

		// "Type"
		col++
		if item.Company != nil {
			if err := writeColumn(f, sheet, col, row, string(item.Company.Kind)); err != nil {
				return row, err
			}
		}

		// "Dossiers contrôlés"
		col++
		if err := writeColumn(f, sheet, col, row, len(item.EvaluatedJobApplications)); err != nil {
			return row, err
		}

		// "État"
		col++
		if err := writeColumn(f, sheet, col, row, string(states[item.ID])); err != nil {
			return row, err
		}

		// "Premier contrôle"
		col++
		if item.ReviewedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.ReviewedAt.Format("02/01/2006")); err != nil {
				return row, err
			}
		}

		// "Contrôle final"
		col++
		if item.FinalReviewedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.FinalReviewedAt.Format("02/01/2006")); err != nil {
				return row, err
			}
		}

		// "Sanction"
		col++
		if item.Sanctions != nil {
			if err := writeColumn(f, sheet, col, row, item.Sanctions.Summary()); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

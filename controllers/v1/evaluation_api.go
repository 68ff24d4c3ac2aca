package apiv1

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"itou-backend/controllers"
	evaluationhandler "itou-backend/lib/evaluation"
	filestorage "itou-backend/lib/file-storage"
	apimodels "itou-backend/models/api"
	evaluationapimodels "itou-backend/models/api/evaluation"
)

type evaluationApiController struct {
	controllers.BaseAPIController
}

func InitEvaluationApiRouters(app *fiber.App) {
	controller := evaluationApiController{}
	app.Route("evaluation", func(router fiber.Router) {
		router.Route("campaign", func(campaignRouter fiber.Router) {
			campaignRouter.Post("", controller.createCampaign)
			campaignRouter.Get("institution/:id", controller.listCampaigns)
			campaignRouter.Route(":id", func(idRouter fiber.Router) {
				idRouter.Get("", controller.getCampaign)
				idRouter.Put("percent", controller.setChosenPercent)
				idRouter.Post("populate", controller.populate)
				idRouter.Post("adversarial", controller.transitionToAdversarialPhase)
				idRouter.Post("close", controller.closeCampaign)
				idRouter.Get("export", controller.exportCampaign)
			})
		})
		router.Route("siae/:id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.getEvaluatedSiae)
			idRouter.Post("submit", controller.submitProofs)
			idRouter.Post("review", controller.review)
			idRouter.Post("validate-review", controller.validateReview)
			idRouter.Post("freeze", controller.freezeSubmission)
			idRouter.Post("sanctions", controller.setSanctions)
		})
		router.Post("criteria/:id/upload-proof", controller.uploadProof)
	})
}

// @Summary Créer une campagne de contrôle
// @Tags Contrôle a posteriori
// @Description Créer une campagne de contrôle a posteriori
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	evaluationapimodels.CreateCampaignRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.CampaignView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign [post]
func (c *evaluationApiController) createCampaign(ctx *fiber.Ctx) error {
	var payload evaluationapimodels.CreateCampaignRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := evaluationhandler.Instance.CreateCampaign(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de création de la campagne de contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Campagnes d'une institution
// @Tags Contrôle a posteriori
// @Description Liste des campagnes d'une institution
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de l'institution"
// @Success 200 {object} apimodels.Response{data=[]evaluationapimodels.CampaignView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign/institution/{id} [get]
func (c *evaluationApiController) listCampaigns(ctx *fiber.Ctx) error {
	institutionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := evaluationhandler.Instance.ListCampaigns(institutionID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture des campagnes de contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Détail d'une campagne
// @Tags Contrôle a posteriori
// @Description Détail d'une campagne de contrôle
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la campagne"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.CampaignView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign/{id} [get]
func (c *evaluationApiController) getCampaign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := evaluationhandler.Instance.GetCampaign(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture de la campagne de contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Fixer le taux de contrôle
// @Tags Contrôle a posteriori
// @Description Fixer le taux de structures contrôlées avant le tirage
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la campagne"
// @Param   percent	query	int	true	"taux de contrôle"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign/{id}/percent [put]
func (c *evaluationApiController) setChosenPercent(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	percent := ctx.QueryInt("percent")
	if err := evaluationhandler.Instance.SetChosenPercent(id, percent); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de modification du taux de contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Lancer la campagne
// @Tags Contrôle a posteriori
// @Description Tirer les structures contrôlées et ouvrir la campagne
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la campagne"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign/{id}/populate [post]
func (c *evaluationApiController) populate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.Populate(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lancement de la campagne de contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Passer en phase contradictoire
// @Tags Contrôle a posteriori
// @Description Clore la première phase du contrôle et ouvrir la phase contradictoire
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la campagne"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign/{id}/adversarial [post]
func (c *evaluationApiController) transitionToAdversarialPhase(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.TransitionToAdversarialPhase(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de passage en phase contradictoire")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Clôturer la campagne
// @Tags Contrôle a posteriori
// @Description Clôturer la campagne et notifier les structures de leur résultat
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la campagne"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign/{id}/close [post]
func (c *evaluationApiController) closeCampaign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.Close(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de clôture de la campagne de contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Exporter la campagne en Excel
// @Tags Contrôle a posteriori
// @Description Exporter le récapitulatif de la campagne en xlsx
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la campagne"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/campaign/{id}/export [get]
func (c *evaluationApiController) exportCampaign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := evaluationhandler.Instance.ExportCampaign(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'export de la campagne de contrôle")
	}
	fileName := fmt.Sprintf("controle-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Dossier d'une structure contrôlée
// @Tags Contrôle a posteriori
// @Description Dossier d'une structure contrôlée avec son état courant
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la structure contrôlée"
// @Success 200 {object} apimodels.Response{data=evaluationapimodels.EvaluatedSiaeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/siae/{id} [get]
func (c *evaluationApiController) getEvaluatedSiae(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := evaluationhandler.Instance.GetEvaluatedSiae(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture du dossier de contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Téléverser un justificatif
// @Tags Contrôle a posteriori
// @Description Téléverser le justificatif d'un critère contrôlé
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du critère contrôlé"
// @Param   proof	formData	file	true	"file to upload"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/criteria/{id}/upload-proof [post]
func (c *evaluationApiController) uploadProof(ctx *fiber.Ctx) error {
	criteriaID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("proof")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("erreur d'ouverture du fichier justificatif")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("erreur de lecture du fichier justificatif")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	contentType := file.Header.Get("Content-Type")
	proofURL, err := filestorage.Instance.UploadProof(ctx.UserContext(), criteriaID, file.Filename, contentType, fileBody)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.UploadProof(criteriaID, proofURL); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'enregistrement du justificatif")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Transmettre les justificatifs
// @Tags Contrôle a posteriori
// @Description Transmettre à l'institution tous les justificatifs téléversés
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la structure contrôlée"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/siae/{id}/submit [post]
func (c *evaluationApiController) submitProofs(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.SubmitProofs(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de transmission des justificatifs")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Contrôler les justificatifs
// @Tags Contrôle a posteriori
// @Description Accepter ou refuser les justificatifs transmis
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la structure contrôlée"
// @Param	body	body	evaluationapimodels.ReviewRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/siae/{id}/review [post]
func (c *evaluationApiController) review(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload evaluationapimodels.ReviewRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.Review(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de contrôle des justificatifs")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Valider le contrôle
// @Tags Contrôle a posteriori
// @Description Valider le contrôle; la première validation ouvre la phase contradictoire
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la structure contrôlée"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/siae/{id}/validate-review [post]
func (c *evaluationApiController) validateReview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.ValidateReview(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de validation du contrôle")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Geler la transmission
// @Tags Contrôle a posteriori
// @Description Geler la transmission des justificatifs pendant l'instruction
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la structure contrôlée"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/siae/{id}/freeze [post]
func (c *evaluationApiController) freezeSubmission(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.FreezeSubmission(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de gel de la transmission")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Prononcer les sanctions
// @Tags Contrôle a posteriori
// @Description Prononcer les sanctions d'une structure refusée
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la structure contrôlée"
// @Param	body	body	evaluationapimodels.SanctionsRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/evaluation/siae/{id}/sanctions [post]
func (c *evaluationApiController) setSanctions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload evaluationapimodels.SanctionsRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := evaluationhandler.Instance.SetSanctions(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'enregistrement des sanctions")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

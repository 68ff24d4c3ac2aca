package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"itou-backend/controllers"
	eligibilityhandler "itou-backend/lib/eligibility"
	apimodels "itou-backend/models/api"
	eligibilityapimodels "itou-backend/models/api/eligibility"
)

type eligibilityApiController struct {
	controllers.BaseAPIController
}

func InitEligibilityApiRouters(app *fiber.App) {
	controller := eligibilityApiController{}
	app.Route("eligibility", func(router fiber.Router) {
		router.Get("criteria", controller.listCriteria)
		router.Get("geiq-criteria", controller.listGEIQCriteria)
		router.Post("diagnosis", controller.createDiagnosis)
		router.Post("geiq-diagnosis", controller.createGEIQDiagnosis)
		router.Get("diagnosis/:id", controller.getDiagnosis)
		router.Get("geiq-diagnosis/:id", controller.getGEIQDiagnosis)
		router.Get("job-seeker/:id/last-valid", controller.lastValid)
	})
}

// @Summary Référentiel des critères administratifs IAE
// @Tags Éligibilité
// @Description Référentiel des critères administratifs IAE
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]eligibilityapimodels.CriteriaView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/eligibility/criteria [get]
func (c *eligibilityApiController) listCriteria(ctx *fiber.Ctx) error {
	list, err := eligibilityhandler.Instance.ListCriteria()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture des critères administratifs")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Référentiel des critères administratifs GEIQ
// @Tags Éligibilité
// @Description Référentiel des critères administratifs GEIQ
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]eligibilityapimodels.CriteriaView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/eligibility/geiq-criteria [get]
func (c *eligibilityApiController) listGEIQCriteria(ctx *fiber.Ctx) error {
	list, err := eligibilityhandler.Instance.ListGEIQCriteria()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture des critères administratifs GEIQ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Établir un diagnostic d'éligibilité IAE
// @Tags Éligibilité
// @Description Établir un diagnostic d'éligibilité IAE pour un candidat
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	eligibilityapimodels.CreateDiagnosisRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=eligibilityapimodels.DiagnosisView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/eligibility/diagnosis [post]
func (c *eligibilityApiController) createDiagnosis(ctx *fiber.Ctx) error {
	var payload eligibilityapimodels.CreateDiagnosisRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := eligibilityhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de création du diagnostic d'éligibilité")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Établir un diagnostic GEIQ
// @Tags Éligibilité
// @Description Établir un diagnostic d'éligibilité GEIQ pour un candidat
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	eligibilityapimodels.CreateGEIQDiagnosisRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=eligibilityapimodels.GEIQDiagnosisView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/eligibility/geiq-diagnosis [post]
func (c *eligibilityApiController) createGEIQDiagnosis(ctx *fiber.Ctx) error {
	var payload eligibilityapimodels.CreateGEIQDiagnosisRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := eligibilityhandler.Instance.CreateGEIQ(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de création du diagnostic GEIQ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Détail d'un diagnostic IAE
// @Tags Éligibilité
// @Description Détail d'un diagnostic d'éligibilité IAE
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du diagnostic"
// @Success 200 {object} apimodels.Response{data=eligibilityapimodels.DiagnosisView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/eligibility/diagnosis/{id} [get]
func (c *eligibilityApiController) getDiagnosis(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := eligibilityhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture du diagnostic")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Détail d'un diagnostic GEIQ
// @Tags Éligibilité
// @Description Détail d'un diagnostic GEIQ avec le montant de l'aide
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du diagnostic"
// @Success 200 {object} apimodels.Response{data=eligibilityapimodels.GEIQDiagnosisView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/eligibility/geiq-diagnosis/{id} [get]
func (c *eligibilityApiController) getGEIQDiagnosis(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := eligibilityhandler.Instance.GetGEIQ(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture du diagnostic GEIQ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Dernier diagnostic valable d'un candidat
// @Tags Éligibilité
// @Description Dernier diagnostic IAE encore valable pour un candidat
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du candidat"
// @Success 200 {object} apimodels.Response{data=eligibilityapimodels.DiagnosisView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/eligibility/job-seeker/{id}/last-valid [get]
func (c *eligibilityApiController) lastValid(ctx *fiber.Ctx) error {
	jobSeekerID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := eligibilityhandler.Instance.LastConsideredValid(jobSeekerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de recherche du diagnostic valable")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

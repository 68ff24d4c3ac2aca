package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"itou-backend/controllers"
	jobapplicationhandler "itou-backend/lib/jobapplication"
	"itou-backend/middleware"
	apimodels "itou-backend/models/api"
	jobapplicationapimodels "itou-backend/models/api/jobapplication"
)

type jobApplicationApiController struct {
	controllers.BaseAPIController
}

func InitJobApplicationApiRouters(app *fiber.App) {
	controller := jobApplicationApiController{}
	app.Route("job-application", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Get("history", controller.history)
			idRouter.Post("process", controller.process)
			idRouter.Post("postpone", controller.postpone)
			idRouter.Post("accept", controller.accept)
			idRouter.Post("refuse", controller.refuse)
			idRouter.Post("cancel", controller.cancel)
			idRouter.Post("reset", controller.reset)
			idRouter.Post("transfer", controller.transfer)
			idRouter.Post("external-transfer", controller.externalTransfer)
			idRouter.Post("move-to-prior-to-hire", controller.moveToPriorToHire)
			idRouter.Post("cancel-prior-to-hire", controller.cancelPriorToHire)
			idRouter.Post("prior-action", controller.addPriorAction)
			idRouter.Delete("prior-action/:actionId", controller.deletePriorAction)
			idRouter.Put("archive", controller.archive)
		})
	})
}

// @Summary Déposer une candidature
// @Tags Candidature
// @Description Déposer une candidature
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	jobapplicationapimodels.CreateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapplicationapimodels.JobApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application [post]
func (c *jobApplicationApiController) create(ctx *fiber.Ctx) error {
	var payload jobapplicationapimodels.CreateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicationhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de création de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Liste des candidatures
// @Tags Candidature
// @Description Liste des candidatures filtrée et paginée
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	jobapplicationapimodels.ListRequest	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapplicationapimodels.JobApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/list [post]
func (c *jobApplicationApiController) list(ctx *fiber.Ctx) error {
	var payload jobapplicationapimodels.ListRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	page, limit := payload.GetPage()
	list, rowCount, err := jobapplicationhandler.Instance.List(payload.Filter, page, limit)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture de la liste des candidatures")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Détail d'une candidature
// @Tags Candidature
// @Description Détail d'une candidature
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200 {object} apimodels.Response{data=jobapplicationapimodels.JobApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id} [get]
func (c *jobApplicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicationhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Historique des transitions
// @Tags Candidature
// @Description Historique des transitions d'une candidature
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200 {object} apimodels.Response{data=[]jobapplicationapimodels.TransitionLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/history [get]
func (c *jobApplicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := jobapplicationhandler.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture de l'historique de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Passer la candidature à l'étude
// @Tags Candidature
// @Description Passer la candidature à l'étude
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/process [post]
func (c *jobApplicationApiController) process(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.Process(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de passage de la candidature à l'étude")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mettre la candidature en attente
// @Tags Candidature
// @Description Mettre la candidature en attente
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Param	body	body	jobapplicationapimodels.PostponeRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/postpone [post]
func (c *jobApplicationApiController) postpone(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicationapimodels.PostponeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.Postpone(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de mise en attente de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Accepter la candidature
// @Tags Candidature
// @Description Accepter la candidature et délivrer le PASS IAE le cas échéant
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Param	body	body	jobapplicationapimodels.AcceptRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapplicationapimodels.AcceptResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/accept [post]
func (c *jobApplicationApiController) accept(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicationapimodels.AcceptRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	result, err := jobapplicationhandler.Instance.Accept(id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'acceptation de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Refuser la candidature
// @Tags Candidature
// @Description Refuser la candidature avec un motif
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Param	body	body	jobapplicationapimodels.RefuseRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/refuse [post]
func (c *jobApplicationApiController) refuse(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicationapimodels.RefuseRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.Refuse(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de refus de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Annuler l'embauche
// @Tags Candidature
// @Description Annuler une embauche acceptée
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/cancel [post]
func (c *jobApplicationApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.Cancel(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'annulation de l'embauche")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Réactiver une candidature obsolète
// @Tags Candidature
// @Description Réactiver une candidature obsolète
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/reset [post]
func (c *jobApplicationApiController) reset(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.Reset(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de réactivation de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Transférer la candidature
// @Tags Candidature
// @Description Transférer la candidature vers une autre structure
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Param	body	body	jobapplicationapimodels.TransferRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/transfer [post]
func (c *jobApplicationApiController) transfer(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicationapimodels.TransferRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.Transfer(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de transfert de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Transfert externe
// @Tags Candidature
// @Description Marquer une candidature refusée comme transférée hors de la plateforme
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/external-transfer [post]
func (c *jobApplicationApiController) externalTransfer(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.ExternalTransfer(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de transfert externe de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Passer en pré-embauche
// @Tags Candidature
// @Description Passer la candidature en actions préalables à l'embauche (GEIQ)
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/move-to-prior-to-hire [post]
func (c *jobApplicationApiController) moveToPriorToHire(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.MoveToPriorToHire(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de passage en pré-embauche")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Annuler la pré-embauche
// @Tags Candidature
// @Description Sortir la candidature des actions préalables à l'embauche
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/cancel-prior-to-hire [post]
func (c *jobApplicationApiController) cancelPriorToHire(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := jobapplicationhandler.Instance.CancelPriorToHire(id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'annulation de la pré-embauche")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Ajouter une action préalable
// @Tags Candidature
// @Description Ajouter une action préalable à l'embauche (GEIQ)
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Param	body	body	jobapplicationapimodels.PriorActionRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/prior-action [post]
func (c *jobApplicationApiController) addPriorAction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicationapimodels.PriorActionRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := jobapplicationhandler.Instance.AddPriorAction(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'ajout de l'action préalable")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Supprimer une action préalable
// @Tags Candidature
// @Description Supprimer une action préalable à l'embauche (GEIQ)
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Param   actionId	path	string	true	"ID de l'action préalable"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/prior-action/{actionId} [delete]
func (c *jobApplicationApiController) deletePriorAction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actionID, err := c.GetIDByKey(ctx, "actionId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := jobapplicationhandler.Instance.DeletePriorAction(id, actionID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de suppression de l'action préalable")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Archiver/désarchiver la candidature
// @Tags Candidature
// @Description Archiver ou désarchiver la candidature
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID de la candidature"
// @Param   archived	query	bool	false	"true pour archiver"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/job-application/{id}/archive [put]
func (c *jobApplicationApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	archived := ctx.QueryBool("archived", true)
	if err := jobapplicationhandler.Instance.Archive(id, archived); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur d'archivage de la candidature")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

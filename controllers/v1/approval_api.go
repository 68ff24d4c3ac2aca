package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"itou-backend/controllers"
	approvalhandler "itou-backend/lib/approval"
	"itou-backend/middleware"
	apimodels "itou-backend/models/api"
	approvalapimodels "itou-backend/models/api/approval"
)

type approvalApiController struct {
	controllers.BaseAPIController
}

func InitApprovalApiRouters(app *fiber.App) {
	controller := approvalApiController{}
	app.Route("approval", func(router fiber.Router) {
		router.Get("user/:id", controller.listForUser)
		router.Get("number/:number", controller.getByNumber)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Post("suspend", controller.suspend)
			idRouter.Post("unsuspend", controller.unsuspend)
			idRouter.Post("prolong", controller.prolong)
			idRouter.Put("start-date", controller.updateStartDate)
			idRouter.Delete("", controller.delete)
		})
	})
}

// @Summary Détail d'un PASS IAE
// @Tags PASS IAE
// @Description Détail d'un PASS IAE avec suspensions et prolongations
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du PASS IAE"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/{id} [get]
func (c *approvalApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := approvalhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture du PASS IAE")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Recherche d'un PASS IAE par numéro
// @Tags PASS IAE
// @Description Détail d'un PASS IAE retrouvé par son numéro
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   number	path	string	true	"numéro du PASS IAE"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/number/{number} [get]
func (c *approvalApiController) getByNumber(ctx *fiber.Ctx) error {
	number, err := c.GetIDByKey(ctx, "number")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := approvalhandler.Instance.GetByNumber(number)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture du PASS IAE")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary PASS IAE d'un candidat
// @Tags PASS IAE
// @Description Liste des PASS IAE d'un candidat
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du candidat"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/user/{id} [get]
func (c *approvalApiController) listForUser(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := approvalhandler.Instance.ListForUser(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de lecture des PASS IAE du candidat")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Suspendre un PASS IAE
// @Tags PASS IAE
// @Description Suspendre un PASS IAE en cours
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du PASS IAE"
// @Param	body	body	approvalapimodels.SuspendRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/{id}/suspend [post]
func (c *approvalApiController) suspend(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.SuspendRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := approvalhandler.Instance.Suspend(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de suspension du PASS IAE")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Lever la suspension d'un PASS IAE
// @Tags PASS IAE
// @Description Lever la suspension active à la veille de la nouvelle embauche
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du PASS IAE"
// @Param	body	body	approvalapimodels.UnsuspendRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/{id}/unsuspend [post]
func (c *approvalApiController) unsuspend(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.UnsuspendRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := approvalhandler.Instance.Unsuspend(id, payload.HiringStartAt); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de levée de la suspension du PASS IAE")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Prolonger un PASS IAE
// @Tags PASS IAE
// @Description Prolonger un PASS IAE en cours
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du PASS IAE"
// @Param	body	body	approvalapimodels.ProlongRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/{id}/prolong [post]
func (c *approvalApiController) prolong(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.ProlongRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := approvalhandler.Instance.Prolong(id, userID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de prolongation du PASS IAE")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Décaler le début d'un PASS IAE
// @Tags PASS IAE
// @Description Avancer la date de début d'un PASS IAE non démarré
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du PASS IAE"
// @Param	body	body	approvalapimodels.UpdateStartDateRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/{id}/start-date [put]
func (c *approvalApiController) updateStartDate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.UpdateStartDateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := approvalhandler.Instance.UpdateStartDate(id, payload.StartAt); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de modification du début du PASS IAE")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Retirer un PASS IAE
// @Tags PASS IAE
// @Description Retirer un PASS IAE qu'aucune embauche n'utilise
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID du PASS IAE"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/approval/{id} [delete]
func (c *approvalApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := approvalhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Erreur de retrait du PASS IAE")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

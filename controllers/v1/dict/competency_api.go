package dict

import (
	"github.com/gofiber/fiber/v2"

	"appraisal-backend/controllers"
	competencyprovider "appraisal-backend/lib/dicts/competency"
	apimodels "appraisal-backend/models/api"
	dictapimodels "appraisal-backend/models/api/dict"
)

type competencyDictApiController struct {
	controllers.BaseAPIController
}

func InitCompetencyDictApiRouters(app *fiber.App) {
	controller := competencyDictApiController{}
	app.Route("competency", func(router fiber.Router) {
		router.Post("", controller.competencyCreate)
		router.Get("", controller.competencyList)
		router.Get(":id", controller.competencyGet)
		router.Delete(":id", controller.competencyDelete)
	})
}

// @Summary Создание
// @Tags Справочник. Компетенции
// @Description Создание компетенции
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.CompetencyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/competency [post]
func (c *competencyDictApiController) competencyCreate(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	var payload dictapimodels.CompetencyData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, logger, err, "failed to parse request body")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, logger, err, "invalid request body")
	}
	id, err := competencyprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to create competency")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Справочник. Компетенции
// @Description Список компетенций
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.CompetencyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/competency [get]
func (c *competencyDictApiController) competencyList(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	list, err := competencyprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to list competencies")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Справочник. Компетенции
// @Description Получение компетенции по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.CompetencyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/competency/{id} [get]
func (c *competencyDictApiController) competencyGet(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	view, err := competencyprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to get competency")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Удаление
// @Tags Справочник. Компетенции
// @Description Удаление компетенции по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/competency/{id} [delete]
func (c *competencyDictApiController) competencyDelete(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	if err := competencyprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, logger, err, "failed to delete competency")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

package apiv1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"appraisal-backend/controllers"
	appraisalhandler "appraisal-backend/lib/appraisal"
	attachmenthandler "appraisal-backend/lib/appraisal/attachment"
	"appraisal-backend/lib/appraisal/cascade"
	competencyassign "appraisal-backend/lib/appraisal/competency-assign"
	gpthandler "appraisal-backend/lib/gpt"
	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/middleware"
	apimodels "appraisal-backend/models/api"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
)

const maxAttachmentSize = 10 * 1024 * 1024

type appraisalApiController struct {
	controllers.BaseAPIController
}

func InitAppraisalApiRouters(app *fiber.App) {
	controller := appraisalApiController{}
	app.Route("appraisals", func(router fiber.Router) {
		router.Post("", controller.createOrUpdate)
		router.Get("", controller.list)
		router.Get("export", controller.export)
		router.Get("employee/:id", controller.listByEmployee)
		router.Get("supervisor/:id", controller.listBySupervisor)
		router.Get("attachment/:id", controller.downloadAttachment)
		router.Delete("attachment/:id", controller.deleteAttachment)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Patch("", controller.divisionalReview)
			idRouter.Patch("final-review", controller.finalReview)
			idRouter.Post("competencies", controller.assignCompetencies)
			idRouter.Delete("", controller.delete)
			idRouter.Post("summary", controller.summary)
			idRouter.Post("attachments", middleware.WithBodyLimit(maxAttachmentSize), controller.uploadAttachment)
			idRouter.Get("attachments", controller.listAttachments)
		})
	})
}

// @Summary Создание или обновление оценки
// @Tags Оценка
// @Description Создание или обновление оценки по ключу сотрудник+цикл+шаблон+статус
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 appraisalapimodels.AppraisalData	true	"request body"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals [post]
func (c *appraisalApiController) createOrUpdate(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	var payload appraisalapimodels.AppraisalData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, logger, err, "failed to parse request body")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, logger, err, "invalid request body")
	}
	view, err := appraisalhandler.Instance.CreateOrUpdate(payload)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to save appraisal")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список оценок
// @Tags Оценка
// @Description Список оценок с фильтром и пагинацией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status	query	string	false	"фильтр по статусу"
// @Param   cycleId	query	string	false	"фильтр по циклу"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals [get]
func (c *appraisalApiController) list(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	var filter appraisalapimodels.AppraisalFilter
	if err := ctx.QueryParser(&filter); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to parse query parameters"))
	}
	if err := filter.Validate(); err != nil {
		return c.SendError(ctx, logger, err, "invalid filter")
	}
	list, rowCount, err := appraisalhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to list appraisals")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка реестра оценок в xlsx
// @Tags Оценка
// @Description Выгрузка реестра оценок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/export [get]
func (c *appraisalApiController) export(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	if !middleware.GetUserRole(ctx).IsHrAdmin() {
		return c.SendError(ctx, logger, apperror.Forbidden("operation not permitted"), "operation not permitted")
	}
	var filter appraisalapimodels.AppraisalFilter
	if err := ctx.QueryParser(&filter); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to parse query parameters"))
	}
	buf, err := appraisalhandler.Instance.Export(filter)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to export appraisals")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="appraisals.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// @Summary Оценки сотрудника
// @Tags Оценка
// @Description История оценок сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сотрудника"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/employee/{id} [get]
func (c *appraisalApiController) listByEmployee(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	employeeID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	var filter appraisalapimodels.AppraisalFilter
	if err := ctx.QueryParser(&filter); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to parse query parameters"))
	}
	filter.EmployeeID = employeeID
	list, rowCount, err := appraisalhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to list appraisals")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Оценки подчинённых
// @Tags Оценка
// @Description Оценки сотрудников, подчинённых руководителю
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID руководителя"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/supervisor/{id} [get]
func (c *appraisalApiController) listBySupervisor(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	supervisorID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	var filter appraisalapimodels.AppraisalFilter
	if err := ctx.QueryParser(&filter); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to parse query parameters"))
	}
	filter.SupervisorID = supervisorID
	list, rowCount, err := appraisalhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to list appraisals")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение оценки по ИД
// @Tags Оценка
// @Description Получение оценки по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id} [get]
func (c *appraisalApiController) get(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	view, err := appraisalhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to get appraisal")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Решение руководителя дивизиона
// @Tags Оценка
// @Description Фиксация решения руководителя дивизиона и передача оценки в HR
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Param	body body	 appraisalapimodels.DivisionalReviewData	true	"request body"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id} [patch]
func (c *appraisalApiController) divisionalReview(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	var payload appraisalapimodels.DivisionalReviewData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, logger, err, "failed to parse request body")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, logger, err, "invalid request body")
	}
	view, err := appraisalhandler.Instance.DivisionalReview(id, middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to save divisional review")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Финальное решение HR
// @Tags Оценка
// @Description Фиксация финального решения HR, перевод в COMPLETED
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Param	body body	 appraisalapimodels.FinalReviewData	true	"request body"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id}/final-review [patch]
func (c *appraisalApiController) finalReview(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	var payload appraisalapimodels.FinalReviewData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, logger, err, "failed to parse request body")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, logger, err, "invalid request body")
	}
	view, err := appraisalhandler.Instance.FinalReview(id, middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to save final review")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Назначение компетенций
// @Tags Оценка
// @Description Замена набора компетенций черновика, требуется ровно три
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Param	body body	 appraisalapimodels.CompetencyAssignData	true	"request body"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AppraisalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id}/competencies [post]
func (c *appraisalApiController) assignCompetencies(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	var payload appraisalapimodels.CompetencyAssignData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, logger, err, "failed to parse request body")
	}
	view, err := competencyassign.Instance.Assign(id, payload.CompetencyIDs)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to assign competencies")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Удаление оценки
// @Tags Оценка
// @Description Каскадное удаление оценки со всеми связанными записями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id} [delete]
func (c *appraisalApiController) delete(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	err = cascade.Instance.Delete(ctx.UserContext(), id, middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to delete appraisal")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Резюме итогов оценки
// @Tags Оценка
// @Description Генерация краткого резюме итогов оценки через YandexGPT
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=gptmodels.ReviewSummaryResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id}/summary [post]
func (c *appraisalApiController) summary(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	if !middleware.GetUserRole(ctx).IsHrAdmin() {
		return c.SendError(ctx, logger, apperror.Forbidden("operation not permitted"), "operation not permitted")
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	resp, err := gpthandler.Instance.GenerateReviewSummary(id)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to generate summary")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Загрузить вложение
// @Tags Оценка
// @Description Загрузить файл-вложение к оценке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID оценки"
// @Param   file		formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=appraisalapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id}/attachments [post]
func (c *appraisalApiController) uploadAttachment(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла вложения")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("Ошибка при загрузке файла вложения")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	view, err := attachmenthandler.Instance.Upload(ctx.UserContext(), id, file.Filename, contentType, fileBody)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to upload attachment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список вложений
// @Tags Оценка
// @Description Список вложений оценки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID оценки"
// @Success 200 {object} apimodels.Response{data=[]appraisalapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/{id}/attachments [get]
func (c *appraisalApiController) listAttachments(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	list, err := attachmenthandler.Instance.List(id)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to list attachments")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Скачать вложение
// @Tags Оценка
// @Description Скачать файл-вложение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID вложения"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/attachment/{id} [get]
func (c *appraisalApiController) downloadAttachment(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	body, fileName, err := attachmenthandler.Instance.Download(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, logger, err, "failed to download attachment")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Send(body)
}

// @Summary Удалить вложение
// @Tags Оценка
// @Description Удалить файл-вложение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID вложения"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/appraisals/attachment/{id} [delete]
func (c *appraisalApiController) deleteAttachment(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, logger, err, "record id is required")
	}
	if err := attachmenthandler.Instance.Delete(ctx.UserContext(), id); err != nil {
		return c.SendError(ctx, logger, err, "failed to delete attachment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

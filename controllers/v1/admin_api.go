package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"appraisal-backend/controllers"
	messagetemplate "appraisal-backend/lib/message-template"
	"appraisal-backend/lib/notification"
	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/middleware"
	"appraisal-backend/models"
	apimodels "appraisal-backend/models/api"
	notificationapimodels "appraisal-backend/models/api/notification"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Post("test-email", controller.testEmail)
}

// @Summary Тестовое письмо
// @Tags Администрирование
// @Description Отправка тестового письма для проверки канала доставки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.TestEmailData	true	"request body"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.SendResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/test-email [post]
func (c *adminApiController) testEmail(ctx *fiber.Ctx) error {
	logger := c.GetLogger(ctx)
	var payload notificationapimodels.TestEmailData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, logger, err, "failed to parse request body")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, logger, err, "invalid request body")
	}
	body, err := messagetemplate.BuildTestEmailMsg(models.TestEmailTemplateData{
		Recipient: payload.Recipient,
		SentBy:    middleware.GetUserID(ctx),
	})
	if err != nil {
		return c.SendError(ctx, logger, apperror.Dependency(err, "failed to build email body"), "failed to build email body")
	}
	msg := notificationapimodels.NotificationMessage{
		Recipient: payload.Recipient,
		Subject:   messagetemplate.GetTestEmailTitle(),
		HtmlBody:  body,
	}
	result, err := notification.Instance.Send(ctx.UserContext(), msg)
	if err != nil {
		return c.SendError(ctx, logger, apperror.Dependency(err, "failed to send test email"), "failed to send test email")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

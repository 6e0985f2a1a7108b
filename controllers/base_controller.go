package controllers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"appraisal-backend/lib/utils/apperror"
	apimodels "appraisal-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return apperror.Validation("failed to parse request body")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", apperror.Validation("record id is required")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError маппит класс ошибки на HTTP статус.
// Сообщения классифицированных ошибок отдаются как есть,
// для Dependency наружу уходит только fallbackMsg.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, fallbackMsg string) error {
	status := apperror.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithError(err).Error(fallbackMsg)
		return ctx.Status(status).JSON(apimodels.NewError(fallbackMsg))
	}
	logger.WithError(err).Warn(fallbackMsg)
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

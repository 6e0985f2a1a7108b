package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "appraisal-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.AppraisalCycle{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AppraisalCycle")
	}
	if err := DB.AutoMigrate(&dbmodels.AppraisalTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AppraisalTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.Competency{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Competency")
	}
	if err := DB.AutoMigrate(&dbmodels.AppraisalInstance{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AppraisalInstance")
	}
	if err := DB.AutoMigrate(&dbmodels.AppraisalCompetency{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AppraisalCompetency")
	}
	if err := DB.AutoMigrate(&dbmodels.SectionInstance{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SectionInstance")
	}
	if err := DB.AutoMigrate(&dbmodels.FreeTextResponse{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FreeTextResponse")
	}
	if err := DB.AutoMigrate(&dbmodels.Goal{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Goal")
	}
	if err := DB.AutoMigrate(&dbmodels.AppraisalAttachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AppraisalAttachment")
	}
	log.Info("Миграция прошла успешно")
	return nil
}

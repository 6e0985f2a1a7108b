package xlsexport

import (
	"bytes"

	dbmodels "appraisal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportAppraisalList(list []dbmodels.AppraisalInstance) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var appraisalHeaders = []string{"Сотрудник", "Email", "Руководитель", "Цикл", "Шаблон", "Статус", "Итоговый балл", "Дата создания"}

func (i impl) ExportAppraisalList(list []dbmodels.AppraisalInstance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, appraisalHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeAppraisalData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Оценки")
	return f.WriteToBuffer()
}

func writeAppraisalData(f *excelize.File, sheet string, list []dbmodels.AppraisalInstance, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(appraisalHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		if item.Employee != nil {
			if err := writeColumn(f, sheet, col, row, item.Employee.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Email"
		col++
		if item.Employee != nil {
			if err := writeColumn(f, sheet, col, row, item.Employee.Email); err != nil {
				return row, err
			}
		}

		// "Руководитель"
		col++
		if item.Employee != nil && item.Employee.Manager != nil {
			if err := writeColumn(f, sheet, col, row, item.Employee.Manager.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Цикл"
		col++
		if item.Cycle != nil {
			if err := writeColumn(f, sheet, col, row, item.Cycle.Name); err != nil {
				return row, err
			}
		}

		// "Шаблон"
		col++
		if item.Template != nil {
			if err := writeColumn(f, sheet, col, row, item.Template.Name); err != nil {
				return row, err
			}
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Итоговый балл"
		col++
		if item.OverallScore != 0 {
			if err := writeColumn(f, sheet, col, row, item.OverallScore); err != nil {
				return row, err
			}
		}

		// "Дата создания"
		col++
		if !item.CreatedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

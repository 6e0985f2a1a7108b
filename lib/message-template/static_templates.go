package messagetemplate

import (
	"bytes"
	"html/template"
	"os"
	"strings"

	"github.com/pkg/errors"

	"appraisal-backend/models"
)

const (
	employeeConfirmationTitle   = "Your appraisal has been submitted"
	managerNoticeTitle          = "An appraisal is awaiting your review"
	hrNoticeTitle               = "An appraisal is awaiting HR finalization"
	divisionalConfirmationTitle = "Divisional review recorded"
	draftReminderTitle          = "Your appraisal draft is waiting"
	testEmailTitle              = "Appraisal backend test email"
)

func BuildEmployeeConfirmationMsg(data models.WorkflowEmailTemplateData) (string, error) {
	return buildMsg("static/employee_confirmation.html", data)
}

func GetEmployeeConfirmationTitle() string {
	return employeeConfirmationTitle
}

func BuildManagerNoticeMsg(data models.WorkflowEmailTemplateData) (string, error) {
	return buildMsg("static/manager_notice.html", data)
}

func GetManagerNoticeTitle() string {
	return managerNoticeTitle
}

func BuildHrNoticeMsg(data models.WorkflowEmailTemplateData) (string, error) {
	return buildMsg("static/hr_notice.html", data)
}

func GetHrNoticeTitle() string {
	return hrNoticeTitle
}

func BuildDivisionalConfirmationMsg(data models.WorkflowEmailTemplateData) (string, error) {
	return buildMsg("static/divisional_confirmation.html", data)
}

func GetDivisionalConfirmationTitle() string {
	return divisionalConfirmationTitle
}

func BuildDraftReminderMsg(data models.ReminderTemplateData) (string, error) {
	return buildMsg("static/draft_reminder.html", data)
}

func GetDraftReminderTitle() string {
	return draftReminderTitle
}

func BuildTestEmailMsg(data models.TestEmailTemplateData) (string, error) {
	return buildMsg("static/test_email.html", data)
}

func GetTestEmailTitle() string {
	return testEmailTitle
}

func buildMsg(filePath string, data interface{}) (string, error) {
	tpl, err := getTemplate(filePath)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	err = tpl.Execute(buf, data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func getTemplate(filePath string) (*template.Template, error) {
	tmplBody, err := getTplFile(filePath)
	if err != nil {
		return nil, err
	}
	body := strings.Replace(string(tmplBody), "\n", "", -1)

	tpl, err := template.New("msg_body").Parse(body)
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

func getTplFile(filePath string) ([]byte, error) {
	body, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения файла шаблона %v", filePath)
	}
	return body, nil
}

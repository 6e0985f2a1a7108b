package models

// Данные для html шаблонов писем (lib/message-template).

type WorkflowEmailTemplateData struct {
	EmployeeName  string
	ManagerName   string
	CycleName     string
	TemplateName  string
	Status        string
	AppraisalLink string
}

type ReminderTemplateData struct {
	EmployeeName string
	CycleName    string
	DraftAge     string
}

type TestEmailTemplateData struct {
	Recipient string
	SentBy    string
}

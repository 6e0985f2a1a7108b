package models

import "strings"

type AppraisalStatus string

// Статусы основной цепочки согласования оценки.
// SELF_EVALUATION — параллельный статус, в цепочке не участвует
// и исключается из списков по умолчанию.
const (
	AppraisalStatusDraft             AppraisalStatus = "DRAFT"
	AppraisalStatusSubmitted         AppraisalStatus = "SUBMITTED"
	AppraisalStatusPendingManager    AppraisalStatus = "PENDING_MANAGER_REVIEW"
	AppraisalStatusPendingDivisional AppraisalStatus = "PENDING_DIVISIONAL_REVIEW"
	AppraisalStatusAwaitingHr        AppraisalStatus = "AWAITING_HR"
	AppraisalStatusCompleted         AppraisalStatus = "COMPLETED"
	AppraisalStatusSelfEvaluation    AppraisalStatus = "SELF_EVALUATION"
)

var appraisalStatuses = map[AppraisalStatus]bool{
	AppraisalStatusDraft:             true,
	AppraisalStatusSubmitted:         true,
	AppraisalStatusPendingManager:    true,
	AppraisalStatusPendingDivisional: true,
	AppraisalStatusAwaitingHr:        true,
	AppraisalStatusCompleted:         true,
	AppraisalStatusSelfEvaluation:    true,
}

// ParseAppraisalStatus приводит входящий статус к каноническому виду.
// Единственная точка нормализации регистра для всего сервиса.
func ParseAppraisalStatus(value string) (AppraisalStatus, bool) {
	status := AppraisalStatus(strings.ToUpper(strings.TrimSpace(value)))
	if appraisalStatuses[status] {
		return status, true
	}
	return "", false
}

func (s AppraisalStatus) IsDraft() bool {
	return s == AppraisalStatusDraft
}

func (s AppraisalStatus) IsCompleted() bool {
	return s == AppraisalStatusCompleted
}

// InReviewChain — статус входит в основную цепочку и влечёт
// рассылку уведомлений при первом попадании в неё.
func (s AppraisalStatus) InReviewChain() bool {
	switch s {
	case AppraisalStatusSubmitted,
		AppraisalStatusPendingManager,
		AppraisalStatusPendingDivisional,
		AppraisalStatusAwaitingHr,
		AppraisalStatusCompleted:
		return true
	}
	return false
}

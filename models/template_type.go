package models

import "strings"

type TemplateType string

const (
	TemplateTypeAnnual          TemplateType = "ANNUAL"
	TemplateTypeProbation       TemplateType = "PROBATION"
	TemplateTypeContractRenewal TemplateType = "CONTRACT_RENEWAL"
)

func ParseTemplateType(value string) (TemplateType, bool) {
	tt := TemplateType(strings.ToUpper(strings.TrimSpace(value)))
	switch tt {
	case TemplateTypeAnnual, TemplateTypeProbation, TemplateTypeContractRenewal:
		return tt, true
	}
	return "", false
}

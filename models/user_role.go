package models

type UserRole string

const (
	EmployeeRole       UserRole = "EMPLOYEE"
	ManagerRole        UserRole = "MANAGER"
	DivisionalHeadRole UserRole = "DIVISIONAL_HEAD"
	HrAdminRole        UserRole = "HR_ADMIN"
)

var roleHumanName = map[UserRole]string{
	EmployeeRole:       "Сотрудник",
	ManagerRole:        "Руководитель",
	DivisionalHeadRole: "Руководитель дивизиона",
	HrAdminRole:        "Администратор HR",
}

func (r UserRole) ToHuman() string {
	name, ok := roleHumanName[r]
	if ok {
		return name
	}
	return string(r)
}

func (r UserRole) IsHrAdmin() bool {
	return r == HrAdminRole
}

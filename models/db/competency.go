package dbmodels

type Competency struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	Category    string `gorm:"type:varchar(100)"`
}

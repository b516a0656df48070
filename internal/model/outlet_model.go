package model

type Outlet struct {
	Id           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:text;not null"`
	Address      string `gorm:"type:text"`
	Area         string `gorm:"type:text;index"`
	State        string `gorm:"type:text;index"`
	OpeningTime  string `gorm:"type:text"`
	ClosingTime  string `gorm:"type:text"`
	DirectionUrl string `gorm:"type:text"`
}

func (Outlet) TableName() string {
	return "outlets"
}

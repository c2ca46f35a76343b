package models

// MenuItem is a single dish or drink sold at a booth. Absent compliance
// flags are false.
type MenuItem struct {
	ID                string      `gorm:"primaryKey;size:64" json:"id" yaml:"id" validate:"required"`
	BoothID           string      `gorm:"size:16;not null;index" json:"boothId" yaml:"boothId" validate:"required"`
	Name              string      `gorm:"size:255;not null" json:"name" yaml:"name" validate:"required"`
	Price             float64     `gorm:"not null;default:0" json:"price" yaml:"price" validate:"gte=0"`
	Spiciness         int         `gorm:"not null;default:0" json:"spiciness" yaml:"spiciness" validate:"gte=0,lte=4"`
	HalalCertified    bool        `gorm:"not null;default:false" json:"halalCertified" yaml:"halalCertified"`
	ContainsPork      bool        `gorm:"not null;default:false" json:"containsPork" yaml:"containsPork"`
	ContainsBeef      bool        `gorm:"not null;default:false" json:"containsBeef" yaml:"containsBeef"`
	ContainsAlcohol   bool        `gorm:"not null;default:false" json:"containsAlcohol" yaml:"containsAlcohol"`
	ContainsShellfish bool        `gorm:"not null;default:false" json:"containsShellfish" yaml:"containsShellfish"`
	Allergens         StringArray `gorm:"type:text" json:"allergens" yaml:"allergens" validate:"dive,oneof=nuts dairy gluten egg soy seafood"`
	Description       string      `gorm:"type:text" json:"description,omitempty" yaml:"description"`
	ImageURL          string      `gorm:"size:512" json:"imageUrl,omitempty" yaml:"imageUrl"`
	Steps             StringArray `gorm:"type:text" json:"steps,omitempty" yaml:"steps"`
	Position          int         `gorm:"not null;default:0;index" json:"-" yaml:"-"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

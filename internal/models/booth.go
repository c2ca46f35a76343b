package models

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `gorm:"column:lat" json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `gorm:"column:lon" json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
}

// Booth is a festival food booth. The compliance flags summarize its menu
// and may be coarser than the flags on individual items.
type Booth struct {
	ID             string      `gorm:"primaryKey;size:16" json:"id" yaml:"id" validate:"required"`
	Name           string      `gorm:"size:255;not null" json:"name" yaml:"name" validate:"required"`
	Location       Location    `gorm:"embedded" json:"location" yaml:"location"`
	AvgPrice       float64     `gorm:"not null;default:0" json:"avgPrice" yaml:"avgPrice" validate:"gte=0"`
	SpicinessMax   int         `gorm:"not null;default:0" json:"spicinessMax" yaml:"spicinessMax" validate:"gte=0,lte=4"`
	Cuisines       StringArray `gorm:"type:text" json:"cuisines" yaml:"cuisines"`
	HalalCertified bool        `gorm:"not null;default:false" json:"halalCertified" yaml:"halalCertified"`
	HasPork        bool        `gorm:"not null;default:false" json:"hasPork" yaml:"hasPork"`
	HasAlcohol     bool        `gorm:"not null;default:false" json:"hasAlcohol" yaml:"hasAlcohol"`
	HasBeef        bool        `gorm:"not null;default:false" json:"hasBeef" yaml:"hasBeef"`
	HasShellfish   bool        `gorm:"not null;default:false" json:"hasShellfish" yaml:"hasShellfish"`
	Position       int         `gorm:"not null;default:0;index" json:"-" yaml:"-"`
}

func (Booth) TableName() string {
	return "booths"
}

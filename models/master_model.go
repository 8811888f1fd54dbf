package models

import "gorm.io/gorm"

// Port of discharge master.
type Port struct {
	gorm.Model
	PortCode  string `json:"port_code" gorm:"unique"`
	PortName  string `json:"port_name"`
	Region    Region `json:"region"`
	Country   string `json:"country"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

// Consignee master (receiver of record on a booking).
type Consignee struct {
	gorm.Model
	ConsigneeCode string `json:"consignee_code" gorm:"unique"`
	ConsigneeName string `json:"consignee_name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int
}

// Factory master (shipper of record).
type Factory struct {
	gorm.Model
	FactoryCode string `json:"factory_code" gorm:"unique"`
	FactoryName string `json:"factory_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}

// Tariff maps a duty code to its rate and description.
type Tariff struct {
	gorm.Model
	DutyCode    string  `json:"duty_code" gorm:"unique"`
	Description string  `json:"description"`
	DutyRate    float64 `json:"duty_rate"`
	Currency    string  `json:"currency"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}

// PackingType master (carton, pallet, ...).
type PackingType struct {
	gorm.Model
	Code      string `json:"code" gorm:"unique"`
	Name      string `json:"name"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

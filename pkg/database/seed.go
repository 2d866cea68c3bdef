package database

import (
	"github.com/responderhub/coverage-api-go/pkg/slots"
	"gorm.io/gorm"
)

// EnsureDefaultTimeUnits seeds the daily slot plan when the table is
// empty, so break-gap computation always has configuration to work from.
func EnsureDefaultTimeUnits(db *gorm.DB) error {
	var count int64
	db.Model(&TimeUnit{}).Count(&count)
	if count > 0 {
		return nil
	}

	for i, u := range slots.DefaultUnits() {
		unit := TimeUnit{
			Name:    u.Name,
			Start:   u.Start,
			End:     u.End,
			IsBreak: u.IsBreak,
			Ordinal: i,
		}
		if err := db.Create(&unit).Error; err != nil {
			return err
		}
	}
	return nil
}

// LoadTimeUnits returns the configured daily plan in ordinal order.
func LoadTimeUnits(db *gorm.DB) ([]slots.TimeUnit, error) {
	var rows []TimeUnit
	if err := db.Order("ordinal asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	units := make([]slots.TimeUnit, 0, len(rows))
	for _, r := range rows {
		units = append(units, slots.TimeUnit{
			Name:    r.Name,
			Start:   r.Start,
			End:     r.End,
			IsBreak: r.IsBreak,
		})
	}
	return units, nil
}

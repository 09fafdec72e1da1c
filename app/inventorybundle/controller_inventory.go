package inventorybundle

import (
	"github.com/jinzhu/gorm"
	"rvmtrack_backend/app/core"
)

// InventoryController struct
type InventoryController struct {
	core.Controller
	ormDB *gorm.DB
}

// NewInventoryController instance
func NewInventoryController(ormDB *gorm.DB, Users *map[string]core.User) *InventoryController {
	c := &InventoryController{
		Controller: core.Controller{Users: Users},
		ormDB:      ormDB,
	}

	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&Router{}, &RvmUnit{}, &SimCard{}, &DimDb{})
	}

	return c
}

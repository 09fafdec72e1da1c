package systembundle

import (
	"github.com/jinzhu/gorm"
	"rvmtrack_backend/app/core"
	web3socket "rvmtrack_backend/app/websocket"
)

var WSTickets map[string]string

// SystemController struct
type SystemController struct {
	core.Controller
	ormDB *gorm.DB
}

// NewSystemController instance
func NewSystemController(ormDB *gorm.DB, Users *map[string]core.User) *SystemController {
	WSTickets = make(map[string]string)

	c := &SystemController{
		Controller: core.Controller{Users: Users},
		ormDB:      ormDB,
	}

	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&core.User{}, &SystemAccountsSession{}, &SystemLog{})
	}

	c.ensureSysadminAccount()

	go web3socket.HandleUserMessages()
	go web3socket.HandleBroadcastMessages()

	return c
}

// ensureSysadminAccount creates the initial sysadmin when the accounts table
// is empty, so a fresh installation can be logged into.
func (c *SystemController) ensureSysadminAccount() {
	count := 0
	c.ormDB.Model(&core.User{}).Count(&count)
	if count > 0 {
		return
	}

	admin := core.User{
		Username:   "admin",
		UserType:   core.UserTypeSysadmin,
		IsActive:   true,
		IsSysadmin: true,
		Password:   core.GetMD5Hash("ChangeMe!1"),
	}
	admin.RegisteredAt = core.Now()
	c.ormDB.Set("gorm:save_associations", false).Create(&admin)
}

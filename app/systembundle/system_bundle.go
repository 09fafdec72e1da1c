package systembundle

import (
	"net/http"

	"github.com/jinzhu/gorm"
	"rvmtrack_backend/app/core"
)

// SystemBundle handle accounts, sessions and websocket handshake
type SystemBundle struct {
	routes []core.Route
}

// NewSystemBundle instance
func NewSystemBundle(ormDB *gorm.DB, Users *map[string]core.User) core.Bundle {
	hc := NewSystemController(ormDB, Users)

	r := []core.Route{
		core.Route{Method: http.MethodPost, Path: "/system/login", Handler: hc.Login},
		core.Route{Method: http.MethodPost, Path: "/system/logout", Handler: hc.Logout},

		core.Route{Method: http.MethodGet, Path: "/system/users", Handler: hc.GetUsersHandler},
		core.Route{Method: http.MethodPost, Path: "/system/users", Handler: hc.SaveUserHandler},
		core.Route{Method: http.MethodPost, Path: "/system/user/lock", Handler: hc.LockUserHandler},
		core.Route{Method: http.MethodPost, Path: "/system/user/unlock", Handler: hc.UnlockUserHandler},

		core.Route{Method: http.MethodGet, Path: "/ws/ticket", Handler: hc.GetWSTicketHandler},
		core.Route{Method: http.MethodGet, Path: "/ws/{ticket}", Handler: hc.HandleConnections},

		core.Route{Method: http.MethodOptions, Path: "/system/{rest:.*}", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/ws/{rest:.*}", Handler: hc.OptionsHandler},
	}

	return &SystemBundle{
		routes: r,
	}
}

// GetRoutes implement interface core.Bundle
func (b *SystemBundle) GetRoutes() []core.Route {
	return b.routes
}

package inventorybundle

import (
	"net/http"

	"github.com/jinzhu/gorm"
	"rvmtrack_backend/app/core"
)

// InventoryBundle handle routers, RVM units, SIM cards and DIM-DB codes
type InventoryBundle struct {
	routes []core.Route
}

// NewInventoryBundle instance
func NewInventoryBundle(ormDB *gorm.DB, Users *map[string]core.User) core.Bundle {
	hc := NewInventoryController(ormDB, Users)

	r := []core.Route{
		core.Route{Method: http.MethodGet, Path: "/routers", Handler: hc.GetRoutersHandler},
		core.Route{Method: http.MethodGet, Path: "/routers/{routerId:[0-9]+}", Handler: hc.GetRouterHandler},
		core.Route{Method: http.MethodPost, Path: "/routers", Handler: hc.SaveRouterHandler},
		core.Route{Method: http.MethodDelete, Path: "/routers/{routerId:[0-9]+}", Handler: hc.DeleteRouterHandler},

		core.Route{Method: http.MethodGet, Path: "/rvm-units", Handler: hc.GetRvmUnitsHandler},
		core.Route{Method: http.MethodGet, Path: "/rvm-units/{rvmUnitId:[0-9]+}", Handler: hc.GetRvmUnitHandler},
		core.Route{Method: http.MethodPost, Path: "/rvm-units", Handler: hc.SaveRvmUnitHandler},
		core.Route{Method: http.MethodDelete, Path: "/rvm-units/{rvmUnitId:[0-9]+}", Handler: hc.DeleteRvmUnitHandler},

		core.Route{Method: http.MethodGet, Path: "/sim-cards", Handler: hc.GetSimCardsHandler},
		core.Route{Method: http.MethodPost, Path: "/sim-cards", Handler: hc.SaveSimCardHandler},
		core.Route{Method: http.MethodDelete, Path: "/sim-cards/{simCardId:[0-9]+}", Handler: hc.DeleteSimCardHandler},

		core.Route{Method: http.MethodGet, Path: "/dim-dbs", Handler: hc.GetDimDbsHandler},
		core.Route{Method: http.MethodPost, Path: "/dim-dbs", Handler: hc.SaveDimDbHandler},
		core.Route{Method: http.MethodDelete, Path: "/dim-dbs/{dimDbId:[0-9]+}", Handler: hc.DeleteDimDbHandler},

		core.Route{Method: http.MethodPost, Path: "/system/consistency/repair", Handler: hc.RepairConsistencyHandler},

		core.Route{Method: http.MethodOptions, Path: "/routers/{rest:.*}", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/routers", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/rvm-units/{rest:.*}", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/rvm-units", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/sim-cards/{rest:.*}", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/sim-cards", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/dim-dbs/{rest:.*}", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/dim-dbs", Handler: hc.OptionsHandler},
	}

	return &InventoryBundle{
		routes: r,
	}
}

// GetRoutes implement interface core.Bundle
func (b *InventoryBundle) GetRoutes() []core.Route {
	return b.routes
}

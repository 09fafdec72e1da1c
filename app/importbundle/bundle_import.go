package importbundle

import (
	"net/http"

	"github.com/jinzhu/gorm"
	"rvmtrack_backend/app/core"
)

// ImportBundle handles the spreadsheet import endpoints
type ImportBundle struct {
	routes []core.Route
}

// NewImportBundle instance
func NewImportBundle(ormDB *gorm.DB, Users *map[string]core.User) core.Bundle {
	hc := NewImportController(ormDB, Users)

	r := []core.Route{
		core.Route{Method: http.MethodPost, Path: "/routers/import", Handler: hc.ImportRoutersHandler},
		core.Route{Method: http.MethodPost, Path: "/routers/import/suggest-columns", Handler: hc.SuggestColumnsHandler},
		core.Route{Method: http.MethodGet, Path: "/routers/import/logs", Handler: hc.GetImportLogsHandler},

		core.Route{Method: http.MethodOptions, Path: "/routers/import", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/routers/import/{rest:.*}", Handler: hc.OptionsHandler},
	}

	return &ImportBundle{
		routes: r,
	}
}

// GetRoutes implement interface core.Bundle
func (b *ImportBundle) GetRoutes() []core.Route {
	return b.routes
}

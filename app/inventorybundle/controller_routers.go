package inventorybundle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"
	web3socket "rvmtrack_backend/app/websocket"
)

func (c *InventoryController) GetRoutersHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	routers := Routers{}
	paging := c.GetPaging(r.URL.Query())

	db, dbTotalCount := c.createWhereConditionsRouters(r)
	db.Set("gorm:auto_preload", true).Limit(paging.Limit).Offset(paging.Offset).Find(&routers)
	dbTotalCount.Model(&Router{}).Count(&paging.TotalCount)

	c.SendJSONPaging(w, r, paging, &routers, http.StatusOK)
}

func (c *InventoryController) createWhereConditionsRouters(r *http.Request) (*gorm.DB, *gorm.DB) {
	db := c.ormDB
	dbTotalCount := c.ormDB

	values := r.URL.Query()
	if val, ok := values["search"]; ok && len(val) > 0 && val[0] != "" {
		search := "%" + val[0] + "%"
		cond := "serial_number LIKE ? OR imei LIKE ? OR mac_address LIKE ? OR box_no LIKE ? OR ssid LIKE ?"
		db = db.Where(cond, search, search, search, search, search)
		dbTotalCount = dbTotalCount.Where(cond, search, search, search, search, search)
	}
	if val, ok := values["status"]; ok && len(val) > 0 && val[0] != "" {
		db = db.Where("status = ?", val[0])
		dbTotalCount = dbTotalCount.Where("status = ?", val[0])
	}
	if val, ok := values["rvm_unit_id"]; ok && len(val) > 0 && val[0] != "" {
		if rvmUnitId, err := strconv.Atoi(val[0]); err == nil {
			db = db.Where("rvm_unit_id = ?", rvmUnitId)
			dbTotalCount = dbTotalCount.Where("rvm_unit_id = ?", rvmUnitId)
		}
	}

	return db, dbTotalCount
}

func (c *InventoryController) GetRouterHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	routerId, _ := strconv.Atoi(vars["routerId"])

	router := Router{}
	c.ormDB.Set("gorm:auto_preload", true).First(&router, routerId)
	if router.ID == 0 {
		c.HandleErrorWithStatus(errors.New("Router not found"), w, http.StatusNotFound)
		return
	}

	c.SendJSON(w, &router, http.StatusOK)
}

func (c *InventoryController) SaveRouterHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	router := Router{}
	if err := c.GetContent(&router, r); err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	if !c.validateRouter(&router) {
		c.SendErrors(w, router.Errors, http.StatusBadRequest)
		return
	}

	action := web3socket.Websocket_Add
	if router.ID > 0 {
		// partial update, absent fields keep their stored value
		routerDB := Router{}
		c.ormDB.First(&routerDB, router.ID)
		if routerDB.ID == 0 {
			c.HandleErrorWithStatus(errors.New("Router not found"), w, http.StatusNotFound)
			return
		}
		copier.CopyWithOption(&routerDB, &router, copier.Option{IgnoreEmpty: true})
		router = routerDB
		action = web3socket.Websocket_Update
	} else if router.Status == "" {
		router.Status = RouterStatus_InStock
	}

	if err := c.ormDB.Set("gorm:save_associations", false).Save(&router).Error; err != nil {
		c.HandleError(err, w)
		return
	}

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Saved router", action, web3socket.Websocket_Router, router.ID, nil)

	c.SendJSON(w, &router, http.StatusOK)
}

func (c *InventoryController) validateRouter(router *Router) bool {
	router.Errors = make(map[string]string)

	if router.SerialNumber == "" && router.Imei == "" {
		router.Errors["serial_number"] = "serial number or IMEI required"
	}

	if router.SerialNumber != "" {
		existing := Router{}
		c.ormDB.Where("serial_number = ? AND id <> ?", router.SerialNumber, router.ID).First(&existing)
		if existing.ID > 0 {
			router.Errors["serial_number"] = "serial number already exists"
		}
	}
	if router.Imei != "" {
		existing := Router{}
		c.ormDB.Where("imei = ? AND id <> ?", router.Imei, router.ID).First(&existing)
		if existing.ID > 0 {
			router.Errors["imei"] = "IMEI already exists"
		}
	}

	return len(router.Errors) == 0
}

func (c *InventoryController) DeleteRouterHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}
	if !user.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	vars := mux.Vars(r)
	routerId, _ := strconv.Atoi(vars["routerId"])

	router := Router{}
	c.ormDB.First(&router, routerId)
	if router.ID == 0 {
		c.HandleErrorWithStatus(errors.New("Router not found"), w, http.StatusNotFound)
		return
	}

	c.ormDB.Delete(&router)

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Deleted router", web3socket.Websocket_Delete, web3socket.Websocket_Router, router.ID, nil)

	msg := map[string]string{"message": "Deleted."}
	c.SendJSON(w, &msg, http.StatusOK)
}

package inventorybundle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jinzhu/copier"
	web3socket "rvmtrack_backend/app/websocket"
)

func (c *InventoryController) GetRvmUnitsHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	rvmUnits := RvmUnits{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	dbTotalCount := c.ormDB
	if val, ok := r.URL.Query()["search"]; ok && len(val) > 0 && val[0] != "" {
		search := "%" + val[0] + "%"
		db = db.Where("rvm_id LIKE ? OR name LIKE ? OR location LIKE ?", search, search, search)
		dbTotalCount = dbTotalCount.Where("rvm_id LIKE ? OR name LIKE ? OR location LIKE ?", search, search, search)
	}

	db.Limit(paging.Limit).Offset(paging.Offset).Find(&rvmUnits)
	dbTotalCount.Model(&RvmUnit{}).Count(&paging.TotalCount)

	c.SendJSONPaging(w, r, paging, &rvmUnits, http.StatusOK)
}

func (c *InventoryController) GetRvmUnitHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	rvmUnitId, _ := strconv.Atoi(vars["rvmUnitId"])

	rvmUnit := RvmUnit{}
	c.ormDB.First(&rvmUnit, rvmUnitId)
	if rvmUnit.ID == 0 {
		c.HandleErrorWithStatus(errors.New("RVM unit not found"), w, http.StatusNotFound)
		return
	}

	// routers installed in this unit
	routers := Routers{}
	c.ormDB.Where("rvm_unit_id = ?", rvmUnit.ID).Find(&routers)

	result := struct {
		RvmUnit
		Routers Routers `json:"routers"`
	}{rvmUnit, routers}

	c.SendJSON(w, &result, http.StatusOK)
}

func (c *InventoryController) SaveRvmUnitHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	rvmUnit := RvmUnit{}
	if err := c.GetContent(&rvmUnit, r); err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	rvmUnit.RvmId = strings.ToUpper(strings.TrimSpace(rvmUnit.RvmId))
	rvmUnit.Errors = make(map[string]string)
	if rvmUnit.RvmId == "" {
		rvmUnit.Errors["rvm_id"] = "RVM id required"
	} else {
		existing := RvmUnit{}
		c.ormDB.Where("rvm_id = ? AND id <> ?", rvmUnit.RvmId, rvmUnit.ID).First(&existing)
		if existing.ID > 0 {
			rvmUnit.Errors["rvm_id"] = "RVM id already exists"
		}
	}
	if len(rvmUnit.Errors) > 0 {
		c.SendErrors(w, rvmUnit.Errors, http.StatusBadRequest)
		return
	}

	action := web3socket.Websocket_Add
	if rvmUnit.ID > 0 {
		rvmUnitDB := RvmUnit{}
		c.ormDB.First(&rvmUnitDB, rvmUnit.ID)
		if rvmUnitDB.ID == 0 {
			c.HandleErrorWithStatus(errors.New("RVM unit not found"), w, http.StatusNotFound)
			return
		}
		copier.CopyWithOption(&rvmUnitDB, &rvmUnit, copier.Option{IgnoreEmpty: true})
		rvmUnit = rvmUnitDB
		action = web3socket.Websocket_Update
	}

	if err := c.ormDB.Set("gorm:save_associations", false).Save(&rvmUnit).Error; err != nil {
		c.HandleError(err, w)
		return
	}

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Saved RVM unit", action, web3socket.Websocket_RvmUnit, rvmUnit.ID, nil)

	c.SendJSON(w, &rvmUnit, http.StatusOK)
}

func (c *InventoryController) DeleteRvmUnitHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}
	if !user.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	vars := mux.Vars(r)
	rvmUnitId, _ := strconv.Atoi(vars["rvmUnitId"])

	rvmUnit := RvmUnit{}
	c.ormDB.First(&rvmUnit, rvmUnitId)
	if rvmUnit.ID == 0 {
		c.HandleErrorWithStatus(errors.New("RVM unit not found"), w, http.StatusNotFound)
		return
	}

	c.ormDB.Model(&Router{}).Where("rvm_unit_id = ?", rvmUnit.ID).Update("rvm_unit_id", 0)
	c.ormDB.Delete(&rvmUnit)

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Deleted RVM unit", web3socket.Websocket_Delete, web3socket.Websocket_RvmUnit, rvmUnit.ID, nil)

	msg := map[string]string{"message": "Deleted."}
	c.SendJSON(w, &msg, http.StatusOK)
}

func (c *InventoryController) GetSimCardsHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	simCards := SimCards{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	dbTotalCount := c.ormDB
	values := r.URL.Query()
	if val, ok := values["search"]; ok && len(val) > 0 && val[0] != "" {
		search := "%" + val[0] + "%"
		db = db.Where("phone_number LIKE ? OR provider LIKE ?", search, search)
		dbTotalCount = dbTotalCount.Where("phone_number LIKE ? OR provider LIKE ?", search, search)
	}
	if val, ok := values["status"]; ok && len(val) > 0 && val[0] != "" {
		db = db.Where("status = ?", val[0])
		dbTotalCount = dbTotalCount.Where("status = ?", val[0])
	}

	db.Limit(paging.Limit).Offset(paging.Offset).Find(&simCards)
	dbTotalCount.Model(&SimCard{}).Count(&paging.TotalCount)

	c.SendJSONPaging(w, r, paging, &simCards, http.StatusOK)
}

func (c *InventoryController) SaveSimCardHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	simCard := SimCard{}
	if err := c.GetContent(&simCard, r); err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	simCard.PhoneNumber = digitsOnly(simCard.PhoneNumber)
	simCard.Errors = make(map[string]string)
	if simCard.PhoneNumber == "" {
		simCard.Errors["phone_number"] = "phone number required"
	} else {
		existing := SimCard{}
		c.ormDB.Where("phone_number = ? AND id <> ?", simCard.PhoneNumber, simCard.ID).First(&existing)
		if existing.ID > 0 {
			simCard.Errors["phone_number"] = "phone number already exists"
		}
	}
	if len(simCard.Errors) > 0 {
		c.SendErrors(w, simCard.Errors, http.StatusBadRequest)
		return
	}

	if simCard.ID == 0 && simCard.Status == "" {
		simCard.Status = SimCardStatus_Available
	}

	action := web3socket.Websocket_Add
	if simCard.ID > 0 {
		simCardDB := SimCard{}
		c.ormDB.First(&simCardDB, simCard.ID)
		if simCardDB.ID == 0 {
			c.HandleErrorWithStatus(errors.New("SIM card not found"), w, http.StatusNotFound)
			return
		}
		copier.CopyWithOption(&simCardDB, &simCard, copier.Option{IgnoreEmpty: true})
		simCard = simCardDB
		action = web3socket.Websocket_Update
	}

	if err := c.ormDB.Set("gorm:save_associations", false).Save(&simCard).Error; err != nil {
		c.HandleError(err, w)
		return
	}

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Saved SIM card", action, web3socket.Websocket_SimCard, simCard.ID, nil)

	c.SendJSON(w, &simCard, http.StatusOK)
}

func (c *InventoryController) DeleteSimCardHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}
	if !user.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	vars := mux.Vars(r)
	simCardId, _ := strconv.Atoi(vars["simCardId"])

	simCard := SimCard{}
	c.ormDB.First(&simCard, simCardId)
	if simCard.ID == 0 {
		c.HandleErrorWithStatus(errors.New("SIM card not found"), w, http.StatusNotFound)
		return
	}

	c.ormDB.Model(&Router{}).Where("sim_card_id = ?", simCard.ID).Update("sim_card_id", 0)
	c.ormDB.Delete(&simCard)

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Deleted SIM card", web3socket.Websocket_Delete, web3socket.Websocket_SimCard, simCard.ID, nil)

	msg := map[string]string{"message": "Deleted."}
	c.SendJSON(w, &msg, http.StatusOK)
}

func (c *InventoryController) GetDimDbsHandler(w http.ResponseWriter, r *http.Request) {
	ok, _ := c.GetUser(w, r)
	if !ok {
		return
	}

	dimDbs := DimDbs{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	dbTotalCount := c.ormDB
	if val, ok := r.URL.Query()["search"]; ok && len(val) > 0 && val[0] != "" {
		search := "%" + val[0] + "%"
		db = db.Where("dim_db_code LIKE ? OR description LIKE ?", search, search)
		dbTotalCount = dbTotalCount.Where("dim_db_code LIKE ? OR description LIKE ?", search, search)
	}

	db.Limit(paging.Limit).Offset(paging.Offset).Find(&dimDbs)
	dbTotalCount.Model(&DimDb{}).Count(&paging.TotalCount)

	c.SendJSONPaging(w, r, paging, &dimDbs, http.StatusOK)
}

func (c *InventoryController) SaveDimDbHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}
	// DIM-DB codes are administrator managed
	if !user.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	dimDb := DimDb{}
	if err := c.GetContent(&dimDb, r); err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	dimDb.DimDbCode = strings.TrimSpace(dimDb.DimDbCode)
	dimDb.Errors = make(map[string]string)
	if dimDb.DimDbCode == "" {
		dimDb.Errors["dim_db_code"] = "DIM-DB code required"
	} else {
		existing := DimDb{}
		c.ormDB.Where("dim_db_code = ? AND id <> ?", dimDb.DimDbCode, dimDb.ID).First(&existing)
		if existing.ID > 0 {
			dimDb.Errors["dim_db_code"] = "DIM-DB code already exists"
		}
	}
	if len(dimDb.Errors) > 0 {
		c.SendErrors(w, dimDb.Errors, http.StatusBadRequest)
		return
	}

	if dimDb.ID == 0 && dimDb.Status == "" {
		dimDb.Status = DimDbStatus_Available
	}

	action := web3socket.Websocket_Add
	if dimDb.ID > 0 {
		dimDbDB := DimDb{}
		c.ormDB.First(&dimDbDB, dimDb.ID)
		if dimDbDB.ID == 0 {
			c.HandleErrorWithStatus(errors.New("DIM-DB code not found"), w, http.StatusNotFound)
			return
		}
		copier.CopyWithOption(&dimDbDB, &dimDb, copier.Option{IgnoreEmpty: true})
		dimDb = dimDbDB
		action = web3socket.Websocket_Update
	}

	if err := c.ormDB.Set("gorm:save_associations", false).Save(&dimDb).Error; err != nil {
		c.HandleError(err, w)
		return
	}

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Saved DIM-DB code", action, web3socket.Websocket_DimDb, dimDb.ID, nil)

	c.SendJSON(w, &dimDb, http.StatusOK)
}

func (c *InventoryController) DeleteDimDbHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}
	if !user.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	vars := mux.Vars(r)
	dimDbId, _ := strconv.Atoi(vars["dimDbId"])

	dimDb := DimDb{}
	c.ormDB.First(&dimDb, dimDbId)
	if dimDb.ID == 0 {
		c.HandleErrorWithStatus(errors.New("DIM-DB code not found"), w, http.StatusNotFound)
		return
	}

	c.ormDB.Model(&Router{}).Where("dim_db_id = ?", dimDb.ID).Update("dim_db_id", 0)
	c.ormDB.Delete(&dimDb)

	go web3socket.SendBroadCastWebsocketDataInfoMessage("Deleted DIM-DB code", web3socket.Websocket_Delete, web3socket.Websocket_DimDb, dimDb.ID, nil)

	msg := map[string]string{"message": "Deleted."}
	c.SendJSON(w, &msg, http.StatusOK)
}

func digitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}

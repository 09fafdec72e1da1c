package inventorybundle

import (
	"errors"
	"log"
	"net/http"
)

// RepairConsistencyHandler runs one best-effort repair pass over the three
// pools. Each statement commits on its own, a failing statement does not roll
// back the others.
func (c *InventoryController) RepairConsistencyHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}
	if !user.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	report := c.repairConsistency()

	c.SendJSON(w, &report, http.StatusOK)
}

func (c *InventoryController) repairConsistency() ConsistencyReport {
	report := ConsistencyReport{}

	// routers pointing at deleted or missing pool entries lose the reference
	res := c.ormDB.Model(&Router{}).
		Where("rvm_unit_id > 0 AND rvm_unit_id NOT IN (SELECT id FROM rvm_units WHERE deleted_at IS NULL)").
		Update("rvm_unit_id", 0)
	logRepairError(res.Error)
	report.ClearedRvmUnitRefs = int(res.RowsAffected)

	res = c.ormDB.Model(&Router{}).
		Where("sim_card_id > 0 AND sim_card_id NOT IN (SELECT id FROM sim_cards WHERE deleted_at IS NULL)").
		Update("sim_card_id", 0)
	logRepairError(res.Error)
	report.ClearedSimCardRefs = int(res.RowsAffected)

	res = c.ormDB.Model(&Router{}).
		Where("dim_db_id > 0 AND dim_db_id NOT IN (SELECT id FROM dim_dbs WHERE deleted_at IS NULL)").
		Update("dim_db_id", 0)
	logRepairError(res.Error)
	report.ClearedDimDbRefs = int(res.RowsAffected)

	// status flags follow the references
	res = c.ormDB.Model(&SimCard{}).
		Where("status = ? AND id IN (SELECT sim_card_id FROM routers WHERE deleted_at IS NULL AND sim_card_id > 0)", SimCardStatus_Available).
		Update("status", SimCardStatus_Assigned)
	logRepairError(res.Error)
	report.SimCardsSetAssigned = int(res.RowsAffected)

	res = c.ormDB.Model(&SimCard{}).
		Where("status = ? AND id NOT IN (SELECT sim_card_id FROM routers WHERE deleted_at IS NULL AND sim_card_id > 0)", SimCardStatus_Assigned).
		Update("status", SimCardStatus_Available)
	logRepairError(res.Error)
	report.SimCardsSetFree = int(res.RowsAffected)

	res = c.ormDB.Model(&DimDb{}).
		Where("status = ? AND id IN (SELECT dim_db_id FROM routers WHERE deleted_at IS NULL AND dim_db_id > 0)", DimDbStatus_Available).
		Update("status", DimDbStatus_Assigned)
	logRepairError(res.Error)
	report.DimDbsSetAssigned = int(res.RowsAffected)

	res = c.ormDB.Model(&DimDb{}).
		Where("status = ? AND id NOT IN (SELECT dim_db_id FROM routers WHERE deleted_at IS NULL AND dim_db_id > 0)", DimDbStatus_Assigned).
		Update("status", DimDbStatus_Available)
	logRepairError(res.Error)
	report.DimDbsSetFree = int(res.RowsAffected)

	return report
}

func logRepairError(err error) {
	if err != nil {
		log.Println(err)
	}
}

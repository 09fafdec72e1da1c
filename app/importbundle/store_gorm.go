package importbundle

import (
	"github.com/jinzhu/gorm"

	"rvmtrack_backend/app/inventorybundle"
)

// gormInventoryStore backs the merge engine with the routers, rvm_units,
// sim_cards and dim_dbs tables.
type gormInventoryStore struct {
	ormDB *gorm.DB
}

func NewGormInventoryStore(ormDB *gorm.DB) InventoryStore {
	return &gormInventoryStore{ormDB: ormDB}
}

func (s *gormInventoryStore) LoadRouterKeys() (map[string]uint, map[string]uint, error) {
	routers := inventorybundle.Routers{}
	if err := s.ormDB.Select("id, serial_number, imei").Find(&routers).Error; err != nil {
		return nil, nil, err
	}
	bySerial := map[string]uint{}
	byImei := map[string]uint{}
	for _, router := range routers {
		if router.SerialNumber != "" {
			bySerial[router.SerialNumber] = router.ID
		}
		if router.Imei != "" {
			byImei[router.Imei] = router.ID
		}
	}
	return bySerial, byImei, nil
}

func (s *gormInventoryStore) LoadRvmUnitKeys() (map[string]uint, error) {
	units := inventorybundle.RvmUnits{}
	if err := s.ormDB.Select("id, rvm_id").Find(&units).Error; err != nil {
		return nil, err
	}
	keys := map[string]uint{}
	for _, unit := range units {
		keys[unit.RvmId] = unit.ID
	}
	return keys, nil
}

func (s *gormInventoryStore) LoadSimCardKeys() (map[string]uint, error) {
	simCards := inventorybundle.SimCards{}
	if err := s.ormDB.Select("id, phone_number").Find(&simCards).Error; err != nil {
		return nil, err
	}
	keys := map[string]uint{}
	for _, simCard := range simCards {
		keys[simCard.PhoneNumber] = simCard.ID
	}
	return keys, nil
}

func (s *gormInventoryStore) LoadDimDbKeys() (map[string]uint, error) {
	dimDbs := inventorybundle.DimDbs{}
	if err := s.ormDB.Select("id, dim_db_code").Find(&dimDbs).Error; err != nil {
		return nil, err
	}
	keys := map[string]uint{}
	for _, dimDb := range dimDbs {
		keys[dimDb.DimDbCode] = dimDb.ID
	}
	return keys, nil
}

func (s *gormInventoryStore) CreateRouter(row ParsedRouterRow, refs RouterRefs) (uint, error) {
	router := inventorybundle.Router{
		BoxNoPrefix:    row.BoxNoPrefix,
		BoxNo:          row.BoxNo,
		SerialNumber:   row.SerialNumber,
		Imei:           row.Imei,
		MacAddress:     row.MacAddress,
		Firmware:       row.Firmware,
		Ssid:           row.Ssid,
		WifiPassword:   row.WifiPassword,
		DevicePassword: row.DevicePassword,
		Status:         inventorybundle.RouterStatus_InStock,
		RvmUnitId:      refs.RvmUnitId,
		SimCardId:      refs.SimCardId,
		DimDbId:        refs.DimDbId,
	}
	if refs.RvmUnitId > 0 {
		router.Status = inventorybundle.RouterStatus_Installed
	}
	if err := s.ormDB.Set("gorm:save_associations", false).Create(&router).Error; err != nil {
		return 0, err
	}
	return router.ID, nil
}

// UpdateRouter touches only the columns the row actually carries, absent
// fields keep their stored value.
func (s *gormInventoryStore) UpdateRouter(id uint, row ParsedRouterRow, refs RouterRefs) error {
	updates := map[string]interface{}{}
	if row.BoxNoPrefix != "" {
		updates["box_no_prefix"] = row.BoxNoPrefix
	}
	if row.BoxNo != "" {
		updates["box_no"] = row.BoxNo
	}
	if row.SerialNumber != "" {
		updates["serial_number"] = row.SerialNumber
	}
	if row.Imei != "" {
		updates["imei"] = row.Imei
	}
	if row.MacAddress != "" {
		updates["mac_address"] = row.MacAddress
	}
	if row.Firmware != "" {
		updates["firmware"] = row.Firmware
	}
	if row.Ssid != "" {
		updates["ssid"] = row.Ssid
	}
	if row.WifiPassword != "" {
		updates["wifi_password"] = row.WifiPassword
	}
	if row.DevicePassword != "" {
		updates["device_password"] = row.DevicePassword
	}
	if refs.RvmUnitId > 0 {
		updates["rvm_unit_id"] = refs.RvmUnitId
		updates["status"] = inventorybundle.RouterStatus_Installed
	}
	if refs.SimCardId > 0 {
		updates["sim_card_id"] = refs.SimCardId
	}
	if refs.DimDbId > 0 {
		updates["dim_db_id"] = refs.DimDbId
	}
	if len(updates) == 0 {
		return nil
	}
	return s.ormDB.Model(&inventorybundle.Router{}).Where("id = ?", id).Updates(updates).Error
}

func (s *gormInventoryStore) CreateRvmUnit(rvmId string, name string) (uint, error) {
	unit := inventorybundle.RvmUnit{RvmId: rvmId, Name: name, Status: "ACTIVE"}
	if err := s.ormDB.Set("gorm:save_associations", false).Create(&unit).Error; err != nil {
		return 0, err
	}
	return unit.ID, nil
}

func (s *gormInventoryStore) CreateSimCard(phone string) (uint, error) {
	simCard := inventorybundle.SimCard{PhoneNumber: phone, Status: inventorybundle.SimCardStatus_Assigned}
	if err := s.ormDB.Set("gorm:save_associations", false).Create(&simCard).Error; err != nil {
		return 0, err
	}
	return simCard.ID, nil
}

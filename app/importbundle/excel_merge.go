package importbundle

import (
	"fmt"
)

// RouterRefs carries the foreign keys a merged row resolved. A zero id
// means the reference stays untouched on update and unset on create.
type RouterRefs struct {
	RvmUnitId uint
	SimCardId uint
	DimDbId   uint
}

// InventoryStore is the persistence surface of the merge engine. The key
// loaders run once per import, afterwards the engine tracks its own creates
// so a duplicate inside the same file hits the update path.
type InventoryStore interface {
	LoadRouterKeys() (bySerial map[string]uint, byImei map[string]uint, err error)
	LoadRvmUnitKeys() (map[string]uint, error)
	LoadSimCardKeys() (map[string]uint, error)
	LoadDimDbKeys() (map[string]uint, error)
	CreateRouter(row ParsedRouterRow, refs RouterRefs) (uint, error)
	UpdateRouter(id uint, row ParsedRouterRow, refs RouterRefs) error
	CreateRvmUnit(rvmId string, name string) (uint, error)
	CreateSimCard(phone string) (uint, error)
}

// MergeResult aggregates the outcome of merging every valid row of a run.
type MergeResult struct {
	NewCount        int
	UpdatedCount    int
	ErrorCount      int
	Errors          []ImportError
	Warnings        []ImportWarning
	CreatedRvmUnits []string
	CreatedSimCards []string
}

// MergeEngine folds parsed rows into the router inventory. It snapshots the
// lookup keys once and mutates its maps as it creates records, repeated
// identities within one file therefore update instead of colliding.
type MergeEngine struct {
	store    InventoryStore
	bySerial map[string]uint
	byImei   map[string]uint
	rvmUnits map[string]uint
	simCards map[string]uint
	dimDbs   map[string]uint
	result   MergeResult
}

func NewMergeEngine(store InventoryStore) (*MergeEngine, error) {
	engine := MergeEngine{store: store}
	var err error
	if engine.bySerial, engine.byImei, err = store.LoadRouterKeys(); err != nil {
		return nil, err
	}
	if engine.rvmUnits, err = store.LoadRvmUnitKeys(); err != nil {
		return nil, err
	}
	if engine.simCards, err = store.LoadSimCardKeys(); err != nil {
		return nil, err
	}
	if engine.dimDbs, err = store.LoadDimDbKeys(); err != nil {
		return nil, err
	}
	engine.result.Errors = []ImportError{}
	engine.result.Warnings = []ImportWarning{}
	engine.result.CreatedRvmUnits = []string{}
	engine.result.CreatedSimCards = []string{}
	return &engine, nil
}

// MergeRow persists one validated row. Identity resolution tries the serial
// number first and falls back to the IMEI. New records need both keys, a
// row that carries only one and matches nothing is rejected.
func (m *MergeEngine) MergeRow(row ParsedRouterRow, rowNr int) {
	refs, ok := m.resolveReferences(row, rowNr)
	if !ok {
		m.result.ErrorCount++
		return
	}

	routerId, found := uint(0), false
	if row.SerialNumber != "" {
		routerId, found = m.bySerial[row.SerialNumber]
	}
	if !found && row.Imei != "" {
		routerId, found = m.byImei[row.Imei]
	}

	if found {
		if err := m.store.UpdateRouter(routerId, row, refs); err != nil {
			m.addError(rowNr, "general", fmt.Sprintf("update failed: %s", err.Error()), "")
			m.result.ErrorCount++
			return
		}
		m.rememberRouterKeys(routerId, row)
		m.result.UpdatedCount++
		return
	}

	if row.SerialNumber == "" || row.Imei == "" {
		m.addError(rowNr, "serialNumber/imei", "serial number and IMEI are both required for new records", "")
		m.result.ErrorCount++
		return
	}
	routerId, err := m.store.CreateRouter(row, refs)
	if err != nil {
		m.addError(rowNr, "general", fmt.Sprintf("create failed: %s", err.Error()), "")
		m.result.ErrorCount++
		return
	}
	m.rememberRouterKeys(routerId, row)
	m.result.NewCount++
}

func (m *MergeEngine) Result() MergeResult {
	return m.result
}

// resolveReferences finds or creates the RVM unit and SIM card a row points
// at and resolves the DIM-DB code. DIM-DB entries are never created here,
// an unknown code only produces a warning and leaves the reference alone.
func (m *MergeEngine) resolveReferences(row ParsedRouterRow, rowNr int) (RouterRefs, bool) {
	refs := RouterRefs{}

	if row.RvmId != "" {
		if id, ok := m.rvmUnits[row.RvmId]; ok {
			refs.RvmUnitId = id
		} else {
			id, err := m.store.CreateRvmUnit(row.RvmId, "RVM "+row.RvmId)
			if err != nil {
				m.addError(rowNr, "general", fmt.Sprintf("creating RVM unit %s failed: %s", row.RvmId, err.Error()), "")
				return refs, false
			}
			m.rvmUnits[row.RvmId] = id
			m.result.CreatedRvmUnits = append(m.result.CreatedRvmUnits, row.RvmId)
			refs.RvmUnitId = id
		}
	}

	if phone := digitsOnly(row.SimCardPhone); phone != "" {
		if id, ok := m.simCards[phone]; ok {
			refs.SimCardId = id
		} else {
			id, err := m.store.CreateSimCard(phone)
			if err != nil {
				m.addError(rowNr, "general", fmt.Sprintf("creating SIM card %s failed: %s", phone, err.Error()), "")
				return refs, false
			}
			m.simCards[phone] = id
			m.result.CreatedSimCards = append(m.result.CreatedSimCards, phone)
			refs.SimCardId = id
		}
	}

	if row.DimDbId != "" {
		if id, ok := m.dimDbs[row.DimDbId]; ok {
			refs.DimDbId = id
		} else {
			m.result.Warnings = append(m.result.Warnings, ImportWarning{
				Row:     rowNr,
				Field:   string(FieldDimDbId),
				Message: "unknown DIM-DB code, reference left unchanged",
				Value:   row.DimDbId,
			})
		}
	}

	return refs, true
}

func (m *MergeEngine) rememberRouterKeys(id uint, row ParsedRouterRow) {
	if row.SerialNumber != "" {
		m.bySerial[row.SerialNumber] = id
	}
	if row.Imei != "" {
		m.byImei[row.Imei] = id
	}
}

func (m *MergeEngine) addError(rowNr int, field string, message string, value string) {
	m.result.Errors = append(m.result.Errors, ImportError{Row: rowNr, Field: field, Message: message, Value: value})
}

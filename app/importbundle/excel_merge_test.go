package importbundle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRouter struct {
	row  ParsedRouterRow
	refs RouterRefs
}

// fakeStore keeps everything in maps and records update calls so tests can
// check which fields the merge actually touched.
type fakeStore struct {
	nextId   uint
	routers  map[uint]*fakeRouter
	bySerial map[string]uint
	byImei   map[string]uint
	rvmUnits map[string]uint
	simCards map[string]uint
	dimDbs   map[string]uint
	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextId:   1,
		routers:  map[uint]*fakeRouter{},
		bySerial: map[string]uint{},
		byImei:   map[string]uint{},
		rvmUnits: map[string]uint{},
		simCards: map[string]uint{},
		dimDbs:   map[string]uint{},
	}
}

func (s *fakeStore) addRouter(row ParsedRouterRow) uint {
	id := s.nextId
	s.nextId++
	s.routers[id] = &fakeRouter{row: row}
	if row.SerialNumber != "" {
		s.bySerial[row.SerialNumber] = id
	}
	if row.Imei != "" {
		s.byImei[row.Imei] = id
	}
	return id
}

func (s *fakeStore) takeErr() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *fakeStore) LoadRouterKeys() (map[string]uint, map[string]uint, error) {
	bySerial := map[string]uint{}
	byImei := map[string]uint{}
	for key, id := range s.bySerial {
		bySerial[key] = id
	}
	for key, id := range s.byImei {
		byImei[key] = id
	}
	return bySerial, byImei, nil
}

func (s *fakeStore) LoadRvmUnitKeys() (map[string]uint, error) {
	keys := map[string]uint{}
	for key, id := range s.rvmUnits {
		keys[key] = id
	}
	return keys, nil
}

func (s *fakeStore) LoadSimCardKeys() (map[string]uint, error) {
	keys := map[string]uint{}
	for key, id := range s.simCards {
		keys[key] = id
	}
	return keys, nil
}

func (s *fakeStore) LoadDimDbKeys() (map[string]uint, error) {
	keys := map[string]uint{}
	for key, id := range s.dimDbs {
		keys[key] = id
	}
	return keys, nil
}

func (s *fakeStore) CreateRouter(row ParsedRouterRow, refs RouterRefs) (uint, error) {
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	id := s.nextId
	s.nextId++
	s.routers[id] = &fakeRouter{row: row, refs: refs}
	return id, nil
}

func (s *fakeStore) UpdateRouter(id uint, row ParsedRouterRow, refs RouterRefs) error {
	if err := s.takeErr(); err != nil {
		return err
	}
	router, ok := s.routers[id]
	if !ok {
		return errors.New("router not found")
	}
	for _, pattern := range fieldPatterns {
		if value := row.FieldValue(pattern.Field); value != "" {
			router.row.SetField(pattern.Field, value)
		}
	}
	if refs.RvmUnitId > 0 {
		router.refs.RvmUnitId = refs.RvmUnitId
	}
	if refs.SimCardId > 0 {
		router.refs.SimCardId = refs.SimCardId
	}
	if refs.DimDbId > 0 {
		router.refs.DimDbId = refs.DimDbId
	}
	return nil
}

func (s *fakeStore) CreateRvmUnit(rvmId string, name string) (uint, error) {
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	id := s.nextId
	s.nextId++
	s.rvmUnits[rvmId] = id
	return id, nil
}

func (s *fakeStore) CreateSimCard(phone string) (uint, error) {
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	id := s.nextId
	s.nextId++
	s.simCards[phone] = id
	return id, nil
}

func TestMergeRowCreatesRouter(t *testing.T) {
	store := newFakeStore()
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737", BoxNo: "B-1"}, 2)

	result := engine.Result()
	assert.Equal(t, 1, result.NewCount)
	assert.Equal(t, 0, result.UpdatedCount)
	assert.Equal(t, 0, result.ErrorCount)
	require.Len(t, store.routers, 1)
}

func TestMergeRowCreateNeedsBothKeys(t *testing.T) {
	tests := []struct {
		name string
		row  ParsedRouterRow
	}{
		{"serial only", ParsedRouterRow{SerialNumber: "0171303533"}},
		{"imei only", ParsedRouterRow{Imei: "868291076903737"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			engine, err := NewMergeEngine(store)
			require.NoError(t, err)

			engine.MergeRow(tt.row, 2)

			result := engine.Result()
			assert.Equal(t, 0, result.NewCount)
			assert.Equal(t, 1, result.ErrorCount)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, "serialNumber/imei", result.Errors[0].Field)
			assert.Empty(t, store.routers)
		})
	}
}

func TestMergeRowUpdatesBySerial(t *testing.T) {
	store := newFakeStore()
	id := store.addRouter(ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737", Ssid: "Old-Wifi"})
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303533", BoxNo: "B-7"}, 2)

	result := engine.Result()
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, 0, result.NewCount)
	router := store.routers[id]
	assert.Equal(t, "B-7", router.row.BoxNo)
	assert.Equal(t, "Old-Wifi", router.row.Ssid, "absent fields stay untouched")
	assert.Equal(t, "868291076903737", router.row.Imei)
}

func TestMergeRowUpdatesByImeiFallback(t *testing.T) {
	store := newFakeStore()
	id := store.addRouter(ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737"})
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	engine.MergeRow(ParsedRouterRow{Imei: "868291076903737", Firmware: "v2.1.7"}, 4)

	result := engine.Result()
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, "v2.1.7", store.routers[id].row.Firmware)
}

func TestMergeRowDuplicateSerialInFile(t *testing.T) {
	store := newFakeStore()
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737"}, 2)
	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303533", BoxNo: "B-2"}, 3)

	result := engine.Result()
	assert.Equal(t, 1, result.NewCount)
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, 0, result.ErrorCount)
	require.Len(t, store.routers, 1)
}

func TestMergeRowIdempotent(t *testing.T) {
	store := newFakeStore()
	row := ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737", RvmId: "KPL0402511010"}

	engine, err := NewMergeEngine(store)
	require.NoError(t, err)
	engine.MergeRow(row, 2)
	first := engine.Result()
	assert.Equal(t, 1, first.NewCount)
	assert.Equal(t, []string{"KPL0402511010"}, first.CreatedRvmUnits)

	engine, err = NewMergeEngine(store)
	require.NoError(t, err)
	engine.MergeRow(row, 2)
	second := engine.Result()
	assert.Equal(t, 0, second.NewCount)
	assert.Equal(t, 1, second.UpdatedCount)
	assert.Empty(t, second.CreatedRvmUnits)
	assert.Len(t, store.rvmUnits, 1)
}

func TestMergeRowFindsOrCreatesRvmUnitAndSimCard(t *testing.T) {
	store := newFakeStore()
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	engine.MergeRow(ParsedRouterRow{
		SerialNumber: "0171303533",
		Imei:         "868291076903737",
		RvmId:        "KPL0402511010",
		SimCardPhone: "+491701234567",
	}, 2)
	engine.MergeRow(ParsedRouterRow{
		SerialNumber: "0171303534",
		Imei:         "868291076903738",
		RvmId:        "KPL0402511010",
		SimCardPhone: "+491701234567",
	}, 3)

	result := engine.Result()
	assert.Equal(t, 2, result.NewCount)
	assert.Equal(t, []string{"KPL0402511010"}, result.CreatedRvmUnits)
	assert.Equal(t, []string{"491701234567"}, result.CreatedSimCards, "phone keys are digits only")
	assert.Len(t, store.rvmUnits, 1)
	assert.Len(t, store.simCards, 1)
}

func TestMergeRowUnknownDimDbWarns(t *testing.T) {
	store := newFakeStore()
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737", DimDbId: "DB-404"}, 2)

	result := engine.Result()
	assert.Equal(t, 1, result.NewCount)
	assert.Equal(t, 0, result.ErrorCount)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "dimDbId", result.Warnings[0].Field)
	require.Len(t, store.routers, 1)
	for _, router := range store.routers {
		assert.Zero(t, router.refs.DimDbId)
	}
}

func TestMergeRowResolvesKnownDimDb(t *testing.T) {
	store := newFakeStore()
	store.dimDbs["DB-001"] = 77
	id := store.addRouter(ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737"})
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303533", DimDbId: "DB-001"}, 2)

	result := engine.Result()
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, uint(77), store.routers[id].refs.DimDbId)
}

func TestMergeRowStoreErrorIsRowError(t *testing.T) {
	store := newFakeStore()
	engine, err := NewMergeEngine(store)
	require.NoError(t, err)

	store.failNext = errors.New("duplicate entry")
	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303533", Imei: "868291076903737"}, 2)

	result := engine.Result()
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "general", result.Errors[0].Field)

	// the engine keeps going, the next row is unaffected
	engine.MergeRow(ParsedRouterRow{SerialNumber: "0171303534", Imei: "868291076903738"}, 3)
	assert.Equal(t, 1, engine.Result().NewCount)
}

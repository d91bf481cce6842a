package memory

// MemoryStorage is the in-memory backend used when DATABASE_URL is empty.
// Each sub-store guards its own data with a mutex, so the composite has
// no locking of its own.
type MemoryStorage struct {
	catalog     *catalogStorage
	dailyLogs   *dailyLogsStorage
	weeklyPlans *weeklyPlansStorage
}

// New creates a MemoryStorage with the built-in food catalog preloaded.
func New() *MemoryStorage {
	return &MemoryStorage{
		catalog:     newCatalogStorage(),
		dailyLogs:   newDailyLogsStorage(),
		weeklyPlans: newWeeklyPlansStorage(),
	}
}

// GetCatalogStorage returns the food catalog storage.
func (m *MemoryStorage) GetCatalogStorage() *catalogStorage {
	return m.catalog
}

// GetDailyLogsStorage returns the daily food logs storage.
func (m *MemoryStorage) GetDailyLogsStorage() *dailyLogsStorage {
	return m.dailyLogs
}

// GetWeeklyPlansStorage returns the weekly plans storage.
func (m *MemoryStorage) GetWeeklyPlansStorage() *weeklyPlansStorage {
	return m.weeklyPlans
}

func (m *MemoryStorage) Close() error {
	// no-op for memory
	return nil
}

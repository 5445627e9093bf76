package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/logger"
	"github.com/stretchr/testify/suite"
)

// Clock is a manually advanced time source for tests
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock stopped at t
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Stores holds the in-memory collaborators of the receiving services
type Stores struct {
	Catalog   *InMemoryCatalog
	Suppliers *InMemorySupplierStore
	Drafts    *InMemoryDraftStore
	Sink      *InMemoryCommitSink
}

// BaseServiceTestSuite provides common functionality for service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	stores     Stores
	logger     *logger.Logger
	clock      *Clock
	locationID uuid.UUID
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.logger = logger.NewNop()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	s.locationID = uuid.New()
	s.stores = Stores{
		Catalog:   NewInMemoryCatalog(),
		Suppliers: NewInMemorySupplierStore(),
		Drafts:    NewInMemoryDraftStore(s.clock.Now),
		Sink:      NewInMemoryCommitSink(),
	}
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the in-memory collaborators
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns a logger that discards output
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetClock returns the fake clock shared by the stores
func (s *BaseServiceTestSuite) GetClock() *Clock {
	return s.clock
}

// GetLocationID returns the location the test receives into
func (s *BaseServiceTestSuite) GetLocationID() uuid.UUID {
	return s.locationID
}

// AddCatalogItem registers an item priced at the test location and returns it
func (s *BaseServiceTestSuite) AddCatalogItem(name, sku string, cost, retail, wholesale int64) receiving.CatalogItem {
	item := receiving.CatalogItem{
		ID:   uuid.New(),
		Name: name,
		SKU:  sku,
		Prices: map[uuid.UUID]receiving.LocationPrice{
			s.locationID: {CostPrice: cost, RetailPrice: retail, WholesalePrice: wholesale},
		},
	}
	s.stores.Catalog.Add(item)
	return item
}

package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/gradable-block-service/internal/events"
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/render"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
	"github.com/SAP-F-2025/gradable-block-service/internal/validator"
)

const testLocation = "block-v1:ifmo+cs101+2025+type@gradable+block@lab1"

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===== FAKE REPOSITORIES =====

type fakeBlockRepo struct {
	mu      sync.Mutex
	blocks  map[string]*models.Block
	updates int
}

func (f *fakeBlockRepo) Create(ctx context.Context, tx *gorm.DB, block *models.Block) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *block
	f.blocks[block.Location] = &copied
	return nil
}

func (f *fakeBlockRepo) GetByLocation(ctx context.Context, tx *gorm.DB, location string) (*models.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	block, ok := f.blocks[location]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *block
	return &copied, nil
}

func (f *fakeBlockRepo) UpdateSettings(ctx context.Context, tx *gorm.DB, block *models.Block) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.blocks[block.Location]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.DisplayName = block.DisplayName
	stored.Description = block.Description
	stored.Weight = block.Weight
	stored.Attempts = block.Attempts
	f.updates++
	return nil
}

type fakeModuleRepo struct {
	mu      sync.Mutex
	modules []*models.StudentModule
	nextID  uint
	saves   int
	reads   int
	failGet error
}

func (f *fakeModuleRepo) find(match func(*models.StudentModule) bool) (*models.StudentModule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failGet != nil {
		return nil, f.failGet
	}
	for _, m := range f.modules {
		if match(m) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeModuleRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID, location string) (*models.StudentModule, error) {
	return f.find(func(m *models.StudentModule) bool {
		return m.StudentID == studentID && m.ModuleStateKey == location
	})
}

func (f *fakeModuleRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username, location string) (*models.StudentModule, error) {
	return f.find(func(m *models.StudentModule) bool {
		return m.Username == username && m.ModuleStateKey == location
	})
}

func (f *fakeModuleRepo) ListByModule(ctx context.Context, tx *gorm.DB, location string) ([]*models.StudentModule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.StudentModule
	for _, m := range f.modules {
		if m.ModuleStateKey == location {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeModuleRepo) Save(ctx context.Context, tx *gorm.DB, module *models.StudentModule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	copied := *module
	if module.ID == 0 {
		f.nextID++
		module.ID = f.nextID
		copied.ID = module.ID
		f.modules = append(f.modules, &copied)
		return nil
	}
	for i, m := range f.modules {
		if m.ID == module.ID {
			f.modules[i] = &copied
			return nil
		}
	}
	return errors.New("module vanished")
}

func (f *fakeModuleRepo) stored(username string) *models.StudentModule {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.modules {
		if m.Username == username {
			return m
		}
	}
	return nil
}

type fakeRepository struct {
	blocks  *fakeBlockRepo
	modules *fakeModuleRepo
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		blocks:  &fakeBlockRepo{blocks: map[string]*models.Block{}},
		modules: &fakeModuleRepo{nextID: 100},
	}
}

func (r *fakeRepository) Block() repositories.BlockRepository                 { return r.blocks }
func (r *fakeRepository) StudentModule() repositories.StudentModuleRepository { return r.modules }
func (r *fakeRepository) User() repositories.UserRepository                   { return nil }
func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}
func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// ===== FIXTURES =====

func seedBlock(r *fakeRepository, weight *float64) *models.Block {
	block := &models.Block{
		Location:    testLocation,
		CourseID:    "course-v1:ifmo+cs101+2025",
		BlockID:     "lab1",
		BlockType:   "gradable",
		DisplayName: ptr("Lab 1"),
		Description: ptr("Solve the *task*"),
		Weight:      weight,
		Attempts:    ptr(3),
		Due:         ptr(time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)),
	}
	r.blocks.blocks[block.Location] = block
	return block
}

func seedModule(r *fakeRepository, studentID, username, state string) *models.StudentModule {
	r.modules.nextID++
	module := &models.StudentModule{
		ID:             r.modules.nextID,
		StudentID:      studentID,
		Username:       username,
		ModuleStateKey: testLocation,
		CourseID:       "course-v1:ifmo+cs101+2025",
		State:          datatypes.JSON(state),
		Grade:          ptr(5.0),
		MaxGrade:       ptr(10.0),
	}
	r.modules.modules = append(r.modules.modules, module)
	return module
}

var (
	alice = &models.User{ID: "u-alice", Username: "alice", Role: models.RoleStudent}
	tutor = &models.User{ID: "u-tutor", Username: "tutor", Role: models.RoleTeacher}
)

func lmsRuntime(user *models.User, staff bool) *Runtime {
	return &Runtime{
		User:        user,
		UserIsStaff: ptr(staff),
		GetRealUser: func(ctx context.Context, username string) (*models.User, error) { return nil, nil },
		Locale:      "en",
	}
}

func studioRuntime(user *models.User) *Runtime {
	return &Runtime{User: user, UserIsStaff: ptr(true), Locale: "en"}
}

type testEnv struct {
	repo      *fakeRepository
	publisher *events.MockEventPublisher
	service   BlockService
}

func newTestEnv(t *testing.T, hooks ...SaveHook) *testEnv {
	t.Helper()
	renderer, err := render.NewRenderer("/static/block")
	require.NoError(t, err)

	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(discardLogger())
	service := NewBlockService(repo, discardLogger(), validator.New(), renderer, publisher, nil, hooks...)

	return &testEnv{repo: repo, publisher: publisher, service: service}
}

package task

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/example/task-tracker-demo/domain/task"
)

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task to the database. GORM fills ID, CreatedAt
// and UpdatedAt on the passed record.
func (r *Repository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID. Returns domain.ErrNotFound when
// no record exists.
func (r *Repository) FindByID(id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindAll retrieves all tasks ordered newest-created-first. The id
// tiebreak keeps the order deterministic for tasks created within the
// same timestamp resolution.
func (r *Repository) FindAll() ([]*domain.Task, error) {
	// Non-nil slice so an empty store serializes as [] rather than null.
	tasks := make([]*domain.Task, 0)
	if err := r.db.Order("created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus sets the status of a task and refreshes updated_at.
// The status value is not validated here; that is the caller's
// responsibility. Reports whether a record was affected.
func (r *Repository) UpdateStatus(id uint, status domain.Status) (bool, error) {
	result := r.db.Model(&domain.Task{}).Where("id = ?", id).Update("status", status)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to update task status: %w", err)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a task by ID (hard delete). Reports whether a record
// was affected.
func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return result.RowsAffected > 0, nil
}

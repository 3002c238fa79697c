package repository

import (
	"github.com/taskhive/taskhive-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// TaskRepository defines the interface for task data access. Every read and
// write is scoped to the owning user: a task owned by someone else behaves
// exactly like a task that does not exist.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByOwner finds a task by ID among the tasks owned by ownerID
	FindByOwner(id, ownerID uint64) (*models.Task, error)

	// List retrieves the owner's tasks with search and pagination,
	// newest-created first, returning the rows and the total match count
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete permanently removes a task owned by ownerID
	Delete(id, ownerID uint64) error
}

// TaskFilter holds listing options for tasks
type TaskFilter struct {
	OwnerID  uint64
	Search   string
	Page     int
	PageSize int
}

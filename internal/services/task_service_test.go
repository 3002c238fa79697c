package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"gorm.io/gorm"
)

func newTaskService(t *testing.T) (*TaskService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewTaskService(repository.NewTaskRepository(db))
	return svc, db
}

// seedTask inserts a task with an explicit creation time so ordering
// assertions are deterministic.
func seedTask(t *testing.T, db *gorm.DB, ownerID uint64, title string, createdAt time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusPending,
		Priority:  models.TaskPriorityMedium,
		UserID:    ownerID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestTaskService_CreateTaskDefaults(t *testing.T) {
	svc, _ := newTaskService(t)

	task, err := svc.CreateTask(1, CreateTaskInput{Title: "  Write spec  "})
	require.NoError(t, err)
	require.Equal(t, "Write spec", task.Title)
	require.Equal(t, models.TaskStatusPending, task.Status)
	require.Equal(t, models.TaskPriorityMedium, task.Priority)
	require.Nil(t, task.DueDate)
	require.EqualValues(t, 1, task.UserID)
}

func TestTaskService_CreateTaskTitleRequired(t *testing.T) {
	svc, _ := newTaskService(t)

	_, err := svc.CreateTask(1, CreateTaskInput{Title: "   "})
	require.ErrorIs(t, err, ErrTitleRequired)
}

func TestTaskService_CreateTaskInvalidPriority(t *testing.T) {
	svc, _ := newTaskService(t)

	_, err := svc.CreateTask(1, CreateTaskInput{Title: "Task", Priority: "urgent"})
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTaskService_ListNewestFirst(t *testing.T) {
	svc, db := newTaskService(t)

	base := time.Now().Add(-time.Hour)
	seedTask(t, db, 1, "oldest", base)
	seedTask(t, db, 1, "middle", base.Add(time.Minute))
	newest := seedTask(t, db, 1, "newest", base.Add(2*time.Minute))

	tasks, total, err := svc.ListTasks(1, ListTasksInput{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, tasks, 3)
	require.Equal(t, newest.ID, tasks[0].ID)
	require.Equal(t, "oldest", tasks[2].Title)
}

func TestTaskService_ListPagination(t *testing.T) {
	svc, db := newTaskService(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		seedTask(t, db, 1, fmt.Sprintf("task %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	tasks, total, err := svc.ListTasks(1, ListTasksInput{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 25, total)
	require.Len(t, tasks, 10)

	// Page 3 holds the remainder.
	tasks, _, err = svc.ListTasks(1, ListTasksInput{Page: 3, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, tasks, 5)
}

func TestTaskService_ListScopedToOwner(t *testing.T) {
	svc, db := newTaskService(t)

	now := time.Now()
	seedTask(t, db, 1, "mine", now)
	seedTask(t, db, 2, "theirs", now)

	tasks, total, err := svc.ListTasks(1, ListTasksInput{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	require.Equal(t, "mine", tasks[0].Title)
}

func TestTaskService_SearchCaseInsensitive(t *testing.T) {
	svc, db := newTaskService(t)

	now := time.Now()
	seedTask(t, db, 1, "Write the Report", now)
	match := seedTask(t, db, 1, "groceries", now.Add(time.Minute))
	match.Description = "buy REPORT binder"
	require.NoError(t, db.Save(match).Error)

	tasks, total, err := svc.ListTasks(1, ListTasksInput{Search: "report", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, tasks, 2)
}

func TestTaskService_SearchMetacharactersAreLiteral(t *testing.T) {
	svc, db := newTaskService(t)

	now := time.Now()
	seedTask(t, db, 1, "release a.b* today", now)
	seedTask(t, db, 1, "release aXbY today", now.Add(time.Minute))
	seedTask(t, db, 1, "discount 50%_off", now.Add(2*time.Minute))
	seedTask(t, db, 1, "discount 50Xoff", now.Add(3*time.Minute))

	tasks, total, err := svc.ListTasks(1, ListTasksInput{Search: "a.b*", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "release a.b* today", tasks[0].Title)

	// "%" and "_" must not act as LIKE wildcards.
	tasks, total, err = svc.ListTasks(1, ListTasksInput{Search: "50%_off", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "discount 50%_off", tasks[0].Title)
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	svc, _ := newTaskService(t)

	task, err := svc.CreateTask(1, CreateTaskInput{Title: "private"})
	require.NoError(t, err)

	// Another user's probes must be indistinguishable from a missing task.
	_, err = svc.GetTask(2, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	title := "stolen"
	_, err = svc.UpdateTask(2, task.ID, UpdateTaskInput{Title: &title})
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.DeleteTask(2, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	// The owner still sees the task untouched.
	got, err := svc.GetTask(1, task.ID)
	require.NoError(t, err)
	require.Equal(t, "private", got.Title)
}

func TestTaskService_UpdatePartialFields(t *testing.T) {
	svc, _ := newTaskService(t)

	due := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	task, err := svc.CreateTask(1, CreateTaskInput{
		Title:       "Write spec",
		Description: "full draft",
		Priority:    models.TaskPriorityHigh,
		DueDate:     &due,
	})
	require.NoError(t, err)

	status := models.TaskStatusCompleted
	updated, err := svc.UpdateTask(1, task.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)

	require.Equal(t, models.TaskStatusCompleted, updated.Status)
	require.Equal(t, "Write spec", updated.Title)
	require.Equal(t, "full draft", updated.Description)
	require.Equal(t, models.TaskPriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)
	require.True(t, updated.DueDate.Equal(due))
}

func TestTaskService_UpdateClearDueDate(t *testing.T) {
	svc, _ := newTaskService(t)

	due := time.Now().Add(24 * time.Hour)
	task, err := svc.CreateTask(1, CreateTaskInput{Title: "Write spec", DueDate: &due})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(1, task.ID, UpdateTaskInput{ClearDueDate: true})
	require.NoError(t, err)
	require.Nil(t, updated.DueDate)
}

func TestTaskService_UpdateInvalidStatus(t *testing.T) {
	svc, _ := newTaskService(t)

	task, err := svc.CreateTask(1, CreateTaskInput{Title: "Write spec"})
	require.NoError(t, err)

	status := models.TaskStatus("done")
	_, err = svc.UpdateTask(1, task.ID, UpdateTaskInput{Status: &status})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTaskService_DeleteReturnsLastState(t *testing.T) {
	svc, _ := newTaskService(t)

	task, err := svc.CreateTask(1, CreateTaskInput{Title: "Write spec"})
	require.NoError(t, err)

	deleted, err := svc.DeleteTask(1, task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, deleted.ID)
	require.Equal(t, "Write spec", deleted.Title)

	_, err = svc.GetTask(1, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	tasks, total, err := svc.ListTasks(1, ListTasksInput{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, tasks)
}

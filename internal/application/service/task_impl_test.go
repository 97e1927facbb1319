package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"deadline-tracker/internal/application/dto"
	"deadline-tracker/internal/domain/constant"
	"deadline-tracker/internal/domain/entity"
	"deadline-tracker/internal/domain/repository"
	sqliterepo "deadline-tracker/internal/infrastructure/database/sqlite"
	"deadline-tracker/internal/pkg/dateutil"
	appErrors "deadline-tracker/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTaskServiceUnderTest(t *testing.T) (TaskService, *stubNotificationService, repository.TaskRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, sqliterepo.AutoMigrate(db))

	repo := sqliterepo.NewTaskRepository(db)
	stub := newStubNotificationService()
	return NewTaskService(repo, stub, nopLogger{}), stub, repo
}

func TestCreateTaskSchedulesFutureReminder(t *testing.T) {
	svc, stub, _ := newTaskServiceUnderTest(t)

	due := time.Now().Add(48 * time.Hour)
	reminder := time.Now().Add(24 * time.Hour)

	id, err := svc.CreateTask(context.Background(), dto.CreateTaskRequest{
		Title:        "Essay",
		DueDate:      dateutil.FormatTimestamp(due),
		ReminderTime: dateutil.FormatTimestamp(reminder),
	})
	require.NoError(t, err)

	call, ok := stub.scheduledFor(id)
	require.True(t, ok)
	assert.Equal(t, "Reminder: Essay", call.title)
	assert.Equal(t, "Task due: "+dateutil.FormatTimestamp(due), call.body)
	assert.Equal(t, dateutil.FormatTimestamp(reminder), call.fireAt)
}

func TestCreateTaskDerivesReminderFromOffset(t *testing.T) {
	svc, stub, _ := newTaskServiceUnderTest(t)

	due := time.Now().Add(48 * time.Hour)
	id, err := svc.CreateTask(context.Background(), dto.CreateTaskRequest{
		Title:          "Lab report",
		DueDate:        dateutil.FormatTimestamp(due),
		ReminderOffset: "1 hour",
	})
	require.NoError(t, err)

	call, ok := stub.scheduledFor(id)
	require.True(t, ok)
	assert.Equal(t, dateutil.FormatTimestamp(due.Add(-time.Hour)), call.fireAt)
}

func TestCreateTaskIgnoresMalformedOffset(t *testing.T) {
	svc, stub, repo := newTaskServiceUnderTest(t)

	id, err := svc.CreateTask(context.Background(), dto.CreateTaskRequest{
		Title:          "Quiz prep",
		DueDate:        dateutil.FormatTimestamp(time.Now().Add(24 * time.Hour)),
		ReminderOffset: "sometime soonish",
	})
	require.NoError(t, err)

	_, ok := stub.scheduledFor(id)
	assert.False(t, ok, "malformed offset must yield no reminder, not an error")

	task, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, task.ReminderTime)
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _, _ := newTaskServiceUnderTest(t)
	ctx := context.Background()
	due := dateutil.FormatTimestamp(time.Now().Add(24 * time.Hour))

	_, err := svc.CreateTask(ctx, dto.CreateTaskRequest{DueDate: due})
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)

	_, err = svc.CreateTask(ctx, dto.CreateTaskRequest{Title: "x", DueDate: "tomorrow-ish"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidDateTime)

	_, err = svc.CreateTask(ctx, dto.CreateTaskRequest{Title: "x", DueDate: due, Priority: "urgent"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)

	_, err = svc.CreateTask(ctx, dto.CreateTaskRequest{Title: "x", DueDate: due, ReminderTime: "not-a-time"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidDateTime)
}

func TestCompleteTaskCancelsReminder(t *testing.T) {
	svc, stub, repo := newTaskServiceUnderTest(t)
	ctx := context.Background()

	id, err := svc.CreateTask(ctx, dto.CreateTaskRequest{
		Title:        "Essay",
		DueDate:      dateutil.FormatTimestamp(time.Now().Add(48 * time.Hour)),
		ReminderTime: dateutil.FormatTimestamp(time.Now().Add(24 * time.Hour)),
	})
	require.NoError(t, err)

	require.NoError(t, svc.CompleteTask(ctx, id))

	_, ok := stub.scheduledFor(id)
	assert.False(t, ok)
	assert.Equal(t, 1, stub.cancelCount(id))

	task, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, task.Completed)
}

func TestDeleteTaskCancelsReminder(t *testing.T) {
	svc, stub, _ := newTaskServiceUnderTest(t)
	ctx := context.Background()

	id, err := svc.CreateTask(ctx, dto.CreateTaskRequest{
		Title:        "Essay",
		DueDate:      dateutil.FormatTimestamp(time.Now().Add(48 * time.Hour)),
		ReminderTime: dateutil.FormatTimestamp(time.Now().Add(24 * time.Hour)),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, id))
	assert.Equal(t, 1, stub.cancelCount(id))

	_, err = svc.GetTask(ctx, id)
	assert.ErrorIs(t, err, appErrors.ErrTaskNotFound)
}

func TestUpdateTaskReconcilesReminder(t *testing.T) {
	svc, stub, _ := newTaskServiceUnderTest(t)
	ctx := context.Background()

	due := time.Now().Add(48 * time.Hour)
	id, err := svc.CreateTask(ctx, dto.CreateTaskRequest{
		Title:        "Essay",
		DueDate:      dateutil.FormatTimestamp(due),
		ReminderTime: dateutil.FormatTimestamp(time.Now().Add(24 * time.Hour)),
	})
	require.NoError(t, err)

	newReminder := time.Now().Add(36 * time.Hour)
	require.NoError(t, svc.UpdateTask(ctx, dto.UpdateTaskRequest{
		ID:           id,
		Title:        "Essay v2",
		DueDate:      dateutil.FormatTimestamp(due),
		ReminderTime: dateutil.FormatTimestamp(newReminder),
	}))

	call, ok := stub.scheduledFor(id)
	require.True(t, ok)
	assert.Equal(t, "Reminder: Essay v2", call.title)
	assert.Equal(t, dateutil.FormatTimestamp(newReminder), call.fireAt)

	// Marking the task completed via update cancels the pending reminder.
	require.NoError(t, svc.UpdateTask(ctx, dto.UpdateTaskRequest{
		ID:           id,
		Title:        "Essay v2",
		DueDate:      dateutil.FormatTimestamp(due),
		ReminderTime: dateutil.FormatTimestamp(newReminder),
		Completed:    true,
	}))
	_, ok = stub.scheduledFor(id)
	assert.False(t, ok)
}

func TestListTasksFilters(t *testing.T) {
	svc, _, repo := newTaskServiceUnderTest(t)
	ctx := context.Background()

	done := &entity.Task{Title: "done", DueDate: time.Now().Add(time.Hour), Priority: constant.PriorityLow, Completed: true, CreatedAt: time.Now()}
	open := &entity.Task{Title: "open", DueDate: time.Now().Add(2 * time.Hour), Priority: constant.PriorityHigh, CreatedAt: time.Now()}
	for _, task := range []*entity.Task{done, open} {
		_, err := repo.Create(ctx, task)
		require.NoError(t, err)
	}

	all, err := svc.ListTasks(ctx, constant.StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Empty filter defaults to all.
	all, err = svc.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListTasks(ctx, constant.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "open", pending[0].Title)

	completed, err := svc.ListTasks(ctx, constant.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "done", completed[0].Title)

	_, err = svc.ListTasks(ctx, "overdue")
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
}

func TestExportImportRoundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	source, _, _ := newTaskServiceUnderTest(t)
	due := time.Now().Add(48 * time.Hour)
	_, err := source.CreateTask(ctx, dto.CreateTaskRequest{
		Title:        "Essay",
		Description:  "5 pages",
		Course:       "ENG101",
		Priority:     constant.PriorityHigh,
		DueDate:      dateutil.FormatTimestamp(due),
		ReminderTime: dateutil.FormatTimestamp(time.Now().Add(24 * time.Hour)),
	})
	require.NoError(t, err)
	_, err = source.CreateTask(ctx, dto.CreateTaskRequest{
		Title:   "Quiz",
		DueDate: dateutil.FormatTimestamp(time.Now().Add(72 * time.Hour)),
	})
	require.NoError(t, err)

	require.NoError(t, source.ExportTasks(ctx, path))

	target, stub, repo := newTaskServiceUnderTest(t)
	imported, err := target.ImportTasks(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	tasks, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Essay", tasks[0].Title)
	assert.Equal(t, "ENG101", tasks[0].Course)
	require.NotNil(t, tasks[0].ReminderTime)

	// The imported future reminder gets scheduled under its new ID.
	_, ok := stub.scheduledFor(tasks[0].ID)
	assert.True(t, ok)
}

func TestImportRejectsNonCollectionFile(t *testing.T) {
	svc, _, _ := newTaskServiceUnderTest(t)
	path := filepath.Join(t.TempDir(), "bogus.json")
	require.NoError(t, writeFile(path, `{"not":"a list"}`))

	_, err := svc.ImportTasks(context.Background(), path)
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
}

func TestInitializeRemindersSchedulesOnlyUpcoming(t *testing.T) {
	svc, stub, repo := newTaskServiceUnderTest(t)
	ctx := context.Background()
	now := time.Now()

	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	upcoming := &entity.Task{Title: "upcoming", DueDate: now.Add(24 * time.Hour), Priority: constant.PriorityMedium, ReminderTime: &future, CreatedAt: now}
	fired := &entity.Task{Title: "fired", DueDate: now.Add(24 * time.Hour), Priority: constant.PriorityMedium, ReminderTime: &past, CreatedAt: now}
	done := &entity.Task{Title: "done", DueDate: now.Add(24 * time.Hour), Priority: constant.PriorityMedium, ReminderTime: &future, Completed: true, CreatedAt: now}
	for _, task := range []*entity.Task{upcoming, fired, done} {
		_, err := repo.Create(ctx, task)
		require.NoError(t, err)
	}

	require.NoError(t, svc.InitializeReminders(ctx))

	_, ok := stub.scheduledFor(upcoming.ID)
	assert.True(t, ok)
	_, ok = stub.scheduledFor(fired.ID)
	assert.False(t, ok)
	_, ok = stub.scheduledFor(done.ID)
	assert.False(t, ok)
}

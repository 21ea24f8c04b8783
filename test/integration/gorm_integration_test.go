package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesync/internal/entity"
	"notesync/internal/model"
	"notesync/internal/repository/specification"
	"notesync/internal/repository/unitofwork"
	"notesync/pkg/database"
	"notesync/pkg/view"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	require.NoError(t, gormDB.AutoMigrate(
		&model.User{},
		&model.Notebook{},
		&model.Note{},
		&model.LockSettings{},
		&model.ActivityEvent{},
	))

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.LockSettingsRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Notebook cascade delete", func(t *testing.T) {
		userId := uuid.New()
		notebook := &entity.Notebook{
			Id:        uuid.New(),
			UserId:    userId,
			Name:      "Groceries",
			Section:   view.SectionRegular,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.NotebookRepository().Create(ctx, notebook))

		note := &entity.Note{
			Id:         uuid.New(),
			UserId:     userId,
			NotebookId: &notebook.Id,
			Section:    view.SectionRegular,
			Content:    "milk",
		}
		require.NoError(t, uow.NoteRepository().Create(ctx, note))

		counts, err := uow.NoteRepository().CountByNotebook(ctx, userId, []uuid.UUID{notebook.Id})
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[notebook.Id])

		require.NoError(t, uow.NoteRepository().DeleteAllByNotebookId(ctx, userId, notebook.Id))
		require.NoError(t, uow.NotebookRepository().Delete(ctx, notebook.Id))

		orphans, err := uow.NoteRepository().FindAll(ctx,
			specification.OwnedBy{UserID: userId},
			specification.ByNotebookID{NotebookID: notebook.Id},
		)
		require.NoError(t, err)
		assert.Empty(t, orphans)
	})
}

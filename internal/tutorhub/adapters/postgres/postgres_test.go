package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub/internal/tutorhub/adapters/postgres"
	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/ports/repositories"
	"tutorhub/pkg/logger"
)

var userColumns = []string{"id", "email", "name", "password_hash", "user_type", "created_at"}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestRepositoryFactory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	factory := postgres.NewRepositoryFactory(mock)

	require.NotNil(t, factory)
	assert.Implements(t, (*repositories.UserRepository)(nil), factory.UserRepository())
	assert.Implements(t, (*repositories.CatalogRepository)(nil), factory.CatalogRepository())
}

func TestUserRepository_FindOne(t *testing.T) {
	ctx := testContext(t)
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Пользователь найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users WHERE email = \\$1 AND user_type = \\$2").
			WithArgs("a@x.com", "CLIENT").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-id", "a@x.com", "Alice", "hash", "CLIENT", createdAt))

		user, err := postgres.NewUserRepository(mock).FindOne(ctx, "a@x.com", entities.UserTypeClient)

		require.NoError(t, err)
		assert.Equal(t, &entities.User{
			ID:           "user-id",
			Email:        "a@x.com",
			Name:         "Alice",
			PasswordHash: "hash",
			UserType:     entities.UserTypeClient,
			CreatedAt:    createdAt,
		}, user)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users").
			WithArgs("a@x.com", "TUTOR").
			WillReturnError(pgx.ErrNoRows)

		user, err := postgres.NewUserRepository(mock).FindOne(ctx, "a@x.com", entities.UserTypeTutor)

		assert.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		dbError := errors.New("connection reset")
		mock.ExpectQuery("SELECT .+ FROM users").
			WithArgs("a@x.com", "CLIENT").
			WillReturnError(dbError)

		user, err := postgres.NewUserRepository(mock).FindOne(ctx, "a@x.com", entities.UserTypeClient)

		assert.Nil(t, user)
		require.ErrorIs(t, err, dbError)
		assert.NotErrorIs(t, err, entities.ErrUserNotFound)
		assert.Contains(t, err.Error(), "error querying user")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Неизвестный тип в базе", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users").
			WithArgs("a@x.com", "CLIENT").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-id", "a@x.com", "Alice", "hash", "ADMIN", createdAt))

		user, err := postgres.NewUserRepository(mock).FindOne(ctx, "a@x.com", entities.UserTypeClient)

		assert.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrInvalidUserType)
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	input := &entities.User{
		Email:        "t@x.com",
		Name:         "Tom",
		PasswordHash: "hashed",
		UserType:     entities.UserTypeTutor,
	}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(input.Email, input.Name, input.PasswordHash, "TUTOR").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("new-id", input.Email, input.Name, input.PasswordHash, "TUTOR", createdAt))

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "new-id", created.ID)
		assert.Equal(t, entities.UserTypeTutor, created.UserType)
		assert.Equal(t, createdAt, created.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирующаяся пара email и тип", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(input.Email, input.Name, input.PasswordHash, "TUTOR").
			WillReturnError(&pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_user_type_key",
			})

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)

		assert.Nil(t, created)
		require.ErrorIs(t, err, entities.ErrUserAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Общая ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(input.Email, input.Name, input.PasswordHash, "TUTOR").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)

		assert.Nil(t, created)
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrUserAlreadyExists)
		assert.Contains(t, err.Error(), "error creating user")
	})
}

func TestCatalogRepository_CourseSummaries(t *testing.T) {
	ctx := testContext(t)
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Список курсов", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM courses c JOIN users u").
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "subject", "description", "name", "created_at"}).
				AddRow("c1", "Algebra", "Math", "Intro", "Tom", createdAt).
				AddRow("c2", "Mechanics", "Physics", "", "Ann", createdAt))

		courses, err := postgres.NewCatalogRepository(mock).CourseSummaries(ctx)

		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, entities.CourseSummary{
			ID: "c1", Title: "Algebra", Subject: "Math", Description: "Intro", TutorName: "Tom", CreatedAt: createdAt,
		}, courses[0])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустой список", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM courses").
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "subject", "description", "name", "created_at"}))

		courses, err := postgres.NewCatalogRepository(mock).CourseSummaries(ctx)

		require.NoError(t, err)
		assert.NotNil(t, courses)
		assert.Empty(t, courses)
	})

	t.Run("Ошибка запроса", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM courses").WillReturnError(errors.New("boom"))

		courses, err := postgres.NewCatalogRepository(mock).CourseSummaries(ctx)

		assert.Nil(t, courses)
		assert.ErrorContains(t, err, "error querying courses")
	})
}

func TestCatalogRepository_TutorSummaries(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users u LEFT JOIN courses c").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "count"}).
			AddRow("t1", "Ann", "ann@x.com", int64(0)).
			AddRow("t2", "Tom", "tom@x.com", int64(3)))

	tutors, err := postgres.NewCatalogRepository(mock).TutorSummaries(ctx)

	require.NoError(t, err)
	assert.Equal(t, []entities.TutorSummary{
		{ID: "t1", Name: "Ann", Email: "ann@x.com", CourseCount: 0},
		{ID: "t2", Name: "Tom", Email: "tom@x.com", CourseCount: 3},
	}, tutors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_Ping(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))

	repo := postgres.NewCatalogRepository(mock)

	require.NoError(t, repo.Ping(ctx))
	assert.ErrorContains(t, repo.Ping(ctx), "error pinging database")
	require.NoError(t, mock.ExpectationsWereMet())
}

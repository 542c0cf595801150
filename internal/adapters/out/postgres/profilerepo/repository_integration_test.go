package profilerepo_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/adapters/out/postgres/profilerepo"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/profile"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ProfileRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *profilerepo.GormProfileRepository
}

func (suite *ProfileRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&profilerepo.ProfileDTO{}))
}

func (suite *ProfileRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE profiles").Error)
	suite.repository = profilerepo.NewGormProfileRepository(suite.db)
}

func (suite *ProfileRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestAdd_Get() {
	ctx := context.Background()
	p, err := profile.RestoreProfile(kernel.NewUUID(), role.SubAdmin, "Marta Díaz", "marta@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())

	suite.Require().NoError(err)
	suite.Equal(role.SubAdmin, loaded.Role())
	suite.Equal("Marta Díaz", loaded.FullName())
	suite.Equal("marta@example.com", loaded.Email())
	suite.True(loaded.HasPermission(role.SubAdmin))
	suite.False(loaded.HasPermission(role.Admin))
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestGet_UnknownRoleIsRejected() {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&profilerepo.ProfileDTO{
		ID:    id.Bytes(),
		Role:  "superuser",
		Email: "root@example.com",
	}).Error)

	_, err := suite.repository.Get(context.Background(), id)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func TestProfileRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositoryIntegrationTestSuite))
}

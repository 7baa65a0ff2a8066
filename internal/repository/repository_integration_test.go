package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"review-service/internal/model"
	"review-service/internal/review"
	_ "review-service/migrations"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RepositoryIntegrationTestSuite struct {
	suite.Suite
	db       *sqlx.DB
	pgc      *postgres.PostgresContainer
	ctx      context.Context
	users    UserRepository
	listings ListingRepository
	reviews  ReviewRepository
	tokens   TokenRepository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	s.pgc = pgc

	connStr, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("pgx", connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(goose.SetDialect("postgres"))
	s.Require().NoError(goose.Up(db.DB, "../../migrations"))

	s.users = NewPostgresUserRepository(db)
	s.listings = NewPostgresListingRepository(db)
	s.reviews = NewPostgresReviewRepository(db)
	s.tokens = NewPostgresTokenRepository(db)
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, `TRUNCATE reviews, date_logs, tokens, listings, users CASCADE`)
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	s.db.Close()
	if err := s.pgc.Terminate(s.ctx); err != nil {
		log.Fatalf("failed to terminate pg container: %s", err)
	}
}

func (s *RepositoryIntegrationTestSuite) TestReviews_SoftDeletedAreHidden() {
	// Arrange
	userID, err := s.users.Create(s.ctx, &model.User{Email: "reviewer@test.com", PasswordHash: "x", Nickname: "reviewer"})
	s.Require().NoError(err)

	listing := &model.Listing{
		OwnerID: userID, RoomType: "one-room", Address: "Seoul Mapo-gu Seogyo-dong 1",
		Province: "Seoul", City: "Mapo-gu", District: "Seogyo-dong", Neighborhood: "1",
	}
	s.Require().NoError(s.listings.Create(s.ctx, listing))

	var created []model.Review
	for _, rate := range []float64{3, 4, 5} {
		dateLog := &model.DateLog{UserID: userID, LastUserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		rv := &model.Review{
			UserID: userID, ListingID: listing.ID, Address: listing.Address,
			StartedAt: time.Now().AddDate(-1, 0, 0), EndedAt: time.Now(),
			TotalRate: rate, CleanRate: rate, NoiseRate: rate, AccessRate: rate, HostRate: rate, FacilityRate: rate,
			Content: "ok",
		}
		s.Require().NoError(s.reviews.Create(s.ctx, dateLog, rv))
		created = append(created, *rv)
	}

	// Act
	s.Require().NoError(s.reviews.SoftDelete(s.ctx, created[2].ID, time.Now()))
	byAddress, err := s.reviews.FindByAddress(s.ctx, listing.Address)
	s.Require().NoError(err)
	feed, err := s.reviews.FindActive(s.ctx, 0, 10, review.SortStar)
	s.Require().NoError(err)

	// Assert
	assert.Len(s.T(), byAddress, 2)
	assert.Len(s.T(), feed, 2)
	assert.Equal(s.T(), 4.0, feed[0].TotalRate)
	assert.Equal(s.T(), 3.5, review.Aggregate(byAddress).TotalRate)
}

func (s *RepositoryIntegrationTestSuite) TestReviews_FailedInsertLeavesNoDateLog() {
	// Arrange
	userID, err := s.users.Create(s.ctx, &model.User{Email: "orphan@test.com", PasswordHash: "x", Nickname: "orphan"})
	s.Require().NoError(err)
	dateLog := &model.DateLog{UserID: userID, LastUserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	rv := &model.Review{
		UserID: userID, ListingID: uuid.New(), Address: "nowhere",
		StartedAt: time.Now().AddDate(-1, 0, 0), EndedAt: time.Now(), Content: "ok",
	}

	// Act
	err = s.reviews.Create(s.ctx, dateLog, rv)

	// Assert
	s.Require().Error(err)
	var logs int
	s.Require().NoError(s.db.GetContext(s.ctx, &logs, `SELECT COUNT(*) FROM date_logs WHERE user_id = $1`, userID))
	assert.Zero(s.T(), logs)
}

func (s *RepositoryIntegrationTestSuite) TestReviews_AddressFilterIsLiteral() {
	// Arrange
	userID, err := s.users.Create(s.ctx, &model.User{Email: "literal@test.com", PasswordHash: "x", Nickname: "literal"})
	s.Require().NoError(err)
	for _, address := range []string{"Busan Haeundae-gu U_dong 100%", "Busan Haeundae-gu Uxdong 1000"} {
		listing := &model.Listing{
			OwnerID: userID, RoomType: "one-room", Address: address,
			Province: "Busan", City: "Haeundae-gu", District: "dong", Neighborhood: "1",
		}
		s.Require().NoError(s.listings.Create(s.ctx, listing))
		dateLog := &model.DateLog{UserID: userID, LastUserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		s.Require().NoError(s.reviews.Create(s.ctx, dateLog, &model.Review{
			UserID: userID, ListingID: listing.ID, Address: address,
			StartedAt: time.Now().AddDate(-1, 0, 0), EndedAt: time.Now(), TotalRate: 3, Content: "ok",
		}))
	}

	// Act
	underscore, err := s.reviews.FindByAddressContaining(s.ctx, "U_dong")
	s.Require().NoError(err)
	percent, err := s.reviews.FindByAddressContaining(s.ctx, "100%")
	s.Require().NoError(err)

	// Assert
	s.Require().Len(underscore, 1)
	assert.Equal(s.T(), "Busan Haeundae-gu U_dong 100%", underscore[0].Address)
	s.Require().Len(percent, 1)
	assert.Equal(s.T(), "Busan Haeundae-gu U_dong 100%", percent[0].Address)
}

func (s *RepositoryIntegrationTestSuite) TestTokens_ConditionalUpdate() {
	// Arrange
	userID, err := s.users.Create(s.ctx, &model.User{Email: "token@test.com", PasswordHash: "x", Nickname: "token"})
	s.Require().NoError(err)

	now := time.Now()
	record := &model.TokenRecord{
		UserID: userID, AccessToken: "access-1", RefreshToken: "refresh-1",
		AccessTokenExpiresAt: now.Add(time.Hour), RefreshTokenExpiresAt: now.Add(24 * time.Hour),
	}
	s.Require().NoError(s.tokens.Create(s.ctx, record))

	// Act
	record.AccessToken = "access-2"
	first := s.tokens.UpdateAccessToken(s.ctx, record, "access-1")
	second := s.tokens.UpdateAccessToken(s.ctx, record, "access-1")

	// Assert
	assert.NoError(s.T(), first)
	assert.ErrorIs(s.T(), second, ErrStaleToken)

	found, err := s.tokens.FindByPair(s.ctx, "access-2", "refresh-1")
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), found)

	stale, err := s.tokens.FindByPair(s.ctx, "access-1", "refresh-1")
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), stale)
}

func TestRepositoryIntegration(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("Docker is not available, skipping integration test.")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}

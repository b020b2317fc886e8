package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/internal/db"
)

type reviewTestEnv struct {
	db         *gorm.DB
	service    ReviewService
	reviewRepo repository.ReviewRepository
	branch     *model.Branch
	admin      *model.User
}

func setupReviewServiceTest(t *testing.T) *reviewTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	branchRepo := repository.NewBranchRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	branch := &model.Branch{Name: "Downtown", Location: "12 Main St", BranchCode: "DT01"}
	require.NoError(t, branchRepo.Create(branch))

	admin := &model.User{
		Email:        "admin@test.local",
		PasswordHash: "not-a-real-hash",
		FullName:     "Asha Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, userRepo.Create(admin))

	svc := NewReviewService(reviewRepo, branchRepo, userRepo, nil)

	return &reviewTestEnv{
		db:         testDB,
		service:    svc,
		reviewRepo: reviewRepo,
		branch:     branch,
		admin:      admin,
	}
}

func (env *reviewTestEnv) createReview(t *testing.T, rating int, content string) *model.Review {
	review, err := env.service.Create(CreateReviewInput{
		BranchID: env.branch.ID,
		Rating:   rating,
		Content:  content,
	})
	require.NoError(t, err)
	return review
}

func TestReviewService_Create(t *testing.T) {
	env := setupReviewServiceTest(t)

	review, err := env.service.Create(CreateReviewInput{
		BranchID:     env.branch.ID,
		Rating:       5,
		Title:        "Lovely evening",
		Content:      "Everything was perfect",
		Source:       "google",
		Category:     "food",
		CustomerName: "Dana",
	})
	require.NoError(t, err)
	require.NotZero(t, review.ID)

	assert.Equal(t, model.SentimentPositive, review.Sentiment)
	assert.Equal(t, model.SourceGoogle, review.Source)
	assert.Equal(t, model.CategoryFood, review.Category)
	assert.False(t, review.IsResponded)
	assert.False(t, review.IsEscalated)
}

func TestReviewService_Create_UnknownSourceFallsBack(t *testing.T) {
	env := setupReviewServiceTest(t)

	review := env.createReview(t, 3, "fine")
	assert.Equal(t, model.SourceInternal, review.Source)
}

func TestReviewService_Create_Errors(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.service.Create(CreateReviewInput{BranchID: env.branch.ID, Rating: 0, Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = env.service.Create(CreateReviewInput{BranchID: env.branch.ID, Rating: 3, Content: "  "})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = env.service.Create(CreateReviewInput{BranchID: 9999, Rating: 3, Content: "fine"})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestReviewService_Respond(t *testing.T) {
	env := setupReviewServiceTest(t)
	review := env.createReview(t, 2, "cold food")

	updated, err := env.service.Respond(review.ID, env.admin.ID, "We are sorry, please give us another chance")
	require.NoError(t, err)

	assert.True(t, updated.IsResponded)
	assert.Equal(t, "We are sorry, please give us another chance", updated.ResponseText)
	assert.Equal(t, env.admin.FullName, updated.StaffName)
	require.NotNil(t, updated.RespondedBy)
	assert.Equal(t, env.admin.ID, *updated.RespondedBy)
	require.NotNil(t, updated.RespondedAt)
	assert.WithinDuration(t, time.Now(), *updated.RespondedAt, 5*time.Second)
}

func TestReviewService_Respond_ExactlyOnce(t *testing.T) {
	env := setupReviewServiceTest(t)
	review := env.createReview(t, 1, "awful")

	first, err := env.service.Respond(review.ID, env.admin.ID, "first answer")
	require.NoError(t, err)

	_, err = env.service.Respond(review.ID, env.admin.ID, "second answer")
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	// The stored response is untouched by the rejected attempt.
	reloaded, err := env.service.Get(review.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ResponseText, reloaded.ResponseText)
	assert.Equal(t, first.RespondedAt.Unix(), reloaded.RespondedAt.Unix())
}

func TestReviewService_Respond_ConditionalUpdateWins(t *testing.T) {
	env := setupReviewServiceTest(t)
	review := env.createReview(t, 1, "awful")

	// Two writers that both passed the read check race on the
	// conditional update; only one row update may land.
	ok, err := env.reviewRepo.MarkResponded(review.ID, "writer one", "A", env.admin.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.reviewRepo.MarkResponded(review.ID, "writer two", "B", env.admin.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := env.service.Get(review.ID)
	require.NoError(t, err)
	assert.Equal(t, "writer one", reloaded.ResponseText)
}

func TestReviewService_Respond_Errors(t *testing.T) {
	env := setupReviewServiceTest(t)
	review := env.createReview(t, 3, "fine")

	_, err := env.service.Respond(review.ID, env.admin.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = env.service.Respond(9999, env.admin.ID, "hello")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_Escalate_Idempotent(t *testing.T) {
	env := setupReviewServiceTest(t)
	review := env.createReview(t, 1, "horrible")

	first, err := env.service.Escalate(review.ID)
	require.NoError(t, err)
	assert.True(t, first.IsEscalated)

	second, err := env.service.Escalate(review.ID)
	require.NoError(t, err)
	assert.True(t, second.IsEscalated)

	_, err = env.service.Escalate(9999)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_List_OrderingAndPagination(t *testing.T) {
	env := setupReviewServiceTest(t)

	for i := 0; i < 25; i++ {
		env.createReview(t, 3, fmt.Sprintf("visit %d", i))
	}

	reviews, total, pages, err := env.service.List(env.admin.ID, repository.ReviewFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, 3, pages)
	require.Len(t, reviews, 10)

	// Newest first, id breaks ties within the same timestamp.
	for i := 1; i < len(reviews); i++ {
		prev, cur := reviews[i-1], reviews[i]
		if prev.CreatedAt.Equal(cur.CreatedAt) {
			assert.Greater(t, prev.ID, cur.ID)
		} else {
			assert.True(t, prev.CreatedAt.After(cur.CreatedAt))
		}
	}

	last, _, _, err := env.service.List(env.admin.ID, repository.ReviewFilter{}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last, 5)

	beyond, total, pages, err := env.service.List(env.admin.ID, repository.ReviewFilter{}, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, 3, pages)
}

func TestReviewService_List_EmptyStore(t *testing.T) {
	env := setupReviewServiceTest(t)

	reviews, total, pages, err := env.service.List(env.admin.ID, repository.ReviewFilter{}, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 1, pages)
}

func TestReviewService_List_Filters(t *testing.T) {
	env := setupReviewServiceTest(t)

	env.createReview(t, 5, "perfect")
	env.createReview(t, 1, "awful")
	env.createReview(t, 3, "fine")

	positives, total, _, err := env.service.List(env.admin.ID, repository.ReviewFilter{
		Sentiment: model.SentimentPositive,
	}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, positives, 1)
	assert.Equal(t, model.SentimentPositive, positives[0].Sentiment)

	none, total, pages, err := env.service.List(env.admin.ID, repository.ReviewFilter{
		Category: model.CategoryCleanliness,
	}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 1, pages)
}

func TestReviewService_List_PageClamping(t *testing.T) {
	env := setupReviewServiceTest(t)
	env.createReview(t, 3, "fine")

	reviews, _, _, err := env.service.List(env.admin.ID, repository.ReviewFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	reviews, _, _, err = env.service.List(env.admin.ID, repository.ReviewFilter{}, -5, 1000)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestReviewService_List_StaffScopedToBranch(t *testing.T) {
	env := setupReviewServiceTest(t)

	userRepo := repository.NewUserRepository(env.db)
	branchRepo := repository.NewBranchRepository(env.db)

	other := &model.Branch{Name: "Uptown", Location: "9 Hill Rd", BranchCode: "UT01"}
	require.NoError(t, branchRepo.Create(other))

	staff := &model.User{
		Email:        "staff@test.local",
		PasswordHash: "not-a-real-hash",
		FullName:     "Sam Staff",
		Role:         model.RoleStaff,
		BranchID:     &env.branch.ID,
	}
	require.NoError(t, userRepo.Create(staff))

	env.createReview(t, 4, "nice")
	_, err := env.service.Create(CreateReviewInput{BranchID: other.ID, Rating: 2, Content: "meh"})
	require.NoError(t, err)

	// Staff only see their own branch.
	scoped, total, _, err := env.service.List(staff.ID, repository.ReviewFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, scoped, 1)
	assert.Equal(t, env.branch.ID, scoped[0].BranchID)

	// A staff filter for another branch cannot widen the scope.
	widened, total, _, err := env.service.List(staff.ID, repository.ReviewFilter{BranchID: other.ID}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, widened)
	assert.Equal(t, int64(0), total)

	// Admins see everything.
	all, total, _, err := env.service.List(env.admin.ID, repository.ReviewFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

package votes

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MITHU9/forum-hub-backend/internal/database"
	"github.com/MITHU9/forum-hub-backend/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("forumhub_test"),
		tcpostgres.WithUsername("forum"),
		tcpostgres.WithPassword("forum"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(ctr)
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createPost(t *testing.T, db *gorm.DB, title string) *models.Post {
	t.Helper()
	user := models.User{Username: "author-" + title, Email: title + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	post := models.Post{Title: title, AuthorID: user.ID}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

// requireConsistent asserts the spec invariant: counters equal the count
// of matching vote records.
func requireConsistent(t *testing.T, db *gorm.DB, postID int) {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, postID).Error)

	var up, down int64
	require.NoError(t, db.Model(&models.PostVote{}).Where("post_id = ? AND vote_type = ?", postID, models.VoteTypeUp).Count(&up).Error)
	require.NoError(t, db.Model(&models.PostVote{}).Where("post_id = ? AND vote_type = ?", postID, models.VoteTypeDown).Count(&down).Error)

	require.Equal(t, int(up), post.UpVotes, "up_votes counter drifted from vote records")
	require.Equal(t, int(down), post.DownVotes, "down_votes counter drifted from vote records")
}

func TestCastScenario(t *testing.T) {
	db := setupDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()
	post := createPost(t, db, "scenario")

	steps := []struct {
		voter    string
		kind     Kind
		wantMsg  string
		wantUp   int
		wantDown int
	}{
		{"a@example.com", Up, "Upvote added", 1, 0},
		{"a@example.com", Up, "Upvote removed", 0, 0},
		{"a@example.com", Down, "Downvote added", 0, 1},
		{"b@example.com", Up, "Upvote added", 1, 1},
		{"b@example.com", Down, "Vote switched to downvote", 0, 2},
		{"a@example.com", Down, "Downvote removed", 0, 1},
	}

	for i, step := range steps {
		res, err := ledger.CastPostVote(ctx, post.ID, step.voter, step.kind)
		require.NoError(t, err, "step %d", i)
		require.Equal(t, step.wantMsg, res.Message(), "step %d", i)
		require.Equal(t, step.wantUp, res.UpVotes, "step %d upvotes", i)
		require.Equal(t, step.wantDown, res.DownVotes, "step %d downvotes", i)
		requireConsistent(t, db, post.ID)
	}
}

func TestCastUnknownPost(t *testing.T) {
	db := setupDB(t)
	ledger := NewLedger(db)

	_, err := ledger.CastPostVote(context.Background(), 99999, "a@example.com", Up)
	require.ErrorIs(t, err, ErrPostNotFound)

	var count int64
	require.NoError(t, db.Model(&models.PostVote{}).Count(&count).Error)
	require.Zero(t, count, "no record may be created for an unknown post")
}

func TestCastInvalidInput(t *testing.T) {
	db := setupDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()
	post := createPost(t, db, "invalid-input")

	_, err := ledger.CastPostVote(ctx, post.ID, "   ", Up)
	require.ErrorIs(t, err, ErrInvalidVote)

	_, err = ledger.CastPostVote(ctx, post.ID, "a@example.com", Kind(3))
	require.ErrorIs(t, err, ErrInvalidVote)

	_, err = ledger.CastPostVote(ctx, 0, "a@example.com", Up)
	require.ErrorIs(t, err, ErrInvalidVote)

	requireConsistent(t, db, post.ID)
}

// TestCastConcurrentDistinctVoters: both casts must succeed and the final
// counters equal the sum of both transitions, whatever the interleaving.
func TestCastConcurrentDistinctVoters(t *testing.T) {
	db := setupDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()
	post := createPost(t, db, "concurrent-distinct")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = ledger.CastPostVote(ctx, post.ID, "a@example.com", Up)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = ledger.CastPostVote(ctx, post.ID, "b@example.com", Down)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var post2 models.Post
	require.NoError(t, db.First(&post2, post.ID).Error)
	require.Equal(t, 1, post2.UpVotes)
	require.Equal(t, 1, post2.DownVotes)
	requireConsistent(t, db, post.ID)
}

// TestCastConcurrentSameVoter: a double-click. Sequenced, two identical
// casts toggle on then off, so the only acceptable final state is no vote
// and untouched counters — a lost update would leave a dangling record or
// a drifted counter.
func TestCastConcurrentSameVoter(t *testing.T) {
	db := setupDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()
	post := createPost(t, db, "concurrent-same")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.CastPostVote(ctx, post.ID, "a@example.com", Up)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var post2 models.Post
	require.NoError(t, db.First(&post2, post.ID).Error)
	require.Equal(t, 0, post2.UpVotes)
	require.Equal(t, 0, post2.DownVotes)

	var count int64
	require.NoError(t, db.Model(&models.PostVote{}).Where("post_id = ?", post.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestCastCommentVote(t *testing.T) {
	db := setupDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()
	post := createPost(t, db, "comment-votes")

	comment := models.Comment{Body: "hello", PostID: post.ID, AuthorID: post.AuthorID}
	require.NoError(t, db.Create(&comment).Error)

	res, err := ledger.CastCommentVote(ctx, comment.ID, "a@example.com", Down)
	require.NoError(t, err)
	require.Equal(t, "Downvote added", res.Message())
	require.Equal(t, 1, res.DownVotes)

	res, err = ledger.CastCommentVote(ctx, comment.ID, "a@example.com", Up)
	require.NoError(t, err)
	require.Equal(t, "Vote switched to upvote", res.Message())
	require.Equal(t, 1, res.UpVotes)
	require.Equal(t, 0, res.DownVotes)

	_, err = ledger.CastCommentVote(ctx, 99999, "a@example.com", Up)
	require.ErrorIs(t, err, ErrCommentNotFound)
}

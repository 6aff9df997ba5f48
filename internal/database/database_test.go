package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	d := NewDatabase(db)
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func createAccount(t *testing.T, d *Database, username string) *models.Account {
	t.Helper()
	account := &models.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := d.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("create account %s: %v", username, err)
	}
	return account
}

func createPost(t *testing.T, d *Database, owner *models.Account) *models.Post {
	t.Helper()
	post, err := d.CreatePost(context.Background(), owner.ID, "caption", "")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestCreateAccountDuplicates(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	createAccount(t, d, "alice")

	err := d.CreateAccount(ctx, &models.Account{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("duplicate username: got %v", err)
	}
	err = d.CreateAccount(ctx, &models.Account{Username: "bob", Email: "alice@example.com", PasswordHash: "x"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("duplicate email: got %v", err)
	}
}

func TestToggleLikeTwice(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	post := createPost(t, d, alice)

	first, err := d.ToggleLike(ctx, alice.ID, post.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if first.Action != LikeActionLiked || first.LikeCount != 1 {
		t.Fatalf("first toggle = %+v", first)
	}

	second, err := d.ToggleLike(ctx, alice.ID, post.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Action != LikeActionUnliked || second.LikeCount != 0 {
		t.Fatalf("second toggle = %+v", second)
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	d := newTestDatabase(t)
	alice := createAccount(t, d, "alice")

	_, err := d.ToggleLike(context.Background(), alice.ID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDuplicateLikeIsUniqueViolation(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	post := createPost(t, d, alice)

	if err := d.db.WithContext(ctx).Create(&models.Like{AccountID: alice.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("first like: %v", err)
	}
	err := d.db.WithContext(ctx).Create(&models.Like{AccountID: alice.ID, PostID: post.ID}).Error
	if !isUniqueViolation(err) {
		t.Fatalf("second insert: got %v, want unique violation", err)
	}
}

func TestInsertLikeAbsorbsConcurrentDuplicate(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	post := createPost(t, d, alice)

	// лайк уже вставлен параллельным запросом
	if err := d.db.WithContext(ctx).Create(&models.Like{AccountID: alice.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("first like: %v", err)
	}

	var action LikeAction
	var inTx int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if action, err = insertLike(tx, alice.ID, post.ID); err != nil {
			return err
		}
		return tx.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&inTx).Error
	})
	if err != nil {
		t.Fatalf("insert like: %v", err)
	}
	if action != LikeActionLiked {
		t.Errorf("action = %q, want liked", action)
	}
	if inTx != 1 {
		t.Errorf("count inside transaction = %d, want 1", inTx)
	}

	count, err := d.LikeCount(ctx, post.ID)
	if err != nil || count != 1 {
		t.Fatalf("like count = %d, %v; want 1", count, err)
	}

	// после поглощённого дубликата обычный toggle снимает лайк
	result, err := d.ToggleLike(ctx, alice.ID, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != LikeActionUnliked || result.LikeCount != 0 {
		t.Errorf("toggle = %+v, want unliked/0", result)
	}
}

func TestAddCommentEmptyIsNoop(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	post := createPost(t, d, alice)

	comment, err := d.AddComment(ctx, alice.ID, post.ID, "")
	if err != nil || comment != nil {
		t.Fatalf("empty comment = %v, %v", comment, err)
	}
	count, err := d.CommentCount(ctx, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("comment count = %d", count)
	}

	if _, err := d.AddComment(ctx, alice.ID, post.ID, "nice"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if count, _ = d.CommentCount(ctx, post.ID); count != 1 {
		t.Fatalf("comment count = %d", count)
	}

	if _, err := d.AddComment(ctx, alice.ID, uuid.New(), "lost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("comment on missing post: %v", err)
	}
}

func TestListFeedNewestFirst(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	bob := createAccount(t, d, "bob")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		post := &models.Post{AccountID: alice.ID, Caption: fmt.Sprint(i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := d.db.Create(post).Error; err != nil {
			t.Fatal(err)
		}
		ids = append(ids, post.ID)
	}
	if _, err := d.ToggleLike(ctx, bob.ID, ids[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddComment(ctx, bob.ID, ids[0], "first!"); err != nil {
		t.Fatal(err)
	}

	feed, err := d.ListFeed(ctx)
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("feed len = %d", len(feed))
	}
	for i, want := range []uuid.UUID{ids[2], ids[1], ids[0]} {
		if feed[i].ID != want {
			t.Errorf("feed[%d] = %s, want %s", i, feed[i].ID, want)
		}
	}
	if feed[0].Account.Username != "alice" {
		t.Errorf("author not preloaded: %+v", feed[0].Account)
	}

	stats, err := d.FeedStats(ctx, bob.ID, ids)
	if err != nil {
		t.Fatalf("feed stats: %v", err)
	}
	if s := stats[ids[0]]; s.LikeCount != 1 || s.CommentCount != 1 || !s.LikedByMe {
		t.Errorf("stats[0] = %+v", s)
	}
	if s := stats[ids[1]]; s.LikeCount != 0 || s.LikedByMe {
		t.Errorf("stats[1] = %+v", s)
	}
}

func seedThread(t *testing.T, d *Database, a, b *models.Account) []models.DirectMessage {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.DirectMessage{
		{SenderID: a.ID, RecipientID: b.ID, Content: "hi", CreatedAt: base},
		{SenderID: b.ID, RecipientID: a.ID, Content: "hello", CreatedAt: base.Add(time.Minute)},
		{SenderID: b.ID, RecipientID: a.ID, Content: "how are you", CreatedAt: base.Add(2 * time.Minute)},
		{SenderID: a.ID, RecipientID: b.ID, Content: "fine", CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range msgs {
		if err := d.SaveMessage(context.Background(), &msgs[i]); err != nil {
			t.Fatalf("save message: %v", err)
		}
	}
	return msgs
}

func TestListThreadSymmetricOldestFirst(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	bob := createAccount(t, d, "bob")
	carol := createAccount(t, d, "carol")
	seeded := seedThread(t, d, alice, bob)
	if _, err := d.SendMessage(ctx, carol.ID, alice.ID, "unrelated", false); err != nil {
		t.Fatal(err)
	}

	ab, err := d.ListThread(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := d.ListThread(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ab) != len(seeded) || len(ba) != len(seeded) {
		t.Fatalf("thread sizes %d/%d, want %d", len(ab), len(ba), len(seeded))
	}
	for i := range seeded {
		if ab[i].ID != seeded[i].ID || ba[i].ID != seeded[i].ID {
			t.Errorf("position %d: %s / %s, want %s", i, ab[i].ID, ba[i].ID, seeded[i].ID)
		}
	}
}

func TestListThreadMarksIncomingRead(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	bob := createAccount(t, d, "bob")
	seedThread(t, d, alice, bob)

	before, err := d.UnreadCount(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if before != 2 {
		t.Fatalf("unread before = %d", before)
	}

	if _, err := d.ListThread(ctx, alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	var all []models.DirectMessage
	if err := d.db.Find(&all).Error; err != nil {
		t.Fatal(err)
	}
	for _, m := range all {
		switch {
		case m.SenderID == bob.ID && !m.IsRead:
			t.Errorf("message %q from bob still unread", m.Content)
		case m.SenderID == alice.ID && m.IsRead:
			t.Errorf("message %q from alice marked read", m.Content)
		}
	}
}

func TestListRecentActivityCapped(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	bob := createAccount(t, d, "bob")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		msg := &models.DirectMessage{SenderID: alice.ID, RecipientID: bob.ID, Content: fmt.Sprint(i), CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if i%2 == 1 {
			msg.SenderID, msg.RecipientID = bob.ID, alice.ID
		}
		if err := d.SaveMessage(ctx, msg); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := d.ListRecentActivity(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != recentActivityLimit {
		t.Fatalf("len = %d", len(recent))
	}
	if recent[0].Content != "24" || recent[len(recent)-1].Content != "5" {
		t.Errorf("order: first %q last %q", recent[0].Content, recent[len(recent)-1].Content)
	}
}

func TestSendMessageNoop(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	bob := createAccount(t, d, "bob")

	if msg, err := d.SendMessage(ctx, alice.ID, uuid.Nil, "hi", false); msg != nil || err != nil {
		t.Errorf("missing recipient = %v, %v", msg, err)
	}
	if msg, err := d.SendMessage(ctx, alice.ID, bob.ID, "", false); msg != nil || err != nil {
		t.Errorf("missing text = %v, %v", msg, err)
	}
	if _, err := d.SendMessage(ctx, alice.ID, uuid.New(), "hi", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown recipient: %v", err)
	}
}

func TestDeleteAccountCascadesPostsButKeepsMessages(t *testing.T) {
	d := newTestDatabase(t)
	ctx := context.Background()
	alice := createAccount(t, d, "alice")
	bob := createAccount(t, d, "bob")

	alicePost := createPost(t, d, alice)
	bobPost := createPost(t, d, bob)
	for _, step := range []struct{ who, post uuid.UUID }{
		{bob.ID, alicePost.ID},
		{alice.ID, bobPost.ID},
	} {
		if _, err := d.ToggleLike(ctx, step.who, step.post); err != nil {
			t.Fatal(err)
		}
		if _, err := d.AddComment(ctx, step.who, step.post, "hey"); err != nil {
			t.Fatal(err)
		}
	}
	seedThread(t, d, alice, bob)
	if err := d.SaveExchange(ctx, &models.AssistantExchange{AccountID: alice.ID, Mode: "general", UserMessage: "q", AIResponse: "a"}); err != nil {
		t.Fatal(err)
	}

	if err := d.DeleteAccount(ctx, alice.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	count := func(model any, where string, args ...any) int64 {
		var n int64
		if err := d.db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
			t.Fatal(err)
		}
		return n
	}
	if n := count(&models.Post{}, "account_id = ?", alice.ID); n != 0 {
		t.Errorf("alice posts left: %d", n)
	}
	if n := count(&models.Like{}, "account_id = ? OR post_id = ?", alice.ID, alicePost.ID); n != 0 {
		t.Errorf("likes left: %d", n)
	}
	if n := count(&models.Comment{}, "account_id = ? OR post_id = ?", alice.ID, alicePost.ID); n != 0 {
		t.Errorf("comments left: %d", n)
	}
	if n := count(&models.Post{}, "id = ?", bobPost.ID); n != 1 {
		t.Errorf("bob post removed")
	}
	if n := count(&models.DirectMessage{}, "sender_id = ? OR recipient_id = ?", alice.ID, alice.ID); n != 4 {
		t.Errorf("messages left = %d, want 4", n)
	}
	if n := count(&models.AssistantExchange{}, "account_id = ?", alice.ID); n != 1 {
		t.Errorf("assistant log left = %d, want 1", n)
	}

	if err := d.DeleteAccount(ctx, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

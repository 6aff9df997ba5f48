package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/thereayou/everchat/internal/models"
	"gorm.io/gorm"
)

type LikeAction string

const (
	LikeActionLiked   LikeAction = "liked"
	LikeActionUnliked LikeAction = "unliked"
)

const likeSavePoint = "like_insert"

type LikeResult struct {
	Action    LikeAction
	LikeCount int64
}

// PostStats агрегаты поста для ленты
type PostStats struct {
	LikeCount    int64
	CommentCount int64
	LikedByMe    bool
}

func (d *Database) CreatePost(ctx context.Context, accountID uuid.UUID, caption, mediaRef string) (*models.Post, error) {
	post := &models.Post{
		AccountID: accountID,
		Caption:   caption,
		MediaRef:  mediaRef,
	}
	if err := d.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (d *Database) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := d.db.WithContext(ctx).Preload("Account").First(&post, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// ListFeed возвращает все посты, новые первыми
func (d *Database) ListFeed(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := d.db.WithContext(ctx).
		Preload("Account").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (d *Database) ListAccountPosts(ctx context.Context, accountID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	err := d.db.WithContext(ctx).
		Preload("Account").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ToggleLike снимает лайк, если он есть, иначе ставит.
// Конкурентная вставка того же лайка считается как "liked".
func (d *Database) ToggleLike(ctx context.Context, accountID, postID uuid.UUID) (*LikeResult, error) {
	result := &LikeResult{}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, "id = ?", postID).Error; err != nil {
			return err
		}

		res := tx.Where("account_id = ? AND post_id = ?", accountID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.Action = LikeActionUnliked
			return nil
		}

		action, err := insertLike(tx, accountID, postID)
		if err != nil {
			return err
		}
		result.Action = action
		return nil
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	count, err := d.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	result.LikeCount = count
	return result, nil
}

// insertLike ставит лайк внутри транзакции. Если такой лайк уже вставил
// конкурентный запрос, вставка откатывается до savepoint и считается "liked".
func insertLike(tx *gorm.DB, accountID, postID uuid.UUID) (LikeAction, error) {
	if err := tx.SavePoint(likeSavePoint).Error; err != nil {
		return "", err
	}
	err := tx.Create(&models.Like{AccountID: accountID, PostID: postID}).Error
	if isUniqueViolation(err) {
		if err := tx.RollbackTo(likeSavePoint).Error; err != nil {
			return "", err
		}
		return LikeActionLiked, nil
	}
	if err != nil {
		return "", err
	}
	return LikeActionLiked, nil
}

func (d *Database) LikeCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// AddComment молча игнорирует пустой текст: возвращает nil, nil
func (d *Database) AddComment(ctx context.Context, accountID, postID uuid.UUID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, nil
	}

	db := d.db.WithContext(ctx)

	var post models.Post
	if err := db.Select("id").First(&post, "id = ?", postID).Error; err != nil {
		return nil, notFound(err)
	}

	comment := &models.Comment{
		AccountID: accountID,
		PostID:    postID,
		Content:   content,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (d *Database) ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := d.db.WithContext(ctx).
		Preload("Account").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (d *Database) CommentCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// FeedStats считает лайки и комментарии для набора постов одним запросом на таблицу
func (d *Database) FeedStats(ctx context.Context, viewerID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]*PostStats, error) {
	stats := make(map[uuid.UUID]*PostStats, len(postIDs))
	if len(postIDs) == 0 {
		return stats, nil
	}
	for _, id := range postIDs {
		stats[id] = &PostStats{}
	}

	type row struct {
		PostID uuid.UUID
		Count  int64
	}
	db := d.db.WithContext(ctx)

	var likes []row
	if err := db.Model(&models.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likes).Error; err != nil {
		return nil, err
	}
	for _, r := range likes {
		stats[r.PostID].LikeCount = r.Count
	}

	var comments []row
	if err := db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&comments).Error; err != nil {
		return nil, err
	}
	for _, r := range comments {
		stats[r.PostID].CommentCount = r.Count
	}

	var liked []uuid.UUID
	if err := db.Model(&models.Like{}).
		Where("account_id = ? AND post_id IN ?", viewerID, postIDs).
		Pluck("post_id", &liked).Error; err != nil {
		return nil, err
	}
	for _, id := range liked {
		stats[id].LikedByMe = true
	}

	return stats, nil
}

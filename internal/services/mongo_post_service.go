package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlink/backend/internal/models"
)

type MongoPostService struct {
	postsCol *mongo.Collection
}

func NewMongoPostService(ctx context.Context, db *mongo.Database) *MongoPostService {
	col := db.Collection("posts")

	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	return &MongoPostService{postsCol: col}
}

func (s *MongoPostService) Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		Text:      req.Text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []models.Like{},
		CreatedAt: time.Now(),
	}

	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *MongoPostService) List(ctx context.Context) ([]*models.Post, error) {
	cur, err := s.postsCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Post, 0)
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, err
		}
		out = append(out, &post)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.postsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := requireOwner(post.UserID, userID); err != nil {
		return err
	}

	res, err := s.postsCol.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Like inserts userID at the front of the like-set. The membership check and
// the write are a single conditional update, so two concurrent likes from the
// same user cannot both succeed.
func (s *MongoPostService) Like(ctx context.Context, userID, postID string) ([]models.Like, error) {
	res, err := s.postsCol.UpdateOne(
		ctx,
		bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"likes": bson.M{
			"$each":     []models.Like{{User: userID}},
			"$position": 0,
		}}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		// Either the post is gone or the user already liked it.
		if _, err := s.GetByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyLiked
	}

	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes userID from the like-set with the same single-statement
// pattern as Like.
func (s *MongoPostService) Unlike(ctx context.Context, userID, postID string) ([]models.Like, error) {
	res, err := s.postsCol.UpdateOne(
		ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrPostNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, ErrNotLiked
	}

	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

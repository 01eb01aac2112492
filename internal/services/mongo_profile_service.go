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

type MongoProfileService struct {
	profilesCol *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, db *mongo.Database) *MongoProfileService {
	col := db.Collection("profiles")

	// Best-effort index; one profile per user.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoProfileService{profilesCol: col}
}

func (s *MongoProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	cur, err := s.profilesCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Profile, 0)
	for cur.Next(ctx) {
		var prof models.Profile
		if err := cur.Decode(&prof); err != nil {
			return nil, err
		}
		out = append(out, &prof)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	now := time.Now()

	set := bson.M{
		"updated_at": now,
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.Company != nil {
		set["company"] = *req.Company
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.GithubUsername != nil {
		set["github_username"] = *req.GithubUsername
	}
	if req.Skills != nil {
		set["skills"] = *req.Skills
	}
	if req.Social != nil {
		set["social"] = *req.Social
	}

	// MongoDB forbids the same path in both $set and $setOnInsert, so the
	// insert defaults only cover fields the caller is not setting.
	setOnInsert := bson.M{
		"user_id":    userID,
		"experience": []models.Experience{},
		"education":  []models.Education{},
	}
	if req.Skills == nil {
		setOnInsert["skills"] = []string{}
	}

	_, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	return s.GetByUserID(ctx, userID)
}

func (s *MongoProfileService) AddExperience(ctx context.Context, userID string, req *models.AddExperienceRequest) (*models.Profile, error) {
	exp := models.Experience{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	return s.prependEntry(ctx, userID, "experience", exp)
}

func (s *MongoProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "experience", expID)
}

func (s *MongoProfileService) AddEducation(ctx context.Context, userID string, req *models.AddEducationRequest) (*models.Profile, error) {
	edu := models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	return s.prependEntry(ctx, userID, "education", edu)
}

func (s *MongoProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "education", eduID)
}

func (s *MongoProfileService) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := s.profilesCol.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// prependEntry pushes entry to the front of the named sub-collection so the
// newest entry lists first.
func (s *MongoProfileService) prependEntry(ctx context.Context, userID, field string, entry interface{}) (*models.Profile, error) {
	res, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{field: bson.M{"$each": []interface{}{entry}, "$position": 0}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}

	return s.GetByUserID(ctx, userID)
}

// pullEntry removes the entry with the given generated ID. An unknown ID
// leaves the document unchanged, updated_at included, and is not an error.
func (s *MongoProfileService) pullEntry(ctx context.Context, userID, field, entryID string) (*models.Profile, error) {
	res, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$pull": bson.M{field: bson.M{"id": entryID}}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}

	if res.ModifiedCount > 0 {
		_, err = s.profilesCol.UpdateOne(
			ctx,
			bson.M{"user_id": userID},
			bson.M{"$set": bson.M{"updated_at": time.Now()}},
		)
		if err != nil {
			return nil, err
		}
	}

	return s.GetByUserID(ctx, userID)
}

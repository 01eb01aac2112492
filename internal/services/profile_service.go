package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devlink/backend/internal/models"
	"github.com/devlink/backend/internal/storage"
)

var ErrProfileNotFound = errors.New("profile not found")

// MemoryProfileService keeps profiles in memory keyed by the owning user ID,
// optionally snapshotted to a JSON file.
type MemoryProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile // userID -> profile
	store    *storage.JSONStore
}

func NewMemoryProfileService(store *storage.JSONStore) *MemoryProfileService {
	s := &MemoryProfileService{
		profiles: make(map[string]*models.Profile),
		store:    store,
	}

	if store != nil {
		var snapshot []*models.Profile
		if err := store.Load(&snapshot); err == nil {
			for _, p := range snapshot {
				s.profiles[p.UserID] = p
			}
		}
	}

	return s
}

func (s *MemoryProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*models.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		results = append(results, cloneProfile(profile))
	}

	return results, nil
}

func (s *MemoryProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		profile = &models.Profile{
			UserID:     userID,
			Skills:     []string{},
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
		s.profiles[userID] = profile
	}

	if req.Status != nil {
		profile.Status = *req.Status
	}
	if req.Company != nil {
		profile.Company = *req.Company
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.GithubUsername != nil {
		profile.GithubUsername = *req.GithubUsername
	}
	if req.Skills != nil {
		profile.Skills = *req.Skills
	}
	if req.Social != nil {
		profile.Social = *req.Social
	}
	profile.UpdatedAt = time.Now()
	s.persist()

	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) AddExperience(ctx context.Context, userID string, req *models.AddExperienceRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

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

	// Newest entry first.
	profile.Experience = append([]models.Experience{exp}, profile.Experience...)
	profile.UpdatedAt = time.Now()
	s.persist()

	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	// An unknown ID leaves the collection unchanged; this is not an error.
	for i, exp := range profile.Experience {
		if exp.ID == expID {
			profile.Experience = append(profile.Experience[:i], profile.Experience[i+1:]...)
			profile.UpdatedAt = time.Now()
			break
		}
	}
	s.persist()

	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) AddEducation(ctx context.Context, userID string, req *models.AddEducationRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

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

	profile.Education = append([]models.Education{edu}, profile.Education...)
	profile.UpdatedAt = time.Now()
	s.persist()

	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	for i, edu := range profile.Education {
		if edu.ID == eduID {
			profile.Education = append(profile.Education[:i], profile.Education[i+1:]...)
			profile.UpdatedAt = time.Now()
			break
		}
	}
	s.persist()

	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) DeleteByUserID(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, userID)
	s.persist()

	return nil
}

// cloneProfile copies the profile along with its slice fields. The removal
// operations compact the stored slices in place, so a shared backing array
// would let them rewrite a copy handed out earlier.
func cloneProfile(profile *models.Profile) *models.Profile {
	profileCopy := *profile
	profileCopy.Skills = append([]string(nil), profile.Skills...)
	profileCopy.Experience = append([]models.Experience(nil), profile.Experience...)
	profileCopy.Education = append([]models.Education(nil), profile.Education...)
	return &profileCopy
}

func (s *MemoryProfileService) persist() {
	if s.store == nil {
		return
	}
	snapshot := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		snapshot = append(snapshot, p)
	}
	_ = s.store.Save(snapshot)
}

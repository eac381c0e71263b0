package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

const (
	statsCachePrefix = "stats:"
	statsCacheKey    = "counts"
)

type Stats struct {
	NumberOfUsers    int `json:"numberOfUsers"`
	NumberOfCourses  int `json:"numberOfCourses"`
	NumberOfContents int `json:"numberOfContents"`
}

// StatsService counts users, courses and contents. With a Redis client and a
// positive TTL the result is cached; cache errors fall through to storage.
type StatsService struct {
	Users    repo.UserLister
	Courses  repo.CourseRepository
	Contents repo.ContentRepository
	Cache    *helpers.JSONCache[Stats] // nil disables caching
	Logger   *logrus.Logger
}

func NewStatsService(users repo.UserLister, courses repo.CourseRepository, contents repo.ContentRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *StatsService {
	s := &StatsService{Users: users, Courses: courses, Contents: contents, Logger: logger}
	if rdb != nil && ttl > 0 {
		s.Cache = helpers.NewJSONCache[Stats](rdb, statsCachePrefix, ttl)
	}
	return s
}

func (s *StatsService) Get(ctx context.Context) (Stats, error) {
	if s.Cache != nil {
		st, found, err := s.Cache.Get(ctx, statsCacheKey)
		if err == nil && found {
			return st, nil
		}
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache read failed")
		}
	}

	var (
		st  Stats
		err error
	)
	if st.NumberOfUsers, err = s.Users.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.NumberOfCourses, err = s.Courses.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.NumberOfContents, err = s.Contents.Count(ctx); err != nil {
		return Stats{}, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, statsCacheKey, st); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache write failed")
		}
	}
	return st, nil
}

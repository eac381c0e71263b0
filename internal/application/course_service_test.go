package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
	"github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/memory"
)

func TestCourseService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := application.NewCourseService(memory.NewCourseRepository(s), memory.NewContentRepository(s))

	c, err := svc.Create(ctx, "Go", "Learn Go")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, application.TextInput{Description: ptr("Learn Go properly")})
	require.NoError(t, err)
	assert.Equal(t, "Go", updated.Name)
	assert.Equal(t, "Learn Go properly", updated.Description)

	content, err := svc.CreateContent(ctx, c.ID, "Basics", "Types")
	require.NoError(t, err)

	list, err := svc.FindAllContents(ctx, c.ID, repository.TextFilter{Name: "bas"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.UpdateContent(ctx, "other-course", content.ID, application.TextInput{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateContent(ctx, "missing", "Basics", "Types")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id, err := svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)

	_, err = svc.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatsService_CachesInRedis(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	f := newFixture(t)
	s := memory.NewStore()
	courses := application.NewCourseService(memory.NewCourseRepository(s), memory.NewContentRepository(s))
	stats := application.NewStatsService(f.repo, courses.Courses, courses.Contents, rdb, time.Minute, nil)

	c, err := courses.Create(ctx, "Go", "Learn Go")
	require.NoError(t, err)
	_, err = courses.CreateContent(ctx, c.ID, "Basics", "Types")
	require.NoError(t, err)

	got, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, application.Stats{NumberOfUsers: 1, NumberOfCourses: 1, NumberOfContents: 1}, got)
	assert.True(t, mr.Exists("stats:counts"))

	// served from cache until the TTL passes
	_, err = courses.Create(ctx, "Rust", "Learn Rust")
	require.NoError(t, err)
	got, err = stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumberOfCourses)

	mr.FastForward(2 * time.Minute)
	got, err = stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumberOfCourses)
}

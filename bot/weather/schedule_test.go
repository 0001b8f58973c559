package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aaronson2012/JAKOBOT/bot/bottest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_everydayCron(t *testing.T) {
	assert.Equal(t, "30 08 * * *", getCronString(8, 30))
	assert.Equal(t, "00 00 * * *", getCronString(0, 0))
}

func TestDaily_ArmTwiceKeepsOneSchedule(t *testing.T) {
	var d Daily
	defer d.Stop()

	zone, err := time.LoadLocation("Europe/Brussels")
	require.NoError(t, err)

	require.NoError(t, d.Arm(zone, 8, 0, func() {}))
	first := d.sched
	require.NotNil(t, first)
	assert.Equal(t, 1, d.Jobs())

	require.NoError(t, d.Arm(zone, 9, 15, func() {}))
	assert.NotSame(t, first, d.sched)
	assert.False(t, first.IsRunning(), "previous schedule is cancelled")
	assert.Equal(t, 0, first.Len())
	assert.Equal(t, 1, d.Jobs())

	var next time.Time
	assert.Eventually(t, func() bool {
		var ok bool
		next, ok = d.NextRun()
		return ok
	}, time.Second, 10*time.Millisecond)
	local := next.In(zone)
	assert.Equal(t, 9, local.Hour())
	assert.Equal(t, 15, local.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestDaily_Stop(t *testing.T) {
	var d Daily
	d.Stop() // nothing armed

	require.NoError(t, d.Arm(time.UTC, 8, 0, func() {}))
	d.Stop()
	assert.Equal(t, 0, d.Jobs())
	_, ok := d.NextRun()
	assert.False(t, ok)
}

func TestMorningPost_Setup(t *testing.T) {
	fetch := fetcherFunc(func(context.Context) (*Report, error) { return sampleReport("GB"), nil })
	poster := &bottest.Poster{}

	t.Run("not configured", func(t *testing.T) {
		cfg := testConfig("")
		cfg.ChannelID = ""
		m := NewMorningPost(cfg, fetch)
		err := m.Setup(poster)
		assert.ErrorIs(t, err, ErrNotConfigured)
		_, ok := m.NextRun()
		assert.False(t, ok)
	})

	t.Run("re-arming keeps one schedule", func(t *testing.T) {
		m := NewMorningPost(testConfig("https://api.openweathermap.org/data/2.5/forecast"), fetch)
		defer m.Stop()

		require.NoError(t, m.Setup(poster))
		require.NoError(t, m.Setup(poster))
		assert.Equal(t, 1, m.daily.Jobs())
	})
}

func TestMorningPost_Run(t *testing.T) {
	cfg := testConfig("https://api.openweathermap.org/data/2.5/forecast")

	t.Run("posts the morning embed", func(t *testing.T) {
		poster := &bottest.Poster{}
		m := NewMorningPost(cfg, fetcherFunc(func(context.Context) (*Report, error) {
			return sampleReport(""), nil
		}))
		require.NoError(t, m.Run(context.Background(), poster))

		posts := poster.Posts()
		require.Len(t, posts, 1)
		assert.Equal(t, "1234", posts[0].ChannelID)
		assert.Equal(t, "Good Morning! Weather Forecast for Seattle "+Morning.Emoji(), posts[0].Embed.Title)
	})

	t.Run("fetch failure posts nothing", func(t *testing.T) {
		poster := &bottest.Poster{}
		m := NewMorningPost(cfg, fetcherFunc(func(context.Context) (*Report, error) {
			return nil, ErrFetchFailed
		}))
		assert.ErrorIs(t, m.Run(context.Background(), poster), ErrFetchFailed)
		assert.Empty(t, poster.Posts())
	})

	t.Run("post failure", func(t *testing.T) {
		poster := &bottest.Poster{Err: errors.New("missing access")}
		m := NewMorningPost(cfg, fetcherFunc(func(context.Context) (*Report, error) {
			return sampleReport(""), nil
		}))
		assert.Error(t, m.Run(context.Background(), poster))
	})
}

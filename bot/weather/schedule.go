package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/aaronson2012/JAKOBOT/bot"
)

/*
build a cron header that runs every day at hour:minute
	# ┌───────────── minute (0 - 59)
	# │ ┌───────────── hour (0 - 23)
	# │ │ ┌───────────── day of the month (1 - 31)
	# │ │ │ ┌───────────── month (1 - 12)
	# │ │ │ │ ┌───────────── day of the week (0 - 6)
	# │ │ │ │ │
	# * * * * * <command to execute>
*/
func getCronString(hour int, minute int) string {
	return fmt.Sprintf("%02d %02d * * *", minute, hour)
}

func addRunEverydayJob(s *gocron.Scheduler, jobFunc interface{}, cronString string) error {
	_, err := s.
		Cron(cronString).
		Do(jobFunc)
	return err
}

// Daily owns the single scheduler of a once-a-day job. Arming again replaces
// the previous schedule.
type Daily struct {
	mu    sync.Mutex
	sched *gocron.Scheduler
}

// Arm runs job every day at hour:minute in zone. Any previous schedule is
// stopped first.
func (d *Daily) Arm(zone *time.Location, hour, minute int, job func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()

	s := gocron.NewScheduler(zone)
	s.SingletonModeAll()
	if err := addRunEverydayJob(s, job, getCronString(hour, minute)); err != nil {
		return fmt.Errorf("schedule daily job: %w", err)
	}
	s.StartAsync()
	d.sched = s
	return nil
}

func (d *Daily) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Daily) stopLocked() {
	if d.sched == nil {
		return
	}
	d.sched.Stop()
	d.sched.Clear()
	d.sched = nil
}

// NextRun is the next trigger time, false when nothing is armed.
func (d *Daily) NextRun() (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sched == nil {
		return time.Time{}, false
	}
	_, t := d.sched.NextRun()
	return t, !t.IsZero()
}

// Jobs counts the armed jobs.
func (d *Daily) Jobs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sched == nil {
		return 0
	}
	return d.sched.Len()
}

// MorningPost posts the forecast to a channel once a day.
type MorningPost struct {
	cfg     Config
	fetcher Fetcher
	daily   Daily
	now     func() time.Time
}

func NewMorningPost(cfg Config, fetcher Fetcher) *MorningPost {
	return &MorningPost{cfg: cfg, fetcher: fetcher, now: time.Now}
}

// Setup arms the daily post to poster. It is safe to call on every
// reconnect, the previous schedule is cancelled. A configuration problem
// leaves nothing armed and is returned wrapped in ErrNotConfigured.
func (m *MorningPost) Setup(poster bot.ChannelPoster) error {
	if err := m.cfg.CheckSchedule(); err != nil {
		m.daily.Stop()
		return err
	}
	zone, err := m.cfg.Location()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	hour, minute, err := parseClock(m.cfg.PostAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	logger.Infof("setting weather cron job for timezone: %s at %s", zone, m.cfg.PostAt)
	err = m.daily.Arm(zone, hour, minute, func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout+30*time.Second)
		defer cancel()
		if err := m.Run(ctx, poster); err != nil {
			// nobody is waiting for this post, log only
			logger.Errorf("error posting daily forecast: %v", err)
			return
		}
		logger.Infof("daily forecast posted to %s", m.cfg.ChannelID)
	})
	if err != nil {
		return err
	}
	if next, ok := m.daily.NextRun(); ok {
		logger.Infof("next daily forecast at %s (%s from now)", next.Format(time.RFC3339), next.Sub(m.now()).Round(time.Second))
	}
	return nil
}

// Run fetches and posts one forecast.
func (m *MorningPost) Run(ctx context.Context, poster bot.ChannelPoster) error {
	report, err := m.fetcher.Fetch(ctx)
	if err != nil {
		postsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("error fetching weather for daily cron: %w", err)
	}
	if err := poster.PostEmbed(ctx, m.cfg.ChannelID, ForecastEmbed(report, DailyMorning, m.now())); err != nil {
		postsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("post to channel %s: %w", m.cfg.ChannelID, err)
	}
	postsTotal.WithLabelValues("ok").Inc()
	return nil
}

func (m *MorningPost) Stop() {
	m.daily.Stop()
}

func (m *MorningPost) NextRun() (time.Time, bool) {
	return m.daily.NextRun()
}

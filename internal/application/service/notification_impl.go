package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"deadline-tracker/internal/infrastructure/notification"
	"deadline-tracker/internal/pkg/dateutil"
	appErrors "deadline-tracker/internal/pkg/errors"
	"deadline-tracker/internal/pkg/logger"
)

// DefaultScanInterval is how often the loop checks for due reminders.
const DefaultScanInterval = 60 * time.Second

// pendingReminder is a reminder waiting to fire. Scheduled reminders carry no
// device token; the scan loop delivers them on the local channel.
type pendingReminder struct {
	fireAt time.Time
	title  string
	body   string
}

type notificationService struct {
	sender   notification.Sender
	log      logger.Logger
	interval time.Duration

	mu      sync.Mutex // Protects pending and the lifecycle fields below
	pending map[uint]pendingReminder
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewNotificationService creates a NotificationService scanning at the given
// interval. A non-positive interval falls back to DefaultScanInterval.
func NewNotificationService(sender notification.Sender, interval time.Duration, log logger.Logger) NotificationService {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &notificationService{
		sender:   sender,
		log:      log,
		interval: interval,
		pending:  make(map[uint]pendingReminder),
	}
}

// SendNow delivers a notification immediately through the delivery backend.
func (s *notificationService) SendNow(title, body, token string) {
	if !s.sender.Send(context.Background(), title, body, token) {
		s.log.Warn(fmt.Sprintf("No channel delivered notification %q", title))
	}
}

// Schedule upserts the pending reminder for a task and lazily starts the loop.
func (s *notificationService) Schedule(taskID uint, fireAt, title, body string) error {
	t, err := dateutil.ParseTimestamp(fireAt)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Rejected reminder for task %d: %v", taskID, err))
		return fmt.Errorf("%w: %q", appErrors.ErrInvalidDateTime, fireAt)
	}

	s.mu.Lock()
	s.pending[taskID] = pendingReminder{fireAt: t, title: title, body: body}
	s.mu.Unlock()
	s.log.Debug(fmt.Sprintf("Scheduled reminder for task %d at %v", taskID, t))

	s.Start()
	return nil
}

// Cancel removes the pending reminder for a task.
func (s *notificationService) Cancel(taskID uint) {
	s.mu.Lock()
	delete(s.pending, taskID)
	s.mu.Unlock()
}

// Start launches the background scan loop.
func (s *notificationService) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go s.run(stop, done)
	s.log.Info("Notification service started")
}

// Stop halts the scan loop and blocks until the goroutine has exited.
func (s *notificationService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
	s.log.Info("Notification service stopped")
}

// run is the background scan loop. Selecting on the stop channel keeps
// shutdown latency independent of the scan interval.
func (s *notificationService) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			s.scanOnce(now)
		}
	}
}

// scanOnce dispatches every reminder due at now and evicts it regardless of
// the delivery outcome (at-most-once attempt, no retry). The snapshot is
// taken under the lock; delivery runs outside it so a slow send cannot block
// Schedule or Cancel callers.
func (s *notificationService) scanOnce(now time.Time) {
	s.mu.Lock()
	due := make(map[uint]pendingReminder)
	for id, r := range s.pending {
		if !r.fireAt.After(now) {
			due[id] = r
		}
	}
	s.mu.Unlock()

	for id, r := range due {
		if !s.sender.Send(context.Background(), r.title, r.body, "") {
			s.log.Warn(fmt.Sprintf("Reminder for task %d was not delivered", id))
		}
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

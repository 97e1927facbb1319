package service

import (
	"context"
	"os"
	"sync"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

type nopLogger struct{}

func (nopLogger) Error(msg string, err error) {}
func (nopLogger) Warn(msg string)             {}
func (nopLogger) Info(msg string)             {}
func (nopLogger) Debug(msg string)            {}

type sendCall struct {
	title string
	body  string
	token string
}

// fakeSender records delivery attempts and returns a configurable result.
type fakeSender struct {
	mu     sync.Mutex
	result bool
	calls  []sendCall
}

func newFakeSender(result bool) *fakeSender {
	return &fakeSender{result: result}
}

func (f *fakeSender) Send(ctx context.Context, title, body, token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sendCall{title: title, body: body, token: token})
	return f.result
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSender) last() sendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type scheduledReminder struct {
	fireAt string
	title  string
	body   string
}

// stubNotificationService records Schedule/Cancel calls for task service tests.
type stubNotificationService struct {
	mu        sync.Mutex
	scheduled map[uint]scheduledReminder
	cancelled []uint
}

func newStubNotificationService() *stubNotificationService {
	return &stubNotificationService{scheduled: make(map[uint]scheduledReminder)}
}

func (s *stubNotificationService) SendNow(title, body, token string) {}

func (s *stubNotificationService) Schedule(taskID uint, fireAt, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled[taskID] = scheduledReminder{fireAt: fireAt, title: title, body: body}
	return nil
}

func (s *stubNotificationService) Cancel(taskID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scheduled, taskID)
	s.cancelled = append(s.cancelled, taskID)
}

func (s *stubNotificationService) Start() {}
func (s *stubNotificationService) Stop()  {}

func (s *stubNotificationService) scheduledFor(taskID uint) (scheduledReminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	call, ok := s.scheduled[taskID]
	return call, ok
}

func (s *stubNotificationService) cancelCount(taskID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range s.cancelled {
		if id == taskID {
			n++
		}
	}
	return n
}

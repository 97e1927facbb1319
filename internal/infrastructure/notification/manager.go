package notification

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"deadline-tracker/internal/pkg/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/gen2brain/beeep"
	"google.golang.org/api/option"
)

// A hanging remote call must not stall the scheduler loop indefinitely.
const remoteSendTimeout = 10 * time.Second

// Sender delivers a rendered notification through one of the available channels.
type Sender interface {
	// Send reports whether any channel produced a successful delivery.
	Send(ctx context.Context, title, body, token string) bool
}

// Manager sends notifications via Firebase Cloud Messaging with a local
// desktop notification fallback. Channel capabilities are probed once at
// construction; a missing Firebase configuration disables the remote channel
// for the process lifetime.
type Manager struct {
	log           logger.Logger
	remoteEnabled bool
	localEnabled  bool

	// Channel seams; default to FCM and beeep.
	remoteSend func(ctx context.Context, title, body, token string) (string, error)
	localSend  func(title, body string) error
}

var (
	managerInstance *Manager
	once            sync.Once
)

// NewManager creates the singleton notification manager. configFile is the
// path to the Firebase service-account credentials; its absence disables the
// remote channel without error. Local notifications can be switched off with
// the DISABLE_LOCAL_NOTIFY environment variable.
func NewManager(configFile string, log logger.Logger) *Manager {
	once.Do(func() {
		m := &Manager{
			log:          log,
			localEnabled: os.Getenv("DISABLE_LOCAL_NOTIFY") == "",
			localSend: func(title, body string) error {
				return beeep.Notify(title, body, "")
			},
		}

		if _, err := os.Stat(configFile); err != nil {
			log.Info("Firebase config file not found, FCM disabled")
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), remoteSendTimeout)
			defer cancel()

			app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(configFile))
			if err != nil {
				log.Error("Failed to initialize Firebase app, FCM disabled", err)
			} else if client, err := app.Messaging(ctx); err != nil {
				log.Error("Failed to initialize FCM client, FCM disabled", err)
			} else {
				m.remoteEnabled = true
				m.remoteSend = func(ctx context.Context, title, body, token string) (string, error) {
					return client.Send(ctx, &messaging.Message{
						Notification: &messaging.Notification{
							Title: title,
							Body:  body,
						},
						Token: token,
					})
				}
				log.Info("Firebase initialized successfully")
			}
		}

		if !m.localEnabled {
			log.Info("Local notifications disabled by configuration")
		}
		managerInstance = m
	})
	return managerInstance
}

// RemoteEnabled reports whether the FCM channel initialized.
func (m *Manager) RemoteEnabled() bool { return m.remoteEnabled }

// LocalEnabled reports whether the local desktop channel is available.
func (m *Manager) LocalEnabled() bool { return m.localEnabled }

// Send attempts remote delivery first when a token is supplied and FCM is
// enabled, then falls back to a local desktop notification. A false result is
// a soft failure the caller may log and ignore.
func (m *Manager) Send(ctx context.Context, title, body, token string) bool {
	if token != "" && m.remoteEnabled {
		if m.sendRemote(ctx, title, body, token) {
			return true
		}
	}
	return m.sendLocal(title, body)
}

func (m *Manager) sendRemote(ctx context.Context, title, body, token string) bool {
	ctx, cancel := context.WithTimeout(ctx, remoteSendTimeout)
	defer cancel()

	id, err := m.remoteSend(ctx, title, body, token)
	if err != nil {
		m.log.Warn(fmt.Sprintf("Failed to send FCM notification: %v", err))
		return false
	}
	m.log.Debug(fmt.Sprintf("Successfully sent FCM message: %s", id))
	return true
}

func (m *Manager) sendLocal(title, body string) bool {
	if !m.localEnabled {
		return false
	}
	if err := m.localSend(title, body); err != nil {
		m.log.Warn(fmt.Sprintf("Failed to send local notification: %v", err))
		return false
	}
	return true
}

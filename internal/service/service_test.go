package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"learnmate/internal/logger"
	"learnmate/internal/metrics"
	"learnmate/internal/models"
	"learnmate/internal/repository"
	"learnmate/internal/security"
)

type fixedRoller int

func (r fixedRoller) IntN(n int) int { return int(r) % n }

type recordingNotifier struct {
	mu       sync.Mutex
	welcomed []string
	levels   []int
}

func (n *recordingNotifier) Welcome(_ context.Context, account models.Account) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomed = append(n.welcomed, account.Email)
	return nil
}

func (n *recordingNotifier) LevelUp(_ context.Context, _ models.Account, level int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.levels = append(n.levels, level)
	return nil
}

type testEnv struct {
	kv       *repository.MemoryKV
	clock    *time.Time
	notifier *recordingNotifier
	accounts *AccountService
	sessions *SessionService
	auth     *AuthService
	learning *LearningService
	rooms    *RoomService
	backup   *BackupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	env := &testEnv{
		kv:       repository.NewMemoryKV(),
		clock:    &now,
		notifier: &recordingNotifier{},
	}
	clock := func() time.Time { return *env.clock }
	log := logger.Nop()
	m := metrics.New()

	env.accounts = NewAccountService(repository.NewAccountRepository(env.kv), security.PlaintextVerifier{})
	env.accounts.now = clock
	env.sessions = NewSessionService(repository.NewSessionRepository(env.kv), env.accounts)
	env.sessions.now = clock
	env.auth = NewAuthService(env.accounts, env.sessions, env.notifier, m, log)
	env.auth.now = clock

	signer := security.NewShareSigner("test-secret", time.Hour)
	env.learning = NewLearningService(
		repository.NewProgressRepository(env.kv),
		repository.NewLessonRepository(env.kv),
		env.sessions,
		signer,
		env.notifier,
		m,
		log,
		"https://learn.example.com/",
	)
	env.learning.now = clock
	env.learning.rng = fixedRoller(0)

	env.rooms = NewRoomService(repository.NewRoomRepository(env.kv), env.sessions, m, log)
	env.rooms.now = clock
	env.backup = NewBackupService(env.kv, "memory", log)
	env.backup.now = clock
	return env
}

func (e *testEnv) advance(d time.Duration) {
	next := e.clock.Add(d)
	*e.clock = next
}

func (e *testEnv) signup(t *testing.T) models.Account {
	t.Helper()
	account, err := e.auth.Signup(context.Background(), "ada@example.com", "secret", "Ada")
	require.NoError(t, err)
	return account
}

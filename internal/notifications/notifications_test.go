package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type(), Queue: QueueDefault}, nil
}

type fakeUsers struct {
	users map[string]models.User
	err   error
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user %s", id)
	}
	return &user, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeRefresher struct {
	count int
	err   error
	calls int
}

func (f *fakeRefresher) Refresh(ctx context.Context) (int, error) {
	f.calls++
	return f.count, f.err
}

func testCredential() models.Credential {
	return models.Credential{
		ID:     "c1",
		UserID: "u1",
		Title:  "Blockchain <Fundamentals>",
		Issuer: "Blockchain Academy",
		Status: models.CredentialStatusPending,
	}
}

func TestNotifier(t *testing.T) {
	tests := []struct {
		name         string
		send         func(*Notifier, context.Context, models.Credential) error
		expectedType string
	}{
		{name: "issued", send: (*Notifier).CredentialIssued, expectedType: models.TaskCredentialIssued},
		{name: "verified", send: (*Notifier).CredentialVerified, expectedType: models.TaskCredentialVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeEnqueuer{}
			notifier := NewNotifier(client, zap.NewNop())

			require.NoError(t, tt.send(notifier, context.Background(), testCredential()))
			require.Len(t, client.tasks, 1)
			assert.Equal(t, tt.expectedType, client.tasks[0].Type())

			var payload models.CredentialNotification
			require.NoError(t, json.Unmarshal(client.tasks[0].Payload(), &payload))
			assert.Equal(t, models.CredentialNotification{
				CredentialID: "c1",
				UserID:       "u1",
				Title:        "Blockchain <Fundamentals>",
				Issuer:       "Blockchain Academy",
			}, payload)
		})
	}
}

func TestNotifier_EnqueueError(t *testing.T) {
	notifier := NewNotifier(&fakeEnqueuer{err: errors.New("redis down")}, zap.NewNop())

	err := notifier.CredentialIssued(context.Background(), testCredential())
	assert.Error(t, err)
}

func newTask(t *testing.T, taskType string, payload any) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(taskType, raw)
}

func TestHandler_CredentialEmails(t *testing.T) {
	users := &fakeUsers{users: map[string]models.User{"u1": {ID: "u1", Email: "ada@example.com", Name: "Ada"}}}
	notification := models.CredentialNotification{CredentialID: "c1", UserID: "u1", Title: "Blockchain <Fundamentals>", Issuer: "Academy"}

	t.Run("issued", func(t *testing.T) {
		mailer := &fakeMailer{}
		handler := NewHandler(users, mailer, &fakeRefresher{}, zap.NewNop())

		err := handler.HandleCredentialIssued(context.Background(), newTask(t, models.TaskCredentialIssued, notification))
		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "ada@example.com", mailer.sent[0].to)
		assert.Equal(t, "Your new credential: Blockchain <Fundamentals>", mailer.sent[0].subject)
		assert.Contains(t, mailer.sent[0].body, "Blockchain &lt;Fundamentals&gt;")
		assert.Contains(t, mailer.sent[0].body, "pending verification")
	})

	t.Run("verified", func(t *testing.T) {
		mailer := &fakeMailer{}
		handler := NewHandler(users, mailer, &fakeRefresher{}, zap.NewNop())

		err := handler.HandleCredentialVerified(context.Background(), newTask(t, models.TaskCredentialVerified, notification))
		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
		assert.Contains(t, mailer.sent[0].subject, "Credential verified")
	})

	t.Run("invalid payload skips retry", func(t *testing.T) {
		handler := NewHandler(users, &fakeMailer{}, &fakeRefresher{}, zap.NewNop())

		err := handler.HandleCredentialIssued(context.Background(), asynq.NewTask(models.TaskCredentialIssued, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("missing user is dropped", func(t *testing.T) {
		mailer := &fakeMailer{}
		handler := NewHandler(&fakeUsers{}, mailer, &fakeRefresher{}, zap.NewNop())

		err := handler.HandleCredentialIssued(context.Background(), newTask(t, models.TaskCredentialIssued, notification))
		assert.NoError(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("user lookup failure is retried", func(t *testing.T) {
		handler := NewHandler(&fakeUsers{err: errors.New("db down")}, &fakeMailer{}, &fakeRefresher{}, zap.NewNop())

		err := handler.HandleCredentialIssued(context.Background(), newTask(t, models.TaskCredentialIssued, notification))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("mail failure is returned", func(t *testing.T) {
		handler := NewHandler(users, &fakeMailer{err: errors.New("smtp refused")}, &fakeRefresher{}, zap.NewNop())

		err := handler.HandleCredentialVerified(context.Background(), newTask(t, models.TaskCredentialVerified, notification))
		assert.Error(t, err)
	})
}

func TestHandler_CatalogRefresh(t *testing.T) {
	refresher := &fakeRefresher{count: 2}
	handler := NewHandler(&fakeUsers{}, &fakeMailer{}, refresher, zap.NewNop())

	require.NoError(t, handler.HandleCatalogRefresh(context.Background(), asynq.NewTask(models.TaskCatalogRefresh, nil)))
	assert.Equal(t, 1, refresher.calls)

	refresher.err = errors.New("db down")
	assert.Error(t, handler.HandleCatalogRefresh(context.Background(), asynq.NewTask(models.TaskCatalogRefresh, nil)))
}

func TestHandler_Register(t *testing.T) {
	mux := asynq.NewServeMux()
	NewHandler(&fakeUsers{}, &fakeMailer{}, &fakeRefresher{}, zap.NewNop()).Register(mux)

	for _, taskType := range []string{models.TaskCredentialIssued, models.TaskCredentialVerified, models.TaskCatalogRefresh} {
		_, pattern := mux.Handler(asynq.NewTask(taskType, nil))
		assert.Equal(t, taskType, pattern)
	}
}

func TestNewRefreshScheduler(t *testing.T) {
	scheduler, err := NewRefreshScheduler("@every 10m", &fakeEnqueuer{}, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, scheduler.Entries(), 1)

	_, err = NewRefreshScheduler("every ten minutes", &fakeEnqueuer{}, zap.NewNop())
	assert.Error(t, err)
}

// lockingEnqueuer mimics the broker's dedup rules: a unique lock expires after
// its TTL, while a task ID stays taken for as long as the task is retained,
// including after it has been archived.
type lockingEnqueuer struct {
	now      time.Time
	locks    map[string]time.Time
	takenIDs map[string]bool
	tasks    []*asynq.Task
}

func newLockingEnqueuer() *lockingEnqueuer {
	return &lockingEnqueuer{
		now:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		locks:    map[string]time.Time{},
		takenIDs: map[string]bool{},
	}
}

func (l *lockingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	for _, opt := range opts {
		switch opt.Type() {
		case asynq.TaskIDOpt:
			id := opt.Value().(string)
			if l.takenIDs[id] {
				return nil, asynq.ErrTaskIDConflict
			}
			l.takenIDs[id] = true
		case asynq.UniqueOpt:
			if expiry, ok := l.locks[task.Type()]; ok && l.now.Before(expiry) {
				return nil, asynq.ErrDuplicateTask
			}
			l.locks[task.Type()] = l.now.Add(opt.Value().(time.Duration))
		}
	}
	l.tasks = append(l.tasks, task)
	return &asynq.TaskInfo{ID: "task", Type: task.Type(), Queue: QueueDefault}, nil
}

func TestEnqueueCatalogRefresh(t *testing.T) {
	t.Run("enqueues", func(t *testing.T) {
		client := &fakeEnqueuer{}
		EnqueueCatalogRefresh(context.Background(), client, zap.NewNop())
		require.Len(t, client.tasks, 1)
		assert.Equal(t, models.TaskCatalogRefresh, client.tasks[0].Type())
	})

	t.Run("enqueue failure is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		EnqueueCatalogRefresh(context.Background(), &fakeEnqueuer{err: errors.New("redis down")}, zap.New(core))
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("archived run does not block later ticks", func(t *testing.T) {
		client := newLockingEnqueuer()
		EnqueueCatalogRefresh(context.Background(), client, zap.NewNop())
		require.Len(t, client.tasks, 1)

		// The first run exhausts its retries and is archived; the next tick
		// comes one schedule interval later.
		client.now = client.now.Add(10 * time.Minute)
		EnqueueCatalogRefresh(context.Background(), client, zap.NewNop())
		assert.Len(t, client.tasks, 2)
	})

	tests := []struct {
		name string
		err  error
	}{
		{name: "pending duplicate", err: asynq.ErrDuplicateTask},
		{name: "task id conflict", err: asynq.ErrTaskIDConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name+" is logged as a skip", func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			EnqueueCatalogRefresh(context.Background(), &fakeEnqueuer{err: tt.err}, zap.New(core))
			assert.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
			assert.Equal(t, 1, logs.FilterMessage("catalog refresh already pending, skipping").Len())
			assert.Equal(t, 0, logs.FilterMessage("catalog refresh enqueued").Len())
		})
	}

	t.Run("tick within the lock window is collapsed", func(t *testing.T) {
		client := newLockingEnqueuer()
		EnqueueCatalogRefresh(context.Background(), client, zap.NewNop())
		client.now = client.now.Add(time.Minute)
		EnqueueCatalogRefresh(context.Background(), client, zap.NewNop())
		assert.Len(t, client.tasks, 1)
	})
}

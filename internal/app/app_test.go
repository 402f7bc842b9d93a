package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mkowalik/copydesk/internal/config"
	testhelpers "github.com/mkowalik/copydesk/internal/test"
	"github.com/mkowalik/copydesk/internal/worker"
)

func newTestReconciler() *worker.PaymentReconciler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewPaymentReconciler(&testhelpers.WorkerFacadeStub{}, 10*time.Millisecond, 1, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewPaymentReconcilerUsesConfig(t *testing.T) {
	rec := newPaymentReconciler(workerParams{
		Facade: &CopydeskFacade{},
		Config: &config.Config{PaymentPollInterval: 15 * time.Second, MaxPaymentsBatch: 3, WorkerPoolSize: 4},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if rec == nil {
		t.Fatal("expected payment reconciler instance")
	}
}

func TestBootstrapAdminHook(t *testing.T) {
	facade, deps := newFacade()
	recorder := &testhelpers.LifecycleRecorder{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	bootstrapAdmin(bootstrapParams{
		Lifecycle: recorder,
		Facade:    facade,
		Config:    &config.Config{AdminEmail: "admin@copydesk.local", AdminPassword: "root"},
		Logger:    logger,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}
	if err := recorder.Hooks[0].OnStart(context.Background()); err != nil {
		t.Fatalf("bootstrap hook failed: %v", err)
	}
	admin, err := deps.users.GetByEmail(context.Background(), "admin@copydesk.local")
	if err != nil {
		t.Fatalf("expected admin account: %v", err)
	}
	if admin.Role != "admin" {
		t.Fatalf("expected admin role, got %v", admin.Role)
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	reconciler := newTestReconciler()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}
	reconciler := newTestReconciler()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	hook := fx.Hook{}
	recorder.Append(hook)
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/okr-bot/backend/config"
	"github.com/okr-bot/backend/internal/infra/dependency"
	"github.com/okr-bot/backend/internal/integration/persistence"
	"github.com/okr-bot/backend/internal/integration/persistence/model"
	"github.com/okr-bot/backend/internal/integration/session"
	"github.com/okr-bot/backend/internal/integration/telegram"
	"github.com/okr-bot/backend/test/integration/mock"
)

const chatSessionTTL = 15 * time.Minute

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time

	// lastID is the id of the last created resource
	lastID    string
	chatReply string
}

type response struct {
	status int
	body   any
}

// app is shared by every scenario; the server starts once per process.
type app struct {
	useCases *dependency.UseCases
	chat     *telegram.Handler
}

var (
	serverInit     sync.Once
	portInit       sync.Once
	testServerPort int
	testApp        *app
	testTime       = mock.NewTime()
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func newTestContext() *testContext {
	initializePort()

	return &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       mock.NewDb(model.All()...),
		redis:    mock.NewRedis(),
		timeMock: testTime,
	}
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.lastID = ""
	t.chatReply = ""
	t.timeMock.Reset()

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	if t.redis != nil {
		_ = mock.ClearRedis(t.redis)
	}
}

func (t *testContext) startServer() error {
	var startErr error

	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		cfg := &config.Config{
			Server: config.ServerConfig{
				Port:        testServerPort,
				Environment: "test",
				Enabled:     true,
			},
			Storage: config.StorageConfig{Driver: config.StorageDriverSQLite},
		}

		injector, err := dependency.NewInjector(cfg, dependency.Infrastructure{
			Storage:       persistence.NewOKRRepository(t.db.DbConn),
			StorageHealth: func() bool { return t.db != nil && t.db.DbConn != nil },
			Redis:         t.redis,
			Clock:         t.timeMock,
		})
		if err != nil {
			startErr = err
			return
		}

		testApp = &app{
			useCases: injector.UseCases,
			chat: telegram.NewHandler(
				injector.UseCases.ChatServices(),
				session.NewRedisStore(t.redis),
				chatSessionTTL,
			),
		}

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: injector.Router.Setup(cfg.Server.Environment),
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}
	if testApp == nil {
		return fmt.Errorf("test server failed to start")
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("test server did not become healthy")
}

func (t *testContext) chat(ctx context.Context, user, text string) string {
	return testApp.chat.Handle(ctx, telegram.Message{
		ChatID:   100,
		UserID:   1,
		UserName: user,
		Text:     text,
	})
}

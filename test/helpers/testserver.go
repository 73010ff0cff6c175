package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"debatecamp/internal/app"
	"debatecamp/internal/config"
	"debatecamp/internal/logger"
)

type TestServer struct {
	Server  *httptest.Server
	App     *app.Application
	Config  *config.Config
	DataDir string
}

// NewTestServer поднимает приложение на временном каталоге данных.
// configure может поправить конфиг до сборки (ключ администратора, драйвер и т.д.).
func NewTestServer(t *testing.T, configure ...func(cfg *config.Config)) *TestServer {
	t.Helper()

	logger.InitWithWriter(config.EnvTest, io.Discard)

	cfg := config.Default()
	cfg.Server.Env = config.EnvTest
	cfg.Storage.BasePath = filepath.Join(t.TempDir(), "data")
	for _, fn := range configure {
		fn(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Некорректный тестовый конфиг: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		t.Fatalf("Не удалось собрать приложение: %v", err)
	}

	ts := &TestServer{
		Server:  httptest.NewServer(application.Router),
		App:     application,
		Config:  cfg,
		DataDir: cfg.Storage.BasePath,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.App.Close()
}

// DocumentPath - путь к файлу отзывов на диске
func (ts *TestServer) DocumentPath() string {
	return filepath.Join(ts.DataDir, ts.Config.Reviews.Document)
}

// SendRequest отправляет запрос. body: nil, string/[]byte (как есть) или значение для JSON.
func (ts *TestServer) SendRequest(t *testing.T, method, path string, headers map[string]string, body interface{}) (*http.Response, string) {
	t.Helper()
	url := ts.Server.URL + path

	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = bytes.NewBufferString(b)
	case []byte:
		reqBody = bytes.NewBuffer(b)
	default:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}

	return res, string(resBodyBytes)
}

// Bearer - заголовок авторизации для SendRequest
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

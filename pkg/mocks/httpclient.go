package mocks

import (
	"context"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"
)

type HTTPClient struct {
	mock.Mock
}

func (m *HTTPClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	args := m.Called(ctx, url, headers)
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *HTTPClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	args := m.Called(ctx, url, body, headers)
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *HTTPClient) Delete(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	args := m.Called(ctx, url, body, headers)
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

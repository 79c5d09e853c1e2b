package pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"joyvision-web/internal/apiclient"
	"joyvision-web/internal/service/orderview"
)

type MockDocumentOpener struct {
	mock.Mock
}

func (m *MockDocumentOpener) OpenDocument(ctx context.Context, orderID int, kind string) (*http.Response, error) {
	args := m.Called(ctx, orderID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func newRequest(id, kind string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/orders/"+id+"/pdf/"+kind, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	rctx.URLParams.Add("kind", kind)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDownloadPDF_Streams(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header: http.Header{
			"Content-Type":        {"application/pdf"},
			"Content-Disposition": {`inline; filename="KP_4.pdf"`},
			"X-Internal":          {"secret"},
		},
		Body: io.NopCloser(strings.NewReader("%PDF-1.4")),
	}

	opener := new(MockDocumentOpener)
	opener.On("OpenDocument", mock.Anything, 4, "kp").Return(resp, nil).Once()

	rr := httptest.NewRecorder()
	DownloadPDF(discard(), opener).ServeHTTP(rr, newRequest("4", "kp"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="KP_4.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Empty(t, rr.Header().Get("X-Internal"))
	assert.Equal(t, "%PDF-1.4", rr.Body.String())
	opener.AssertExpectations(t)
}

func TestDownloadPDF_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "unknown kind",
			err:     fmt.Errorf("orderview.OpenDocument: %w", orderview.ErrUnknownDocument),
			status:  http.StatusNotFound,
			message: orderview.ErrUnknownDocument.Error(),
		},
		{
			name:    "order not found",
			err:     &apiclient.APIError{Status: http.StatusNotFound, Message: "Заказ не найден"},
			status:  http.StatusNotFound,
			message: "Заказ не найден",
		},
		{
			name:    "backend down",
			err:     apiclient.ErrTransport,
			status:  http.StatusBadGateway,
			message: orderview.TransportMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := new(MockDocumentOpener)
			opener.On("OpenDocument", mock.Anything, 4, "kp").Return(nil, tt.err)

			rr := httptest.NewRecorder()
			DownloadPDF(discard(), opener).ServeHTTP(rr, newRequest("4", "kp"))

			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.message)
		})
	}
}

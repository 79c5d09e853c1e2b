package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusSeeOther)
})

func TestSameOrigin(t *testing.T) {
	handler := SameOrigin([]string{"http://localhost:5173"})(ok)

	tests := []struct {
		name   string
		method string
		header map[string]string
		want   int
	}{
		{name: "get from anywhere", method: http.MethodGet, header: map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "https://evil.example"}, want: http.StatusSeeOther},
		{name: "same-origin form", method: http.MethodPost, header: map[string]string{"Sec-Fetch-Site": "same-origin", "Origin": "http://joy.local"}, want: http.StatusSeeOther},
		{name: "cross-site form", method: http.MethodPost, header: map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "https://evil.example"}, want: http.StatusForbidden},
		{name: "same-site subdomain", method: http.MethodPost, header: map[string]string{"Sec-Fetch-Site": "same-site", "Origin": "http://crm.joy.local"}, want: http.StatusForbidden},
		{name: "trusted front end", method: http.MethodPost, header: map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "http://localhost:5173"}, want: http.StatusSeeOther},
		{name: "old browser same host", method: http.MethodPost, header: map[string]string{"Origin": "http://joy.local"}, want: http.StatusSeeOther},
		{name: "old browser foreign origin", method: http.MethodPost, header: map[string]string{"Origin": "https://evil.example"}, want: http.StatusForbidden},
		{name: "no browser headers", method: http.MethodPost, want: http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://joy.local/orders/7/sync", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

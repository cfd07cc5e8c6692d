// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backlog

import (
	"net/http"
	"testing"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "single message",
			status: 401,
			body:   `{"errors": [{"message": "Authentication failure.", "code": 11, "moreInfo": ""}]}`,
			want:   "backlog api error: status 401: Authentication failure.",
		},
		{
			name:   "multiple messages joined",
			status: 400,
			body:   `{"errors": [{"message": "No summary.", "code": 7}, {"message": "No issue type.", "code": 7}]}`,
			want:   "backlog api error: status 400: No summary.; No issue type.",
		},
		{
			name:   "non-json body",
			status: 500,
			body:   "<html>Internal Server Error</html>",
			want:   "backlog api error: status 500",
		},
		{
			name:   "empty body",
			status: 503,
			body:   "",
			want:   "backlog api error: status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body))
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		status       int
		wantAuth     bool
		wantNotFound bool
		wantRate     bool
	}{
		{status: http.StatusUnauthorized, wantAuth: true},
		{status: http.StatusForbidden, wantAuth: true},
		{status: http.StatusNotFound, wantNotFound: true},
		{status: http.StatusTooManyRequests, wantRate: true},
		{status: http.StatusBadRequest},
		{status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		if got := err.IsAuthError(); got != tt.wantAuth {
			t.Errorf("status %d: IsAuthError() = %v, want %v", tt.status, got, tt.wantAuth)
		}
		if got := err.IsNotFoundError(); got != tt.wantNotFound {
			t.Errorf("status %d: IsNotFoundError() = %v, want %v", tt.status, got, tt.wantNotFound)
		}
		if got := err.IsRateLimitError(); got != tt.wantRate {
			t.Errorf("status %d: IsRateLimitError() = %v, want %v", tt.status, got, tt.wantRate)
		}
	}
}

package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (s sampleRequest) Validate() []string {
	if s.End < s.Start {
		return []string{"end must not be before start"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantSubstr string
	}{
		{name: "valid", body: `{"name":"abc","email":"a@b.co","start":1,"end":2}`, wantOK: true},
		{name: "malformed json", body: `{"name":`, wantSubstr: "unexpected EOF"},
		{name: "unknown field", body: `{"name":"abc","role":"admin"}`, wantSubstr: "unknown field"},
		{name: "required", body: `{"name":""}`, wantSubstr: "name is required"},
		{name: "max", body: `{"name":"abcdefg"}`, wantSubstr: "name must be at most 5 characters"},
		{name: "email", body: `{"name":"abc","email":"nope"}`, wantSubstr: "email must be a valid email"},
		{name: "cross field", body: `{"name":"abc","start":3,"end":1}`, wantSubstr: "end must not be before start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://test/x", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest sampleRequest

			ok := DecodeAndValidate(rr, req, &dest)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "abc", dest.Name)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			envelope := decodeEnvelope(t, rr)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, ErrCodeBadRequest, envelope.Error.Code)
			assert.Contains(t, envelope.Error.Message, tt.wantSubstr)
		})
	}
}

func TestDecodeAndValidate_Map(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "http://test/x", strings.NewReader(`{"site_name":"x"}`))
	rr := httptest.NewRecorder()
	var dest map[string]string

	require.True(t, DecodeAndValidate(rr, req, &dest))
	assert.Equal(t, "x", dest["site_name"])
}

func TestPathUUID(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantOK bool
		want   string
	}{
		{name: "valid", value: "6F9619FF-8B86-D011-B42D-00C04FC964FF", wantOK: true, want: "6f9619ff-8b86-d011-b42d-00c04fc964ff"},
		{name: "missing", value: ""},
		{name: "garbage", value: "conf-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://test/x", nil)
			req.SetPathValue("id", tt.value)
			rr := httptest.NewRecorder()

			got, ok := PathUUID(rr, req, "id")
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

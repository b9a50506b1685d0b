package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAPI, m)

	m, err = ParseMode(" WEB ")
	require.NoError(t, err)
	assert.Equal(t, ModeWeb, m)

	_, err = ParseMode("token")
	assert.Error(t, err)
}

func TestForm(t *testing.T) {
	path, form := Form(ModeAPI, "admin", "secret")
	assert.Equal(t, "host/login.json", path)
	assert.Equal(t, map[string]string{"user": "admin", "pass": "secret", "stateful": "1"}, form)

	path, form = Form(ModeWeb, "admin", "secret")
	assert.Equal(t, "index.php", path)
	assert.Equal(t, "postlogin", form["view"])
	assert.Equal(t, "admin", form["username"])
	assert.Equal(t, "secret", form["password"])
}

func TestDenied(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"success": false, "data": {"name": "Login denied"}}`, true},
		{`{"success":false}`, true},
		{`<div class="error">Invalid username or password</div>`, true},
		{`{"credentials":"auth=abc","append_password":0,"version":"1.32.3","apiversion":"2.0"}`, false},
		{``, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Denied(tt.body), tt.body)
	}
}

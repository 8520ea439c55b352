package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"dynamoDB": map[string]any{
			"tablePrefix": "",
			"accessKeyId": "",
		},
		"jwt": map[string]any{
			"secret": "",
		},
		"auth": map[string]any{
			"enforceAdminRole": false,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "DYNAMODB_TABLEPREFIX", want: "dynamoDB.tablePrefix"},
		{envKey: "DYNAMODB_ACCESSKEYID", want: "dynamoDB.accessKeyId"},
		{envKey: "JWT_SECRET", want: "jwt.secret"},
		{envKey: "AUTH_ENFORCEADMINROLE", want: "auth.enforceAdminRole"},
		{envKey: "DYNAMODB_PREFIX_TABLE", want: "dynamoDB.prefix.table"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

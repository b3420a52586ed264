package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "memory backend", config: Config{Backend: BackendMemory}},
		{name: "file backend", config: Config{Backend: BackendFile, DataDir: "/tmp/x"}},
		{name: "sqlite backend", config: Config{Backend: BackendSQLite, DataDir: "/tmp/x"}},
		{name: "empty backend rejected", config: Config{}, wantErr: ErrBackendEmpty},
		{name: "unknown backend rejected", config: Config{Backend: "redis"}, wantErr: ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

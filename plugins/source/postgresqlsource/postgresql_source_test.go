package postgresqlsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertJdbcUrl(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "host and port",
			url:  "jdbc:postgresql://pg:5432/shop",
			want: "host=pg port=5432 user=app password=pw dbname=shop sslmode=disable",
		},
		{
			name: "options override sslmode",
			url:  "jdbc:postgresql://pg:5432/shop?sslmode=require&connect_timeout=5",
			want: "host=pg port=5432 user=app password=pw dbname=shop connect_timeout=5 sslmode=require",
		},
		{
			name: "default port",
			url:  "jdbc:postgresql://pg/shop",
			want: "host=pg user=app password=pw dbname=shop sslmode=disable",
		},
		{name: "wrong scheme", url: "jdbc:mysql://pg:5432/shop", wantErr: true},
		{name: "no database", url: "jdbc:postgresql://pg:5432", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertJdbcUrl(tt.url, "app", "pw")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

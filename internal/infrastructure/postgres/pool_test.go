package postgres

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/pkg/config"
)

func TestNewPoolConfig(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "x", DBName: "ventas", SSLMode: "disable"}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)

	cfg.MaxConns = 5
	cfg.DatabaseURL = "postgres://u:p@otro:6543/x?sslmode=disable&application_name=reportes"
	pc, err = newPoolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 5, pc.MaxConns)
	assert.Equal(t, "otro", pc.ConnConfig.Host)
	assert.Equal(t, "reportes", pc.ConnConfig.RuntimeParams["application_name"], "DATABASE_URL tiene prioridad")

	_, err = newPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

type fakeResolver struct {
	ips []net.IP
	err error
}

func (f fakeResolver) LookupIP(context.Context, string, string) ([]net.IP, error) {
	return f.ips, f.err
}

func TestLookupIPv4(t *testing.T) {
	ctx := context.Background()

	ip, err := lookupIPv4(ctx, fakeResolver{}, "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4(ctx, fakeResolver{}, "::1")
	assert.Error(t, err)

	ip, err = lookupIPv4(ctx, fakeResolver{ips: []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("192.0.2.10")}}, "db.example.com")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10", ip)

	_, err = lookupIPv4(ctx, fakeResolver{err: errors.New("nxdomain")}, "nada.example.com")
	assert.Error(t, err)
}

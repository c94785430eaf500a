package postgres

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesetail-admin-api/pkg/config"
)

func TestPoolConfig_AplicaLimites(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "db.internal", Port: 5432, User: "app", DBName: "w", SSLMode: "disable",
		MaxConns: 8, MinConns: 3, MaxConnLife: 10 * time.Minute, MaxConnIdle: time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 10*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Nil(t, pc.ConnConfig.DialFunc, "sin ForceIPv4 se usa el dialer de pgx")
}

func TestPoolConfig_MinConnsNoSuperaMax(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{Host: "db", Port: 5432, SSLMode: "disable", MaxConns: 2, MinConns: 10})
	require.NoError(t, err)
	assert.Equal(t, int32(2), pc.MinConns)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@remote.example:6543/prod?sslmode=disable",
		Host:        "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, "remote.example", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse DSN")
}

func TestPoolConfig_ForceIPv4_DialaPorTCP4(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		if c, err := ln.Accept(); err == nil {
			c.Close()
		}
	}()

	pc, err := poolConfig(config.DBConfig{Host: "localhost", Port: 5432, SSLMode: "disable", ForceIPv4: true})
	require.NoError(t, err)
	require.NotNil(t, pc.ConnConfig.DialFunc)

	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conn, err := pc.ConnConfig.DialFunc(ctx, "tcp", net.JoinHostPort("localhost", port))
	require.NoError(t, err)
	defer conn.Close()

	remote := conn.RemoteAddr().(*net.TCPAddr)
	assert.NotNil(t, remote.IP.To4())
}

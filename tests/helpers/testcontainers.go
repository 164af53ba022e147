// testcontainers.go
//
// A scalable, high performance drop-in replacement for the ClothCycle nodejs backend
// Copyright (c) 2026 ClothCycle contributors
//
// This file is part of clothcycle-api.
// clothcycle-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// clothcycle-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with clothcycle-api.
// If not, see <https://www.gnu.org/licenses/>.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clothcycle/clothcycle-api/data"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Database is a running MariaDB test container plus connection details
// matching what internal/config expects.
type Database struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
}

// DSN returns a go-sql-driver DSN for the containerized database.
func (d *Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// Terminate stops and removes the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// DockerAvailable reports whether a Docker daemon is reachable, so callers
// can skip container-backed tests instead of failing them.
func DockerAvailable() bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	_, err = cli.Ping(context.Background())
	return err == nil
}

// StartMariaDB launches a MariaDB container seeded with the embedded
// bootstrap SQL and waits until it accepts connections.
func StartMariaDB(ctx context.Context) (*Database, error) {
	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	db := &Database{
		Name:     "clothcycle",
		User:     "clothcycle",
		Password: "clothcycle",
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Name:         fmt.Sprintf("clothcycle-mariadb-%s", uuid.NewString()[:8]),
			Image:        image,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "rootpass",
				"MARIADB_DATABASE":      db.Name,
				"MARIADB_USER":          db.User,
				"MARIADB_PASSWORD":      db.Password,
			},
			Files: []testcontainers.ContainerFile{
				{
					Reader:            strings.NewReader(data.InitdbMariaDBTables),
					ContainerFilePath: "/docker-entrypoint-initdb.d/002-ddl-tables.sql",
					FileMode:          0o644,
				},
				{
					Reader:            strings.NewReader(data.InitdbMariaDBPrivileges),
					ContainerFilePath: "/docker-entrypoint-initdb.d/003-ddl-privileges.sql",
					FileMode:          0o644,
				},
			},
			WaitingFor: wait.ForLog("ready for connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB container: %w", err)
	}
	db.Container = container

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	db.Host = host

	port, err := container.MappedPort(ctx, nat.Port("3306/tcp"))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	db.Port = port.Port()

	if err := waitForDatabase(db.DSN(), 30*time.Second); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return db, nil
}

// waitForDatabase pings until the database answers or the deadline passes.
// The log wait above fires before MariaDB finishes its init scripts.
func waitForDatabase(dsn string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	var lastErr error
	for time.Now().Before(deadline) {
		conn, err := sql.Open("mysql", dsn)
		if err == nil {
			err = conn.Ping()
			_ = conn.Close()
			if err == nil {
				return nil
			}
		}
		lastErr = err
		time.Sleep(500 * time.Millisecond)
	}

	return fmt.Errorf("database never became ready: %w", lastErr)
}

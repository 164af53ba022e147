// Package data embeds the MariaDB bootstrap SQL so test containers and
// deployment tooling can initialize a database that matches what
// AutoMigrate produces.
package data

import (
	_ "embed"
)

// InitdbMariaDBTables holds the schema DDL plus the seeded impact singleton
// and badge catalog.
//
//go:embed initdb/mariadb/002-ddl-tables.sql
var InitdbMariaDBTables string

// InitdbMariaDBPrivileges holds the application user grants.
//
//go:embed initdb/mariadb/003-ddl-privileges.sql
var InitdbMariaDBPrivileges string

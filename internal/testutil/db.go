// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"huddle-backend/internal/domain"
	"huddle-backend/internal/infrastructure/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database. The pool is pinned to one
// connection so concurrent queries see the same in-memory schema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: database.NewGormLogger(logger.Silent, 0),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// OpenRedis starts a miniredis server and returns a client connected to it.
func OpenRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb, mr
}

// Fixture seeds an organization, a team and the team's first member.
type Fixture struct {
	Org    *domain.Organization
	Team   *domain.Team
	Member *domain.User
}

// SeedTeam creates an org/team pair and an inviter who is already on the team.
func SeedTeam(t *testing.T, db *gorm.DB) Fixture {
	t.Helper()
	org := &domain.Organization{Name: "Acme", Tier: "team"}
	require.NoError(t, db.Create(org).Error)
	team := &domain.Team{OrgID: org.OrgID, Name: "Platform"}
	require.NoError(t, db.Create(team).Error)
	member := CreateUser(t, db, "lead@acme.io", "Lead")
	AddMember(t, db, team, member)
	return Fixture{Org: org, Team: team, Member: member}
}

// CreateUser inserts a user with the given email and name.
func CreateUser(t *testing.T, db *gorm.DB, email, name string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, PreferredName: name}
	require.NoError(t, db.Create(u).Error)
	return u
}

// AddMember puts u on team.
func AddMember(t *testing.T, db *gorm.DB, team *domain.Team, u *domain.User) {
	t.Helper()
	require.NoError(t, db.Create(&domain.TeamMember{TeamID: team.TeamID, UserID: u.UserID, IsNotRemoved: true}).Error)
}

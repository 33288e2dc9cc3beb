package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/highq/crm-backend/model"
)

// Account is a login record. Passwords are stored in the clear because the
// backend is a mock; there is no real credential handling in this system.
type Account struct {
	Email    string         `db:"email"`
	Password string         `db:"password"`
	Name     string         `db:"name"`
	Role     model.UserRole `db:"role"`
	MemberID sql.NullString `db:"member_id"`
}

// DirectoryService serves team member and account lookups from sqlite.
type DirectoryService struct {
	db *sqlx.DB
}

func NewDirectoryService(db *sqlx.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

// Member resolves a team member by id. Implements store.Directory.
func (s *DirectoryService) Member(id string) (model.TeamMember, bool) {
	var m model.TeamMember
	err := s.db.Get(&m, "SELECT id, name, role, avatar, online FROM team_members WHERE id = ?", id)
	if err != nil {
		return model.TeamMember{}, false
	}
	return m, true
}

// Members returns the whole team directory.
func (s *DirectoryService) Members() ([]model.TeamMember, error) {
	members := []model.TeamMember{}
	err := s.db.Select(&members, "SELECT id, name, role, avatar, online FROM team_members ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	return members, nil
}

// AccountByEmail resolves a login account. Returns ok=false when the email
// is not registered.
func (s *DirectoryService) AccountByEmail(email string) (Account, bool, error) {
	var a Account
	err := s.db.Get(&a, "SELECT email, password, name, role, member_id FROM accounts WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, fmt.Errorf("failed to query account: %w", err)
	}
	return a, true, nil
}

// UpdatePassword replaces an account's password. Used by the reset flow.
func (s *DirectoryService) UpdatePassword(email, password string) error {
	_, err := s.db.Exec("UPDATE accounts SET password = ? WHERE email = ?", password, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Seed inserts the demo team and login accounts when the directory is
// empty. Safe to call on every startup.
func (s *DirectoryService) Seed() error {
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM team_members"); err != nil {
		return fmt.Errorf("failed to count team members: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	members := []model.TeamMember{
		{ID: "1", Name: "Amélie Laurent", Role: "BDE", Avatar: "https://i.pravatar.cc/150?img=1", Online: true},
		{ID: "2", Name: "Benoît Dubois", Role: "BDE", Avatar: "https://i.pravatar.cc/150?img=2", Online: true},
		{ID: "3", Name: "Chloé Moreau", Role: "BDE", Avatar: "https://i.pravatar.cc/150?img=3", Online: false},
		{ID: "4", Name: "David Garcia", Role: "BDE", Avatar: "https://i.pravatar.cc/150?img=4", Online: true},
		{ID: "5", Name: "Emma Rousseau", Role: "BDE", Avatar: "https://i.pravatar.cc/150?img=5", Online: false},
	}
	for _, m := range members {
		_, err := tx.Exec(
			"INSERT INTO team_members (id, name, role, avatar, online) VALUES (?, ?, ?, ?, ?)",
			m.ID, m.Name, m.Role, m.Avatar, m.Online,
		)
		if err != nil {
			return fmt.Errorf("failed to insert team member %s: %w", m.ID, err)
		}
	}

	accounts := []Account{
		{Email: "master@highq.com", Password: "password123", Name: "Master Admin", Role: model.RoleMasterclass},
		{Email: "bde@highq.com", Password: "password123", Name: "Amélie Laurent", Role: model.RoleBDE, MemberID: sql.NullString{String: "1", Valid: true}},
	}
	for _, a := range accounts {
		_, err := tx.Exec(
			"INSERT INTO accounts (email, password, name, role, member_id) VALUES (?, ?, ?, ?, ?)",
			a.Email, a.Password, a.Name, a.Role, a.MemberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert account %s: %w", a.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

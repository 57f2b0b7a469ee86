package identity

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/poseidoncap/refdata/pkg/model"
)

// Ensure GormProvider implements Provider
var _ Provider = (*GormProvider)(nil)

// GormProvider implements Provider against the users, roles and
// user_roles tables.
type GormProvider struct {
	db *gorm.DB
}

// NewGormProvider creates a new GormProvider
func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{db: db}
}

// CreateUser stores the user with a hashed credential
func (p *GormProvider) CreateUser(user *model.User, password string) error {
	if err := checkPasswordPolicy(password); err != nil {
		return err
	}

	var exists bool
	p.db.Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, user.Username).Scan(&exists)
	if exists {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	return p.db.Create(user).Error
}

// VerifyCredential checks a username/password pair
func (p *GormProvider) VerifyCredential(username, password string) (*model.User, error) {
	var user model.User
	err := p.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// SetPassword replaces the stored credential for a user
func (p *GormProvider) SetPassword(username, password string) error {
	if err := checkPasswordPolicy(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res := p.db.Exec(`UPDATE users SET password_hash = ?, updated_at = now() WHERE username = ?`,
		string(hash), username)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no user named %q", username)
	}
	return nil
}

// EnsureRole creates the named role if it does not exist
func (p *GormProvider) EnsureRole(name string) error {
	return p.db.Exec(`
		INSERT INTO roles (name)
		VALUES (?)
		ON CONFLICT DO NOTHING
	`, name).Error
}

// AssignRole replaces the user's role membership with the named role
func (p *GormProvider) AssignRole(userID uint, roleName string) error {
	var roleID uint
	p.db.Raw(`SELECT id FROM roles WHERE name = ?`, roleName).Scan(&roleID)
	if roleID == 0 {
		return fmt.Errorf("no role named %q", roleName)
	}

	if err := p.db.Exec(`DELETE FROM user_roles WHERE user_id = ?`, userID).Error; err != nil {
		return err
	}
	return p.db.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, userID, roleID).Error
}

// RolesOf returns the role names the user is a member of
func (p *GormProvider) RolesOf(userID uint) ([]string, error) {
	type roleRow struct {
		Name string `gorm:"column:name"`
	}
	var rows []roleRow
	err := p.db.Raw(`
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.name
	`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

// IsMember reports whether the user is a member of the named role
func (p *GormProvider) IsMember(userID uint, roleName string) (bool, error) {
	var member bool
	err := p.db.Raw(`
		SELECT EXISTS(
			SELECT 1
			FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = ? AND r.name = ?
		)
	`, userID, roleName).Scan(&member).Error
	return member, err
}

// checkPasswordPolicy rejects passwords that are too weak, aggregating
// every failed requirement into one PolicyError.
func checkPasswordPolicy(password string) error {
	var messages []string
	if len(password) < 8 {
		messages = append(messages, "Passwords must be at least 8 characters.")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper {
		messages = append(messages, "Passwords must have at least one uppercase letter.")
	}
	if !hasLower {
		messages = append(messages, "Passwords must have at least one lowercase letter.")
	}
	if !hasDigit {
		messages = append(messages, "Passwords must have at least one digit.")
	}
	if !hasSymbol {
		messages = append(messages, "Passwords must have at least one non-alphanumeric character.")
	}

	if len(messages) > 0 {
		return &PolicyError{Messages: messages}
	}
	return nil
}

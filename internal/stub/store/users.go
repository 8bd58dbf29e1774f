package store

import "context"

// User is an account row as the stub persists it.
type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	FullName      string
	Role          string
	DateOfBirth   string
	ContactNumber string
	City          string
	State         string
	ProfileImage  string
	TwoFAEnabled  bool
	CreatedAt     string
}

const userColumns = `id, username, email, password_hash, full_name, role, dob,
	contact_number, city, state, profile_image, is_2fa_enabled, created_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.DateOfBirth, &u.ContactNumber, &u.City, &u.State, &u.ProfileImage,
		&u.TwoFAEnabled, &u.CreatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

// CreateUser inserts a new account and returns its id.
func (s *Store) CreateUser(ctx context.Context, u *User) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, full_name, role, dob,
			contact_number, city, state, profile_image, is_2fa_enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Role, u.DateOfBirth,
		u.ContactNumber, u.City, u.State, u.ProfileImage, u.TwoFAEnabled,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UserByIdentifier looks an account up by username or email.
func (s *Store) UserByIdentifier(ctx context.Context, identifier string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ?`,
		identifier, identifier)
	return scanUser(row)
}

func (s *Store) UserByID(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// UsernameExists reports whether the username is already registered.
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n)
	return n > 0, err
}

// EmailExists reports whether the email is already registered.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return s.execOne(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
}

func (s *Store) UpdatePasswordByEmail(ctx context.Context, email, hash string) error {
	return s.execOne(ctx, `UPDATE users SET password_hash = ? WHERE email = ?`, hash, email)
}

func (s *Store) UpdateProfileDetails(ctx context.Context, id int64, contact, city, state string) error {
	return s.execOne(ctx,
		`UPDATE users SET contact_number = ?, city = ?, state = ? WHERE id = ?`,
		contact, city, state, id)
}

func (s *Store) UpdateProfileImage(ctx context.Context, id int64, image string) error {
	return s.execOne(ctx, `UPDATE users SET profile_image = ? WHERE id = ?`, image, id)
}

func (s *Store) SetTwoFA(ctx context.Context, id int64, enabled bool) error {
	return s.execOne(ctx, `UPDATE users SET is_2fa_enabled = ? WHERE id = ?`, enabled, id)
}

// DeleteUser removes the account; listings, saves and leads go with it via
// the FK cascades.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.execOne(ctx, `DELETE FROM users WHERE id = ?`, id)
}

func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

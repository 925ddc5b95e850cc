package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gamescape/gamescape-be/internal/models"
)

// isUniqueViolation reports whether err is a sqlite unique-constraint
// failure, optionally on the named column set.
func isUniqueViolation(err error, columns string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return columns == "" || strings.Contains(msg, columns)
}

// SQLiteUserStore implements UserStore on a sqlite database.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore creates a new SQLiteUserStore.
func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

func scanUser(row *sql.Row, withHash bool) (models.User, error) {
	var user models.User
	var age sql.NullInt64
	var err error
	if withHash {
		err = row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.IsAdmin, &age, &user.Address, &user.AvatarURL, &user.CreatedAt)
	} else {
		err = row.Scan(&user.ID, &user.Username, &user.Email,
			&user.IsAdmin, &age, &user.Address, &user.AvatarURL, &user.CreatedAt)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, err
	}
	if age.Valid {
		v := int(age.Int64)
		user.Age = &v
	}
	return user, nil
}

// FindByEmail retrieves a user by email, including the password hash
// for credential verification.
func (s *SQLiteUserStore) FindByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, username, email, password_hash, is_admin, age, address, avatar_url, created_at FROM users WHERE email = ?",
		email)
	return scanUser(row, true)
}

// FindByID retrieves a user by ID, without the password hash.
func (s *SQLiteUserStore) FindByID(id string) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, username, email, is_admin, age, address, avatar_url, created_at FROM users WHERE id = ?",
		id)
	return scanUser(row, false)
}

// Create inserts a new user row.
func (s *SQLiteUserStore) Create(user models.User) error {
	var age any
	if user.Age != nil {
		age = *user.Age
	}
	_, err := s.db.Exec(
		"INSERT INTO users(id, username, email, password_hash, is_admin, age, address, avatar_url, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsAdmin,
		age, user.Address, user.AvatarURL, user.CreatedAt)
	if isUniqueViolation(err, "users.email") {
		return models.ErrDuplicateEmail
	}
	return err
}

// Update applies the non-nil fields of the update to the user row.
func (s *SQLiteUserStore) Update(id string, update models.UserUpdate) error {
	if update.Empty() {
		return nil
	}
	var sets []string
	var args []any
	if update.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *update.Username)
	}
	if update.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *update.Age)
	}
	if update.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *update.Address)
	}
	if update.AvatarURL != nil {
		sets = append(sets, "avatar_url = ?")
		args = append(args, *update.AvatarURL)
	}
	if update.IsAdmin != nil {
		sets = append(sets, "is_admin = ?")
		args = append(args, *update.IsAdmin)
	}
	args = append(args, id)

	res, err := s.db.Exec("UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a user. Collection entries and sessions go with it
// via the ON DELETE CASCADE foreign keys.
func (s *SQLiteUserStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// List returns all users, password hashes excluded.
func (s *SQLiteUserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(
		"SELECT id, username, email, is_admin, age, address, avatar_url, created_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var age sql.NullInt64
		if err := rows.Scan(&user.ID, &user.Username, &user.Email,
			&user.IsAdmin, &age, &user.Address, &user.AvatarURL, &user.CreatedAt); err != nil {
			return nil, err
		}
		if age.Valid {
			v := int(age.Int64)
			user.Age = &v
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SQLiteCollectionStore implements CollectionStore on a sqlite database.
type SQLiteCollectionStore struct {
	db *sql.DB
}

// NewSQLiteCollectionStore creates a new SQLiteCollectionStore.
func NewSQLiteCollectionStore(db *sql.DB) *SQLiteCollectionStore {
	return &SQLiteCollectionStore{db: db}
}

// ListByUser returns the user's collection, newest first.
func (s *SQLiteCollectionStore) ListByUser(userID string) ([]models.CollectedGame, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, game_id, title, image_url, rating, created_at FROM collected_games WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.CollectedGame
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.CollectedGame, error) {
	var entry models.CollectedGame
	var rating sql.NullFloat64
	err := row.Scan(&entry.ID, &entry.UserID, &entry.GameID, &entry.Title,
		&entry.ImageURL, &rating, &entry.CreatedAt)
	if err != nil {
		return models.CollectedGame{}, err
	}
	if rating.Valid {
		v := rating.Float64
		entry.Rating = &v
	}
	return entry, nil
}

// FindByUserAndGame retrieves the entry for the (user, game) pair.
func (s *SQLiteCollectionStore) FindByUserAndGame(userID string, gameID int64) (models.CollectedGame, error) {
	row := s.db.QueryRow(
		"SELECT id, user_id, game_id, title, image_url, rating, created_at FROM collected_games WHERE user_id = ? AND game_id = ?",
		userID, gameID)
	entry, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.CollectedGame{}, models.ErrNotFound
		}
		return models.CollectedGame{}, err
	}
	return entry, nil
}

// Insert adds a new entry and returns it with the assigned ID.
func (s *SQLiteCollectionStore) Insert(entry models.CollectedGame) (models.CollectedGame, error) {
	var rating any
	if entry.Rating != nil {
		rating = *entry.Rating
	}
	res, err := s.db.Exec(
		"INSERT INTO collected_games(user_id, game_id, title, image_url, rating, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		entry.UserID, entry.GameID, entry.Title, entry.ImageURL, rating, entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "collected_games") {
			return models.CollectedGame{}, models.ErrDuplicateEntry
		}
		return models.CollectedGame{}, err
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return models.CollectedGame{}, err
	}
	return entry, nil
}

// DeleteByUserAndGame removes the entry for the (user, game) pair.
func (s *SQLiteCollectionStore) DeleteByUserAndGame(userID string, gameID int64) (bool, error) {
	res, err := s.db.Exec(
		"DELETE FROM collected_games WHERE user_id = ? AND game_id = ?", userID, gameID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SQLiteSessionStore implements SessionStore on a sqlite database.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore creates a new SQLiteSessionStore.
func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

// Create inserts a new session row.
func (s *SQLiteSessionStore) Create(session models.Session) error {
	_, err := s.db.Exec(
		"INSERT INTO sessions(token_hash, user_id, username, email, is_admin, created_at, expires_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		session.TokenHash, session.Identity.UserID, session.Identity.Username,
		session.Identity.Email, session.Identity.IsAdmin, session.CreatedAt, session.ExpiresAt)
	return err
}

// FindByTokenHash retrieves a session by the hash of its token.
func (s *SQLiteSessionStore) FindByTokenHash(tokenHash string) (models.Session, error) {
	var session models.Session
	row := s.db.QueryRow(
		"SELECT token_hash, user_id, username, email, is_admin, created_at, expires_at FROM sessions WHERE token_hash = ?",
		tokenHash)
	err := row.Scan(&session.TokenHash, &session.Identity.UserID, &session.Identity.Username,
		&session.Identity.Email, &session.Identity.IsAdmin, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Session{}, models.ErrNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

// DeleteByTokenHash removes a session. Absent sessions are fine.
func (s *SQLiteSessionStore) DeleteByTokenHash(tokenHash string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE token_hash = ?", tokenHash)
	return err
}

// DeleteExpired removes sessions past their absolute expiry.
func (s *SQLiteSessionStore) DeleteExpired(now time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// Session is one signed-in admin as seen by the dashboard.
type Session struct {
	ID        string
	Email     string
	Role      string
	Token     string
	ExpiresAt time.Time
}

type sessionRow struct {
	ID          string `db:"id"`
	Email       string `db:"email"`
	Role        string `db:"role"`
	TokenSealed []byte `db:"token_sealed"`
	ExpiresAt   string `db:"expires_at"`
}

type SessionRepo struct {
	DB   *sqlx.DB
	seal *Sealer
}

func NewSessionRepo(db *sqlx.DB, seal *Sealer) *SessionRepo {
	return &SessionRepo{DB: db, seal: seal}
}

func (r *SessionRepo) Bind(s Session) error {
	sealed, err := r.seal.Seal([]byte(s.Token))
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`INSERT INTO sessions(id,email,role,token_sealed,expires_at,last_seen)
                          VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET email=excluded.email,role=excluded.role,
                            token_sealed=excluded.token_sealed,expires_at=excluded.expires_at,last_seen=CURRENT_TIMESTAMP`,
		s.ID, s.Email, s.Role, sealed, s.ExpiresAt.UTC().Format(time.RFC3339))
	return err
}

// Get returns the session with its token unsealed. A missing row is sql.ErrNoRows.
func (r *SessionRepo) Get(sid string) (*Session, error) {
	var row sessionRow
	err := r.DB.Get(&row, `SELECT id,email,role,token_sealed,expires_at FROM sessions WHERE id=?`, sid)
	if err != nil {
		return nil, err
	}
	tok, err := r.seal.Open(row.TokenSealed)
	if err != nil {
		return nil, err
	}
	exp, err := time.Parse(time.RFC3339, row.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &Session{ID: row.ID, Email: row.Email, Role: row.Role, Token: string(tok), ExpiresAt: exp}, nil
}

func (r *SessionRepo) Touch(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

func (r *SessionRepo) Unbind(sid string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id=?`, sid)
	return err
}

// PurgeExpired drops sessions whose token expired before now.
func (r *SessionRepo) PurgeExpired(now time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM sessions WHERE expires_at < ?`, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

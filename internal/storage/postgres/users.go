package postgres

import (
	"context"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

const (
	userColumns = `id, login, password_hash, role, created_at, active`
	selectUser  = `SELECT ` + userColumns + ` FROM users`
)

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.Active)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at, active`
	u := model.User{Login: login, PasswordHash: passwordHash, Role: role}
	err := r.storage.db(ctx).QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt, &u.Active)
	if err != nil {
		return nil, classify(err, "login")
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.get(ctx, selectUser+` WHERE login=$1`, login)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.get(ctx, selectUser+` WHERE id=$1`, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.read(ctx, func(db querier) error {
		var err error
		u, err = scanUser(db.QueryRow(ctx, query, arg))
		return classify(err, "user")
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetActive only matches users of the given role, so a washer switch cannot
// lock out a customer or an admin.
func (r *userRepository) SetActive(ctx context.Context, id int64, role model.Role, active bool) (*model.User, error) {
	const query = `UPDATE users SET active=$3 WHERE id=$1 AND role=$2 RETURNING ` + userColumns
	u, err := scanUser(r.storage.db(ctx).QueryRow(ctx, query, id, role, active))
	if err != nil {
		return nil, classify(err, "user")
	}
	return &u, nil
}

func (r *userRepository) Summaries(ctx context.Context, role model.Role) ([]model.AccountSummary, error) {
	const query = `SELECT u.id, u.login, u.role, u.created_at, u.active,
                          (SELECT COUNT(*) FROM vehicles v WHERE v.customer_id = u.id AND v.deleted_at IS NULL),
                          (SELECT COUNT(*) FROM orders o WHERE o.customer_id = u.id OR o.washer_id = u.id),
                          (SELECT COUNT(*) FROM orders o WHERE (o.customer_id = u.id OR o.washer_id = u.id)
                                                         AND o.status IN ($2, $3)),
                          (SELECT COALESCE(SUM(o.total), 0) FROM orders o WHERE o.customer_id = u.id AND o.status = $3)
                   FROM users u
                   WHERE $1 = '' OR u.role = $1
                   ORDER BY u.id`

	var summaries []model.AccountSummary
	err := r.storage.read(ctx, func(db querier) error {
		rows, err := db.Query(ctx, query, string(role), model.OrderStatusCompleted, model.OrderStatusPaid)
		if err != nil {
			return classify(err, "user")
		}
		summaries, err = collect(rows, scanSummary)
		return classify(err, "user")
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func scanSummary(row rowScanner) (model.AccountSummary, error) {
	var s model.AccountSummary
	err := row.Scan(
		&s.User.ID, &s.User.Login, &s.User.Role, &s.User.CreatedAt, &s.User.Active,
		&s.Vehicles, &s.Orders, &s.Completed, &s.Spent,
	)
	return s, err
}

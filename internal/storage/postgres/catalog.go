package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

const (
	packageColumns = `id, name, description, price, active`
	addonColumns   = `id, name, price, active`

	selectPackages = `SELECT ` + packageColumns + ` FROM wash_packages`
	selectAddons   = `SELECT ` + addonColumns + ` FROM addons`
)

func scanPackage(row rowScanner) (model.WashPackage, error) {
	var p model.WashPackage
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Active)
	return p, err
}

func scanAddon(row rowScanner) (model.Addon, error) {
	var a model.Addon
	err := row.Scan(&a.ID, &a.Name, &a.Price, &a.Active)
	return a, err
}

func (r *catalogRepository) GetPackage(ctx context.Context, id int64) (*model.WashPackage, error) {
	var pkg model.WashPackage
	err := r.storage.read(ctx, func(db querier) error {
		var err error
		pkg, err = scanPackage(db.QueryRow(ctx, selectPackages+` WHERE id=$1`, id))
		return classify(err, "wash package")
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetAddons returns the active addons among ids in the order requested.
func (r *catalogRepository) GetAddons(ctx context.Context, ids []int64) ([]model.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = selectAddons + ` WHERE id = ANY($1) AND active ORDER BY array_position($1::bigint[], id)`

	var addons []model.Addon
	err := r.storage.read(ctx, func(db querier) error {
		rows, err := db.Query(ctx, query, ids)
		if err != nil {
			return classify(err, "addon")
		}
		addons, err = collect(rows, scanAddon)
		return classify(err, "addon")
	})
	if err != nil {
		return nil, err
	}
	return addons, nil
}

func (r *catalogRepository) ListPackages(ctx context.Context) ([]model.WashPackage, error) {
	return r.packages(ctx, selectPackages+` WHERE active ORDER BY id`)
}

func (r *catalogRepository) ListAllPackages(ctx context.Context) ([]model.WashPackage, error) {
	return r.packages(ctx, selectPackages+` ORDER BY id`)
}

func (r *catalogRepository) ListAddons(ctx context.Context) ([]model.Addon, error) {
	return r.addons(ctx, selectAddons+` WHERE active ORDER BY id`)
}

func (r *catalogRepository) ListAllAddons(ctx context.Context) ([]model.Addon, error) {
	return r.addons(ctx, selectAddons+` ORDER BY id`)
}

func (r *catalogRepository) packages(ctx context.Context, query string) ([]model.WashPackage, error) {
	var packages []model.WashPackage
	err := r.storage.read(ctx, func(db querier) error {
		rows, err := db.Query(ctx, query)
		if err != nil {
			return classify(err, "wash package")
		}
		packages, err = collect(rows, scanPackage)
		return classify(err, "wash package")
	})
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *catalogRepository) addons(ctx context.Context, query string) ([]model.Addon, error) {
	var addons []model.Addon
	err := r.storage.read(ctx, func(db querier) error {
		rows, err := db.Query(ctx, query)
		if err != nil {
			return classify(err, "addon")
		}
		addons, err = collect(rows, scanAddon)
		return classify(err, "addon")
	})
	if err != nil {
		return nil, err
	}
	return addons, nil
}

func (r *catalogRepository) CreatePackage(ctx context.Context, pkg model.WashPackage) (*model.WashPackage, error) {
	const query = `INSERT INTO wash_packages (name, description, price, active) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.storage.db(ctx).QueryRow(ctx, query, pkg.Name, pkg.Description, pkg.Price, pkg.Active).Scan(&pkg.ID)
	if err != nil {
		return nil, classify(err, "wash package")
	}
	return &pkg, nil
}

func (r *catalogRepository) CreateAddon(ctx context.Context, addon model.Addon) (*model.Addon, error) {
	const query = `INSERT INTO addons (name, price, active) VALUES ($1, $2, $3) RETURNING id`
	err := r.storage.db(ctx).QueryRow(ctx, query, addon.Name, addon.Price, addon.Active).Scan(&addon.ID)
	if err != nil {
		return nil, classify(err, "addon")
	}
	return &addon, nil
}

// UpdatePackage applies the non-nil fields of update in one statement.
func (r *catalogRepository) UpdatePackage(ctx context.Context, id int64, update model.PackageUpdate) (*model.WashPackage, error) {
	const query = `UPDATE wash_packages SET name=COALESCE($2, name), description=COALESCE($3, description),
                       price=COALESCE($4, price), active=COALESCE($5, active)
                   WHERE id=$1
                   RETURNING ` + packageColumns
	pkg, err := scanPackage(r.storage.db(ctx).QueryRow(ctx, query,
		id, update.Name, update.Description, update.Price, update.Active))
	if err != nil {
		return nil, classify(err, "wash package")
	}
	return &pkg, nil
}

func (r *catalogRepository) UpdateAddon(ctx context.Context, id int64, update model.AddonUpdate) (*model.Addon, error) {
	const query = `UPDATE addons SET name=COALESCE($2, name), price=COALESCE($3, price), active=COALESCE($4, active)
                   WHERE id=$1
                   RETURNING ` + addonColumns
	addon, err := scanAddon(r.storage.db(ctx).QueryRow(ctx, query, id, update.Name, update.Price, update.Active))
	if err != nil {
		return nil, classify(err, "addon")
	}
	return &addon, nil
}

// collect drains rows with scan and closes them.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	var result []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

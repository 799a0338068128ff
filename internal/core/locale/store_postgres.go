// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/namira/internal/platform/database/schema"
	"github.com/taibuivan/namira/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListLocales(context context.Context) ([]*Locale, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefLocale.ID,
		schema.RefLocale.Code,
		schema.RefLocale.Name,
		schema.RefLocale.NativeName,
		schema.RefLocale.Table,
		schema.RefLocale.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_locales")
	}
	defer rows.Close()

	var locales []*Locale
	for rows.Next() {
		l := &Locale{}
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.NativeName); err != nil {
			return nil, dberr.Wrap(err, "scan_locale")
		}
		locales = append(locales, l)
	}

	return locales, nil
}
